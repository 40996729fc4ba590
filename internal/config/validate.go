package config

import (
	"fmt"
	"strconv"

	"smart-stadium/internal/domain/contests"
)

// Validate cross-checks the loaded configuration. File contents (devices,
// team colors) are validated by their loaders at startup; this covers the
// scalar knobs.
func (c Config) Validate() error {
	switch c.Provider {
	case "fixture", "espn", "":
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}

	if err := validatePort("port", c.Port); err != nil {
		return err
	}
	if c.Metrics.Enabled {
		if err := validatePort("metrics port", c.Metrics.Port); err != nil {
			return err
		}
	}

	recognized := 0
	for _, s := range c.Sports {
		if _, ok := contests.ParseSport(s); ok {
			recognized++
		}
	}
	if len(c.Sports) > 0 && recognized == 0 {
		return fmt.Errorf("no recognized sports in %v", c.Sports)
	}

	if c.Monitor.IdleInterval < c.Monitor.PollInterval {
		return fmt.Errorf("idle interval %s shorter than live interval %s", c.Monitor.IdleInterval, c.Monitor.PollInterval)
	}
	if c.Monitor.BackoffCeiling > 0 && c.Monitor.BackoffCeiling < c.Monitor.PollInterval {
		return fmt.Errorf("backoff ceiling %s below live interval %s", c.Monitor.BackoffCeiling, c.Monitor.PollInterval)
	}

	return nil
}

func validatePort(name, raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("%s %q is not a port", name, raw)
	}
	return nil
}
