package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"smart-stadium/internal/config"
	"smart-stadium/internal/effects"
	"smart-stadium/internal/lights"
	"smart-stadium/internal/logging"
)

var flagDevice string

func newLightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lights",
		Short: "Operate the configured light fleet",
	}

	test := &cobra.Command{
		Use:   "test",
		Short: "Blink devices once and report each outcome",
		RunE:  runLightsTest,
	}
	test.Flags().StringVar(&flagDevice, "device", "", "Test a single device by id")

	cmd.AddCommand(test)
	return cmd
}

func runLightsTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	controller, err := buildController(cfg)
	if err != nil {
		return err
	}
	defer controller.Shutdown(cmd.Context())

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var ids []string
	if flagDevice != "" {
		ids = append(ids, flagDevice)
	} else {
		for _, d := range controller.Registry().All() {
			ids = append(ids, d.ID)
		}
	}

	failures := 0
	for _, id := range ids {
		outcome, err := controller.TestDevice(ctx, id)
		if err != nil {
			return err
		}
		if outcome.Status != lights.OutcomeSucceeded {
			failures++
		}
		line := fmt.Sprintf("%-16s %-10s attempts=%d %dms", id, outcome.Status, outcome.Attempts, outcome.ElapsedMs)
		if outcome.Error != "" {
			line += " " + outcome.Error
		}
		fmt.Fprintln(out, line)
	}

	if failures < len(ids) {
		// Let the blink play out before the deferred shutdown restores
		// default lighting.
		blink := effects.DeviceTest()
		time.Sleep(time.Duration(blink.DurationMs) * time.Millisecond)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d devices failed", failures, len(ids))
	}
	fmt.Fprintf(out, "%d devices ok\n", len(ids))
	return nil
}

func buildController(cfg config.Config) (*lights.Controller, error) {
	devices, err := lights.LoadDevices(cfg.Lights.DevicesFile)
	if err != nil {
		return nil, err
	}
	commander, err := lights.NewCommander(devices, lights.GoveeConfig{
		BaseURL: cfg.Lights.GoveeBaseURL,
		APIKey:  cfg.Lights.GoveeAPIKey,
	})
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(logging.Config{Level: "error"})
	registry := lights.NewRegistry(devices, logger)
	dispatcher := lights.NewDispatcher(commander, logger, nil, lights.DispatcherConfig{
		CommandTimeout: cfg.Lights.CommandTimeout,
		RetryDelay:     cfg.Lights.RetryDelay,
		Deadline:       cfg.Lights.DispatchDeadline,
	})
	return lights.NewController(registry, dispatcher, logger), nil
}
