package lights

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Protocol selects the driver used to reach a device.
type Protocol string

const (
	ProtocolWiz   Protocol = "wiz"
	ProtocolGovee Protocol = "govee"
)

// Device is one configured light. Address is a host or host:port for wiz
// devices and the Govee device identifier for govee devices.
type Device struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Protocol Protocol `json:"protocol"`
	Address  string   `json:"address"`
	Model    string   `json:"model,omitempty"`
	Enabled  bool     `json:"enabled"`
}

// DeviceState is a device plus the registry's view of it. Reachable stays nil
// until a dispatch has touched the device.
type DeviceState struct {
	Device
	Reachable   *bool     `json:"reachable"`
	LastOutcome string    `json:"lastOutcome,omitempty"`
	LastAttempt time.Time `json:"lastAttempt,omitempty"`
}

type deviceDocument struct {
	Devices []Device `json:"devices"`
}

// LoadDevices reads the device configuration file. Any unreadable, malformed,
// or celebration-incapable configuration is a startup-time failure.
func LoadDevices(path string) ([]Device, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read devices: %w", err)
	}
	devices, err := ParseDevices(raw)
	if err != nil {
		return nil, fmt.Errorf("devices %s: %w", path, err)
	}
	return devices, nil
}

// ParseDevices decodes and validates a device document.
func ParseDevices(raw []byte) ([]Device, error) {
	var doc deviceDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.Devices) == 0 {
		return nil, errors.New("no devices configured")
	}

	seen := make(map[string]struct{}, len(doc.Devices))
	enabled := 0
	for i, d := range doc.Devices {
		if d.ID == "" {
			return nil, fmt.Errorf("device %d: missing id", i)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("device %q: duplicate id", d.ID)
		}
		seen[d.ID] = struct{}{}
		if d.Address == "" {
			return nil, fmt.Errorf("device %q: missing address", d.ID)
		}
		switch d.Protocol {
		case ProtocolWiz:
		case ProtocolGovee:
			if d.Model == "" {
				return nil, fmt.Errorf("device %q: govee devices need a model", d.ID)
			}
		default:
			return nil, fmt.Errorf("device %q: unknown protocol %q", d.ID, d.Protocol)
		}
		if d.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return nil, errors.New("no enabled devices; celebrations would be dark")
	}
	return doc.Devices, nil
}
