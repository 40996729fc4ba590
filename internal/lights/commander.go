package lights

import (
	"context"
	"errors"
	"fmt"

	"smart-stadium/internal/effects"
)

// Commander delivers one effect command to one device.
type Commander interface {
	Apply(ctx context.Context, device Device, effect effects.Effect) error
}

// commanderMux routes each command to the driver for the device's protocol.
type commanderMux struct {
	drivers map[Protocol]Commander
}

// NewCommander wires the protocol drivers needed by the configured devices.
// Govee devices require an API key; configuring them without one is a
// startup-time failure.
func NewCommander(devices []Device, govee GoveeConfig) (Commander, error) {
	drivers := map[Protocol]Commander{
		ProtocolWiz: NewWizCommander(),
	}

	for _, d := range devices {
		if d.Protocol != ProtocolGovee {
			continue
		}
		if govee.APIKey == "" {
			return nil, errors.New("govee devices configured without an api key")
		}
		drivers[ProtocolGovee] = NewGoveeCommander(govee)
		break
	}
	return commanderMux{drivers: drivers}, nil
}

func (m commanderMux) Apply(ctx context.Context, device Device, effect effects.Effect) error {
	driver, ok := m.drivers[device.Protocol]
	if !ok {
		return fmt.Errorf("device %s: no driver for protocol %q", device.ID, device.Protocol)
	}
	return driver.Apply(ctx, device, effect)
}
