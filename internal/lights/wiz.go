package lights

import (
	"context"
	"encoding/json"
	"fmt"
	"net"

	"smart-stadium/internal/effects"
)

const (
	wizPort          = "38899"
	wizMethod        = "setPilot"
	restingWhiteTemp = 2700
	wizReadBuffer    = 1024
)

type wizDialFunc func(ctx context.Context, address string) (net.Conn, error)

// WizCommander drives WiZ bulbs over their JSON-over-UDP protocol. One
// setPilot datagram per effect; the bulb holds the pilot until replaced.
type WizCommander struct {
	dial wizDialFunc
}

func NewWizCommander() *WizCommander {
	return &WizCommander{dial: dialUDP}
}

func dialUDP(ctx context.Context, address string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, "udp", address)
}

type wizRequest struct {
	ID     int      `json:"id"`
	Method string   `json:"method"`
	Params wizPilot `json:"params"`
}

type wizPilot struct {
	State   bool `json:"state"`
	Dimming int  `json:"dimming"`
	R       *int `json:"r,omitempty"`
	G       *int `json:"g,omitempty"`
	B       *int `json:"b,omitempty"`
	Temp    *int `json:"temp,omitempty"`
}

type wizResponse struct {
	Method string `json:"method"`
	Result struct {
		Success bool `json:"success"`
	} `json:"result"`
	Error *wizError `json:"error"`
}

type wizError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (w *WizCommander) Apply(ctx context.Context, device Device, effect effects.Effect) error {
	payload, err := json.Marshal(wizRequest{ID: 1, Method: wizMethod, Params: wizParams(effect)})
	if err != nil {
		return fmt.Errorf("wiz %s: encode: %w", device.ID, err)
	}

	conn, err := w.dial(ctx, wizAddress(device.Address))
	if err != nil {
		return fmt.Errorf("wiz %s: dial: %w", device.ID, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return fmt.Errorf("wiz %s: deadline: %w", device.ID, err)
		}
	}

	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("wiz %s: send: %w", device.ID, err)
	}

	buf := make([]byte, wizReadBuffer)
	n, err := conn.Read(buf)
	if err != nil {
		return fmt.Errorf("wiz %s: read: %w", device.ID, err)
	}

	var resp wizResponse
	if err := json.Unmarshal(buf[:n], &resp); err != nil {
		return fmt.Errorf("wiz %s: decode: %w", device.ID, err)
	}
	if resp.Error != nil {
		return fmt.Errorf("wiz %s: rejected: %s (code %d)", device.ID, resp.Error.Message, resp.Error.Code)
	}
	if !resp.Result.Success {
		return fmt.Errorf("wiz %s: command not acknowledged", device.ID)
	}
	return nil
}

// wizParams maps an effect onto one pilot. The resting effect switches the
// bulb into white mode; everything else pins the primary color.
func wizParams(effect effects.Effect) wizPilot {
	pilot := wizPilot{State: true, Dimming: wizDimming(effect.Intensity)}
	if effect.Label == effects.LabelDefaultLighting {
		temp := restingWhiteTemp
		pilot.Temp = &temp
		return pilot
	}
	r, g, b := int(effect.Primary.R), int(effect.Primary.G), int(effect.Primary.B)
	pilot.R, pilot.G, pilot.B = &r, &g, &b
	return pilot
}

// wizDimming converts a 0-255 intensity to the bulb's 10-100 percent range.
func wizDimming(intensity int) int {
	pct := intensity * 100 / 255
	if pct < 10 {
		return 10
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func wizAddress(address string) string {
	if _, _, err := net.SplitHostPort(address); err == nil {
		return address
	}
	return net.JoinHostPort(address, wizPort)
}
