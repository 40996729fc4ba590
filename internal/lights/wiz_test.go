package lights

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"smart-stadium/internal/effects"
)

// pipeDevice fakes a bulb on the other end of a net.Pipe.
func pipeDevice(t *testing.T, respond func(req wizRequest) string) (*WizCommander, chan wizRequest) {
	t.Helper()
	received := make(chan wizRequest, 1)

	commander := &WizCommander{
		dial: func(ctx context.Context, address string) (net.Conn, error) {
			client, server := net.Pipe()
			go func() {
				defer server.Close()
				buf := make([]byte, wizReadBuffer)
				n, err := server.Read(buf)
				if err != nil {
					return
				}
				var req wizRequest
				if err := json.Unmarshal(buf[:n], &req); err != nil {
					return
				}
				received <- req
				if reply := respond(req); reply != "" {
					server.Write([]byte(reply))
					return
				}
				// Silent device: hold the pipe open until the client gives up.
				server.Read(buf)
			}()
			return client, nil
		},
	}
	return commander, received
}

func wizDevice() Device {
	return Device{ID: "left", Protocol: ProtocolWiz, Address: "192.168.1.40", Enabled: true}
}

func TestWizApplySendsPilotAndReadsAck(t *testing.T) {
	commander, received := pipeDevice(t, func(wizRequest) string {
		return `{"method":"setPilot","env":"pro","result":{"success":true}}`
	})

	effect := effects.Effect{
		Label:     "touchdown",
		Pattern:   effects.PatternFlash,
		Primary:   effects.RGB{R: 255, G: 182, B: 18},
		Intensity: 255,
	}
	if err := commander.Apply(context.Background(), wizDevice(), effect); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	req := <-received
	if req.Method != "setPilot" {
		t.Fatalf("unexpected method %q", req.Method)
	}
	if req.Params.R == nil || *req.Params.R != 255 || *req.Params.G != 182 || *req.Params.B != 18 {
		t.Fatalf("unexpected rgb params: %+v", req.Params)
	}
	if req.Params.Temp != nil {
		t.Fatalf("expected no color temp for a celebration")
	}
	if req.Params.Dimming != 100 {
		t.Fatalf("expected dimming 100, got %d", req.Params.Dimming)
	}
	if !req.Params.State {
		t.Fatalf("expected state on")
	}
}

func TestWizApplyDefaultLightingUsesWhiteMode(t *testing.T) {
	commander, received := pipeDevice(t, func(wizRequest) string {
		return `{"method":"setPilot","result":{"success":true}}`
	})

	if err := commander.Apply(context.Background(), wizDevice(), effects.DefaultLighting()); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	req := <-received
	if req.Params.Temp == nil || *req.Params.Temp != 2700 {
		t.Fatalf("expected 2700K white mode, got %+v", req.Params)
	}
	if req.Params.R != nil {
		t.Fatalf("expected rgb cleared in white mode")
	}
	if req.Params.Dimming != 70 {
		t.Fatalf("expected dimming 70 for intensity 180, got %d", req.Params.Dimming)
	}
}

func TestWizApplyRejectedCommand(t *testing.T) {
	commander, _ := pipeDevice(t, func(wizRequest) string {
		return `{"method":"setPilot","error":{"code":-32600,"message":"Invalid Request"}}`
	})

	err := commander.Apply(context.Background(), wizDevice(), effects.DefaultLighting())
	if err == nil || !strings.Contains(err.Error(), "Invalid Request") {
		t.Fatalf("expected rejection error, got %v", err)
	}
}

func TestWizApplyUnacknowledgedCommand(t *testing.T) {
	commander, _ := pipeDevice(t, func(wizRequest) string {
		return `{"method":"setPilot","result":{"success":false}}`
	})

	err := commander.Apply(context.Background(), wizDevice(), effects.DefaultLighting())
	if err == nil || !strings.Contains(err.Error(), "not acknowledged") {
		t.Fatalf("expected unacknowledged error, got %v", err)
	}
}

func TestWizApplySilentDeviceTimesOut(t *testing.T) {
	commander, _ := pipeDevice(t, func(wizRequest) string {
		return ""
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := commander.Apply(ctx, wizDevice(), effects.DefaultLighting())
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if !timedOut(err) {
		t.Fatalf("expected a timeout-classed error, got %v", err)
	}
}

func TestWizAddressAppendsDefaultPort(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"192.168.1.40", "192.168.1.40:38899"},
		{"192.168.1.40:38900", "192.168.1.40:38900"},
		{"fe80::1", "[fe80::1]:38899"},
	}
	for _, tc := range cases {
		if got := wizAddress(tc.in); got != tc.want {
			t.Fatalf("wizAddress(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWizDimmingBounds(t *testing.T) {
	cases := []struct {
		intensity int
		want      int
	}{
		{255, 100},
		{180, 70},
		{150, 58},
		{0, 10},
		{999, 100},
	}
	for _, tc := range cases {
		if got := wizDimming(tc.intensity); got != tc.want {
			t.Fatalf("wizDimming(%d) = %d, want %d", tc.intensity, got, tc.want)
		}
	}
}
