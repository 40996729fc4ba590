package lights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"smart-stadium/internal/effects"
)

const (
	goveeControlPath   = "/v1/devices/control"
	goveeKeyHeader     = "Govee-API-Key"
	defaultGoveeAPIURL = "https://developer-api.govee.com"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// GoveeConfig carries what the cloud-API driver needs.
type GoveeConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// GoveeCommander drives Govee devices through the vendor's cloud API. The
// device's Address field holds the Govee device identifier.
type GoveeCommander struct {
	httpClient httpDoer
	baseURL    string
	apiKey     string
}

func NewGoveeCommander(cfg GoveeConfig) *GoveeCommander {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGoveeAPIURL
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &GoveeCommander{
		httpClient: client,
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
	}
}

type goveeCommand struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type goveeControlRequest struct {
	Device string       `json:"device"`
	Model  string       `json:"model"`
	Cmd    goveeCommand `json:"cmd"`
}

type goveeColorValue struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

type goveeControlResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (g *GoveeCommander) Apply(ctx context.Context, device Device, effect effects.Effect) error {
	body, err := json.Marshal(goveeControlRequest{
		Device: device.Address,
		Model:  device.Model,
		Cmd:    goveeEffectCommand(effect),
	})
	if err != nil {
		return fmt.Errorf("govee %s: encode: %w", device.ID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.baseURL+goveeControlPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("govee %s: build request: %w", device.ID, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(goveeKeyHeader, g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("govee %s: send: %w", device.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("govee %s: status %d: %s", device.ID, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded goveeControlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("govee %s: decode: %w", device.ID, err)
	}
	if decoded.Code != http.StatusOK {
		return fmt.Errorf("govee %s: rejected: %s (code %d)", device.ID, decoded.Message, decoded.Code)
	}
	return nil
}

// goveeEffectCommand picks the single control command for an effect: color
// temperature for the resting state, the primary color otherwise.
func goveeEffectCommand(effect effects.Effect) goveeCommand {
	if effect.Label == effects.LabelDefaultLighting {
		return goveeCommand{Name: "colorTem", Value: restingWhiteTemp}
	}
	return goveeCommand{
		Name: "color",
		Value: goveeColorValue{
			R: int(effect.Primary.R),
			G: int(effect.Primary.G),
			B: int(effect.Primary.B),
		},
	}
}
