package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/providers"
)

// Config controls how the ESPN client reaches the upstream scoreboard API.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Timezone   string
	HTTPClient *http.Client
}

// Client fetches scoreboards from ESPN's site API and maps them to domain snapshots.
type Client struct {
	baseURL    string
	httpClient httpDoer
	now        func() time.Time
	loc        *time.Location
}

// NewClient constructs an ESPN client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
		loc:        resolveLocation(cfg.Timezone),
	}
}

// FetchScoreboard retrieves the scoreboard for the given sport and date.
func (c *Client) FetchScoreboard(ctx context.Context, sport contests.Sport, date string) ([]contests.Snapshot, error) {
	req, err := c.buildRequest(ctx, sport, date)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
		}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("espn: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload scoreboardResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return nil, decodeErr
	}

	observed := c.now()
	snaps := make([]contests.Snapshot, 0, len(payload.Events))
	for _, ev := range payload.Events {
		snap, mapErr := mapEvent(ev, sport, observed)
		if mapErr != nil {
			return nil, mapErr
		}
		snaps = append(snaps, snap)
	}

	return snaps, nil
}

func (c *Client) buildRequest(ctx context.Context, sport contests.Sport, date string) (*http.Request, error) {
	path, ok := sportPaths[sport]
	if !ok {
		return nil, fmt.Errorf("espn: unsupported sport %q", sport)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path+"/scoreboard", nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("dates", c.resolveDate(date))
	req.URL.RawQuery = q.Encode()

	return req, nil
}

// resolveDate converts a YYYY-MM-DD date into ESPN's compact form,
// defaulting to today in the configured timezone.
func (c *Client) resolveDate(date string) string {
	if date != "" {
		if d, err := time.Parse("2006-01-02", date); err == nil {
			return d.Format("20060102")
		}
	}
	return c.now().In(c.loc).Format("20060102")
}

// parseRetryAfter accepts both delta-seconds and HTTP-date forms.
func parseRetryAfter(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
