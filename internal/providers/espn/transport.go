package espn

import (
	"net/http"
	"strings"
	"time"

	"smart-stadium/internal/domain/contests"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func resolveLocation(name string) *time.Location {
	if name == "" {
		name = defaultTimezone
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}

// sportPaths maps domain sports onto ESPN's league path segments.
var sportPaths = map[contests.Sport]string{
	contests.SportNFL:             "football/nfl",
	contests.SportCollegeFootball: "football/college-football",
}
