package espn

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/providers"
)

const scoreboardBody = `{
	"events": [
		{
			"id": "401547602",
			"date": "2025-11-02T18:00Z",
			"name": "Tennessee Titans at Pittsburgh Steelers",
			"shortName": "TEN @ PIT",
			"competitions": [
				{
					"id": "401547602",
					"competitors": [
						{
							"id": "23",
							"homeAway": "home",
							"score": "20",
							"team": { "id": "23", "abbreviation": "PIT", "displayName": "Pittsburgh Steelers" }
						},
						{
							"id": "10",
							"homeAway": "away",
							"score": "16",
							"team": { "id": "10", "abbreviation": "TEN", "displayName": "Tennessee Titans" }
						}
					],
					"situation": {
						"isRedZone": true,
						"possession": "23",
						"lastPlay": {
							"id": "4015476021234",
							"text": "George Pickens 12 Yd pass from Kenny Pickett",
							"scoringPlay": true,
							"team": { "id": "23" },
							"type": { "id": "67", "text": "Passing Touchdown" }
						}
					},
					"status": {
						"period": 4,
						"displayClock": "2:00",
						"type": { "id": "2", "name": "STATUS_IN_PROGRESS", "state": "in", "completed": false }
					}
				}
			]
		}
	]
}`

func TestFetchScoreboardHitsAPIAndMapsResponse(t *testing.T) {
	fixed := time.Date(2025, 11, 2, 3, 0, 0, 0, time.UTC) // still 2025-11-01 in America/New_York
	var capturedPath string
	var capturedQuery string

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		capturedPath = req.URL.Path
		capturedQuery = req.URL.RawQuery
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(scoreboardBody)),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
		Timezone:   "America/New_York",
	})
	client.now = func() time.Time { return fixed }

	snaps, err := client.FetchScoreboard(context.Background(), contests.SportNFL, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if capturedPath != "/football/nfl/scoreboard" {
		t.Fatalf("expected nfl scoreboard path, got %s", capturedPath)
	}
	q, err := url.ParseQuery(capturedQuery)
	if err != nil {
		t.Fatalf("failed parsing query %s: %v", capturedQuery, err)
	}
	if q.Get("dates") != "20251101" {
		t.Fatalf("expected dates=20251101 in NY, got %s", q.Get("dates"))
	}

	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}
	snap := snaps[0]
	if snap.ContestID != "espn-401547602" {
		t.Fatalf("unexpected contest id %s", snap.ContestID)
	}
	if snap.Status != contests.StatusInProgress {
		t.Fatalf("unexpected status %s", snap.Status)
	}
	if snap.Score.Home != 20 || snap.Score.Away != 16 {
		t.Fatalf("unexpected score %+v", snap.Score)
	}
	if snap.HomeTeam.Abbreviation != "PIT" || snap.AwayTeam.Abbreviation != "TEN" {
		t.Fatalf("unexpected teams %+v / %+v", snap.HomeTeam, snap.AwayTeam)
	}
	if !snap.RedZone || snap.Possession != "home" {
		t.Fatalf("expected home red zone possession, got redZone=%v possession=%s", snap.RedZone, snap.Possession)
	}
	if len(snap.PlayMarkers) != 1 {
		t.Fatalf("expected 1 play marker, got %d", len(snap.PlayMarkers))
	}
	play := snap.PlayMarkers[0]
	if play.ID != "4015476021234" || play.Team != "home" || !play.ScoringPlay {
		t.Fatalf("unexpected play marker %+v", play)
	}
	if play.Text != "Passing Touchdown" {
		t.Fatalf("expected play type text, got %q", play.Text)
	}
	if !snap.ObservedAt.Equal(fixed) {
		t.Fatalf("expected observedAt %s, got %s", fixed, snap.ObservedAt)
	}
}

func TestFetchScoreboardUsesExplicitDate(t *testing.T) {
	var capturedQuery string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		capturedQuery = req.URL.RawQuery
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"events": []}`)),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})

	snaps, err := client.FetchScoreboard(context.Background(), contests.SportCollegeFootball, "2025-09-06")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(snaps) != 0 {
		t.Fatalf("expected no snapshots, got %d", len(snaps))
	}
	q, _ := url.ParseQuery(capturedQuery)
	if q.Get("dates") != "20250906" {
		t.Fatalf("expected dates=20250906, got %s", q.Get("dates"))
	}
}

func TestFetchScoreboardReturnsRateLimitError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		header := make(http.Header)
		header.Set("Retry-After", "30")
		header.Set("X-RateLimit-Remaining", "0")
		return &http.Response{
			StatusCode: http.StatusTooManyRequests,
			Body:       io.NopCloser(strings.NewReader("slow down")),
			Header:     header,
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})

	_, err := client.FetchScoreboard(context.Background(), contests.SportNFL, "2025-11-02")
	rlErr, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rlErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rlErr.StatusCode)
	}
	if rlErr.RetryAfter != 30*time.Second {
		t.Fatalf("expected retry-after 30s, got %s", rlErr.RetryAfter)
	}
	if rlErr.Remaining != "0" {
		t.Fatalf("expected remaining header captured, got %q", rlErr.Remaining)
	}
}

func TestFetchScoreboardHandlesNon200(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("boom")),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})

	if _, err := client.FetchScoreboard(context.Background(), contests.SportNFL, "2025-11-02"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestFetchScoreboardHandlesDecodeError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("{bad json")),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})

	if _, err := client.FetchScoreboard(context.Background(), contests.SportNFL, "2025-11-02"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFetchScoreboardFailsClosedOnMalformedEvent(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		body := `{"events": [{"id": "", "competitions": []}]}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})

	_, err := client.FetchScoreboard(context.Background(), contests.SportNFL, "2025-11-02")
	if _, ok := providers.AsMalformedPayloadError(err); !ok {
		t.Fatalf("expected malformed payload error, got %v", err)
	}
}

func TestFetchScoreboardRejectsUnknownSport(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://example.com"})
	if _, err := client.FetchScoreboard(context.Background(), contests.Sport("cricket"), ""); err == nil {
		t.Fatal("expected error for unsupported sport")
	}
}

func TestNewClientSetsDefaultHTTPClient(t *testing.T) {
	c := NewClient(Config{})
	httpClient, ok := c.httpClient.(*http.Client)
	if !ok {
		t.Fatalf("expected default http client")
	}
	if httpClient.Timeout != defaultHTTPTimeout {
		t.Fatalf("expected default timeout, got %s", httpClient.Timeout)
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter(""); got != 0 {
		t.Fatalf("expected zero for empty header, got %s", got)
	}
	if got := parseRetryAfter("45"); got != 45*time.Second {
		t.Fatalf("expected 45s, got %s", got)
	}
	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(future); got <= 0 || got > time.Minute {
		t.Fatalf("expected positive duration up to a minute, got %s", got)
	}
	if got := parseRetryAfter("garbage"); got != 0 {
		t.Fatalf("expected zero for unparseable header, got %s", got)
	}
}

func TestFetchScoreboardPropagatesTransportError(t *testing.T) {
	transportErr := errors.New("dial refused")
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return nil, transportErr
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})

	if _, err := client.FetchScoreboard(context.Background(), contests.SportNFL, "2025-11-02"); err == nil {
		t.Fatal("expected transport error")
	}
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
