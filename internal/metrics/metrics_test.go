package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("espn", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("espn", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("espn"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("espn"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("espn"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("espn")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("espn", 5*time.Second)
	rec.RecordRateLimit("espn", 0)

	if got := rec.RateLimitHits("espn"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("espn"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksEventsAndCelebrations(t *testing.T) {
	rec := NewRecorder()
	rec.RecordEvent("SCORE_CHANGED")
	rec.RecordEvent("SCORE_CHANGED")
	rec.RecordEvent("GAME_ENDED")
	rec.RecordCelebration("SCORE_CHANGED")

	if got := rec.EventCount("SCORE_CHANGED"); got != 2 {
		t.Fatalf("expected 2 score events, got %d", got)
	}
	if got := rec.EventCount("GAME_ENDED"); got != 1 {
		t.Fatalf("expected 1 ended event, got %d", got)
	}
	if got := rec.Celebrations(); got != 1 {
		t.Fatalf("expected 1 celebration, got %d", got)
	}
}

func TestRecorderTracksDeviceSends(t *testing.T) {
	rec := NewRecorder()
	rec.RecordDeviceSend("bulb-1", 20*time.Millisecond, "delivered", nil)
	rec.RecordDeviceSend("bulb-1", 30*time.Millisecond, "failed", errors.New("unreachable"))

	if got := rec.DeviceSends("bulb-1"); got != 2 {
		t.Fatalf("expected 2 sends, got %d", got)
	}
	if got := rec.DeviceFailures("bulb-1"); got != 1 {
		t.Fatalf("expected 1 failure, got %d", got)
	}
	if got := rec.DeviceSends("bulb-2"); got != 0 {
		t.Fatalf("expected 0 sends for unknown device, got %d", got)
	}
}

func TestRecorderTracksPollCycles(t *testing.T) {
	rec := NewRecorder()
	rec.RecordPollCycle(time.Millisecond, nil)
	rec.RecordPollCycle(time.Millisecond, errors.New("boom"))

	if got := rec.PollCycles(); got != 2 {
		t.Fatalf("expected 2 cycles, got %d", got)
	}
}

func TestRecorderNilSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("espn", time.Millisecond, nil)
	rec.RecordRateLimit("espn", time.Second)
	rec.RecordPollCycle(time.Millisecond, nil)
	rec.RecordEvent("GAME_STARTED")
	rec.RecordCelebration("GAME_STARTED")
	rec.RecordDeviceSend("bulb-1", time.Millisecond, "delivered", nil)
	rec.RecordHistoryAppend(nil)
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)

	if rec.Celebrations() != 0 || rec.PollCycles() != 0 {
		t.Fatal("expected zero counts from nil recorder")
	}
}
