package tracker

import (
	"testing"
	"time"

	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/domain/events"
	"smart-stadium/internal/metrics"
)

var (
	testHome = contests.Team{ID: "23", Name: "Pittsburgh Steelers", Abbreviation: "PIT"}
	testAway = contests.Team{ID: "10", Name: "Tennessee Titans", Abbreviation: "TEN"}
)

func baseSnapshot(observed time.Time) contests.Snapshot {
	return contests.Snapshot{
		ContestID:  "espn-401",
		Sport:      contests.SportNFL,
		HomeTeam:   testHome,
		AwayTeam:   testAway,
		Status:     contests.StatusInProgress,
		ObservedAt: observed,
	}
}

func newTestTracker(t *testing.T) (*Tracker, time.Time) {
	t.Helper()
	fixed := time.Date(2025, 11, 2, 18, 0, 0, 0, time.UTC)
	tr := New(nil, metrics.NewRecorder())
	tr.now = func() time.Time { return fixed }
	return tr, fixed
}

func kinds(evs []events.Event) []events.Kind {
	out := make([]events.Kind, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Kind)
	}
	return out
}

func TestReconcileFirstObservationInProgressEmitsGameStarted(t *testing.T) {
	tr, fixed := newTestTracker(t)

	snap := baseSnapshot(fixed)
	snap.Score = contests.Score{Home: 14, Away: 3}

	evs := tr.Reconcile(snap)
	if len(evs) != 1 || evs[0].Kind != events.KindGameStarted {
		t.Fatalf("expected only GameStarted, got %v", kinds(evs))
	}
	if evs[0].DedupeKey != "espn-401|started" {
		t.Fatalf("unexpected dedupe key %s", evs[0].DedupeKey)
	}

	stored, ok := tr.Snapshot("espn-401")
	if !ok || stored.Score.Home != 14 {
		t.Fatalf("expected snapshot stored with score, got %+v ok=%v", stored, ok)
	}
}

func TestReconcileFirstObservationScheduledEmitsNothing(t *testing.T) {
	tr, fixed := newTestTracker(t)

	snap := baseSnapshot(fixed)
	snap.Status = contests.StatusScheduled

	if evs := tr.Reconcile(snap); len(evs) != 0 {
		t.Fatalf("expected no events for scheduled contest, got %v", kinds(evs))
	}
	if tr.Len() != 1 {
		t.Fatalf("expected contest tracked, got %d", tr.Len())
	}
}

func TestReconcileFirstObservationFinalEmitsOnlyGameStarted(t *testing.T) {
	tr, fixed := newTestTracker(t)

	snap := baseSnapshot(fixed)
	snap.Status = contests.StatusFinal
	snap.Score = contests.Score{Home: 24, Away: 17}

	evs := tr.Reconcile(snap)
	if len(evs) != 1 || evs[0].Kind != events.KindGameStarted {
		t.Fatalf("expected only GameStarted for contest first seen final, got %v", kinds(evs))
	}

	// The entry is terminal from the start; nothing is diffed afterwards.
	later := baseSnapshot(fixed.Add(time.Minute))
	later.Status = contests.StatusFinal
	later.Score = contests.Score{Home: 31, Away: 17}
	if evs := tr.Reconcile(later); len(evs) != 0 {
		t.Fatalf("expected terminal entry to stay silent, got %v", kinds(evs))
	}
}

func TestReconcileIgnoresStaleObservation(t *testing.T) {
	tr, fixed := newTestTracker(t)

	current := baseSnapshot(fixed)
	current.Score = contests.Score{Home: 7, Away: 0}
	tr.Reconcile(current)

	stale := baseSnapshot(fixed.Add(-time.Minute))
	stale.Score = contests.Score{Home: 14, Away: 0}

	if evs := tr.Reconcile(stale); len(evs) != 0 {
		t.Fatalf("expected stale snapshot ignored, got %v", kinds(evs))
	}
	stored, _ := tr.Snapshot("espn-401")
	if stored.Score.Home != 7 {
		t.Fatalf("expected stored score unchanged, got %d", stored.Score.Home)
	}
}

func TestReconcileFinalIsTerminal(t *testing.T) {
	tr, fixed := newTestTracker(t)

	live := baseSnapshot(fixed)
	tr.Reconcile(live)

	final := baseSnapshot(fixed.Add(time.Minute))
	final.Status = contests.StatusFinal
	final.Score = contests.Score{Home: 20, Away: 10}
	tr.Reconcile(final)

	revived := baseSnapshot(fixed.Add(2 * time.Minute))
	revived.Score = contests.Score{Home: 27, Away: 10}

	if evs := tr.Reconcile(revived); len(evs) != 0 {
		t.Fatalf("expected final contest to ignore updates, got %v", kinds(evs))
	}
	stored, _ := tr.Snapshot("espn-401")
	if stored.Status != contests.StatusFinal || stored.Score.Home != 20 {
		t.Fatalf("expected final snapshot retained, got %+v", stored)
	}
}

func TestReconcileIgnoresStatusRegression(t *testing.T) {
	tr, fixed := newTestTracker(t)

	live := baseSnapshot(fixed)
	tr.Reconcile(live)

	regressed := baseSnapshot(fixed.Add(time.Minute))
	regressed.Status = contests.StatusScheduled

	if evs := tr.Reconcile(regressed); len(evs) != 0 {
		t.Fatalf("expected regression ignored, got %v", kinds(evs))
	}
	stored, _ := tr.Snapshot("espn-401")
	if stored.Status != contests.StatusInProgress {
		t.Fatalf("expected status unchanged, got %s", stored.Status)
	}
}

func TestReconcileIgnoresEmptyContestID(t *testing.T) {
	tr, fixed := newTestTracker(t)

	snap := baseSnapshot(fixed)
	snap.ContestID = ""

	if evs := tr.Reconcile(snap); evs != nil {
		t.Fatalf("expected nil events for empty contest id")
	}
	if tr.Len() != 0 {
		t.Fatalf("expected nothing tracked, got %d", tr.Len())
	}
}

func TestSnapshotsReturnsSortedCopies(t *testing.T) {
	tr, fixed := newTestTracker(t)

	b := baseSnapshot(fixed)
	b.ContestID = "espn-2"
	a := baseSnapshot(fixed)
	a.ContestID = "espn-1"
	tr.Reconcile(b)
	tr.Reconcile(a)

	snaps := tr.Snapshots()
	if len(snaps) != 2 || snaps[0].ContestID != "espn-1" || snaps[1].ContestID != "espn-2" {
		t.Fatalf("expected sorted snapshots, got %+v", snaps)
	}
}

func TestHasLiveReflectsStatuses(t *testing.T) {
	tr, fixed := newTestTracker(t)

	scheduled := baseSnapshot(fixed)
	scheduled.Status = contests.StatusScheduled
	tr.Reconcile(scheduled)

	if tr.HasLive() {
		t.Fatalf("expected no live contests")
	}

	live := baseSnapshot(fixed.Add(time.Minute))
	tr.Reconcile(live)

	if !tr.HasLive() {
		t.Fatalf("expected live contest detected")
	}
}

func TestEvictFinishedHonorsRetention(t *testing.T) {
	tr, fixed := newTestTracker(t)

	live := baseSnapshot(fixed)
	tr.Reconcile(live)

	final := baseSnapshot(fixed.Add(time.Minute))
	final.Status = contests.StatusFinal
	tr.Reconcile(final)

	if n := tr.EvictFinished(time.Hour); n != 0 {
		t.Fatalf("expected nothing evicted inside retention, got %d", n)
	}

	tr.now = func() time.Time { return fixed.Add(2 * time.Hour) }
	if n := tr.EvictFinished(time.Hour); n != 1 {
		t.Fatalf("expected one eviction, got %d", n)
	}
	if tr.Len() != 0 {
		t.Fatalf("expected tracker emptied, got %d", tr.Len())
	}
}

func TestEvictionDropsDedupeMemory(t *testing.T) {
	tr, fixed := newTestTracker(t)

	live := baseSnapshot(fixed)
	tr.Reconcile(live)
	final := baseSnapshot(fixed.Add(time.Minute))
	final.Status = contests.StatusFinal
	tr.Reconcile(final)

	tr.now = func() time.Time { return fixed.Add(2 * time.Hour) }
	tr.EvictFinished(time.Hour)

	// Re-observing the finished contest readmits it as a first observation:
	// GameStarted only, never a replay of the score or the GameEnded event.
	readmit := baseSnapshot(fixed.Add(3 * time.Hour))
	readmit.Status = contests.StatusFinal
	readmit.Score = contests.Score{Home: 24, Away: 17}
	evs := tr.Reconcile(readmit)
	if len(evs) != 1 || evs[0].Kind != events.KindGameStarted {
		t.Fatalf("expected readmit to emit only GameStarted, got %v", kinds(evs))
	}
	if tr.Len() != 1 {
		t.Fatalf("expected contest readmitted, got %d", tr.Len())
	}
}

func TestReconcileRecordsEventMetrics(t *testing.T) {
	fixed := time.Date(2025, 11, 2, 18, 0, 0, 0, time.UTC)
	rec := metrics.NewRecorder()
	tr := New(nil, rec)
	tr.now = func() time.Time { return fixed }

	tr.Reconcile(baseSnapshot(fixed))

	if got := rec.EventCount(string(events.KindGameStarted)); got != 1 {
		t.Fatalf("expected game started counted, got %d", got)
	}
}

func BenchmarkReconcile(b *testing.B) {
	fixed := time.Date(2025, 11, 2, 18, 0, 0, 0, time.UTC)
	tr := New(nil, nil)
	tr.now = func() time.Time { return fixed }

	snap := baseSnapshot(fixed)
	tr.Reconcile(snap)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		next := snap
		next.ObservedAt = fixed.Add(time.Duration(i+1) * time.Second)
		next.Score = contests.Score{Home: i + 1, Away: i}
		tr.Reconcile(next)
	}
}
