package tracker

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/domain/events"
	"smart-stadium/internal/logging"
	"smart-stadium/internal/metrics"
)

// Tracker keeps a thread-safe view of every tracked contest and turns
// successive snapshots into deduplicated domain events.
type Tracker struct {
	mu      sync.RWMutex
	entries map[string]*entry
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// entry is the tracked state for one contest: the latest accepted snapshot
// plus the memory needed to never emit the same event twice.
type entry struct {
	snapshot    contests.Snapshot
	emitted     map[string]struct{}
	seenPlays   map[string]struct{}
	redZone     bool
	redZoneSeq  int
	finalizedAt time.Time
}

func newEntry(snap contests.Snapshot) *entry {
	return &entry{
		snapshot:  snap,
		emitted:   make(map[string]struct{}),
		seenPlays: make(map[string]struct{}),
	}
}

func (e *entry) alreadyEmitted(key string) bool {
	_, ok := e.emitted[key]
	return ok
}

func (e *entry) markEmitted(key string) {
	e.emitted[key] = struct{}{}
}

// New constructs an empty Tracker.
func New(logger *slog.Logger, recorder *metrics.Recorder) *Tracker {
	return &Tracker{
		entries: make(map[string]*entry),
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

// Reconcile folds one observed snapshot into the tracker and returns the
// events synthesized from the difference with the previous observation.
// Stale observations and regressions are dropped without emitting anything.
func (t *Tracker) Reconcile(snap contests.Snapshot) []events.Event {
	if snap.ContestID == "" {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[snap.ContestID]
	if !ok {
		return t.record(t.admit(snap))
	}

	prev := e.snapshot
	if snap.ObservedAt.Before(prev.ObservedAt) {
		logging.Debug(t.logger, "stale snapshot ignored",
			logging.FieldContest, snap.ContestID)
		return nil
	}
	if prev.Status == contests.StatusFinal {
		// Final is terminal; late updates for a finished contest are noise.
		return nil
	}
	if statusRegressed(prev.Status, snap.Status) {
		logging.Debug(t.logger, "status regression ignored",
			logging.FieldContest, snap.ContestID,
			logging.FieldState, string(snap.Status))
		return nil
	}

	evs := t.synthesize(e, prev, snap)
	e.snapshot = snap
	if snap.Status == contests.StatusFinal && e.finalizedAt.IsZero() {
		e.finalizedAt = t.now()
	}
	return t.record(evs)
}

// admit registers a contest seen for the first time. Joining mid-game never
// replays celebrations for the score already on the board.
func (t *Tracker) admit(snap contests.Snapshot) []events.Event {
	e := newEntry(snap)
	t.entries[snap.ContestID] = e

	for _, m := range snap.PlayMarkers {
		if m.ID != "" {
			e.seenPlays[m.ID] = struct{}{}
		}
	}
	e.redZone = snap.RedZone
	if snap.Status == contests.StatusFinal {
		e.finalizedAt = t.now()
	}
	if snap.Status == contests.StatusScheduled {
		return nil
	}

	key := events.GameStartedKey(snap.ContestID)
	e.markEmitted(key)
	return []events.Event{{
		Kind:       events.KindGameStarted,
		ContestID:  snap.ContestID,
		Sport:      snap.Sport,
		DedupeKey:  key,
		DetectedAt: t.now(),
	}}
}

func (t *Tracker) record(evs []events.Event) []events.Event {
	for _, ev := range evs {
		if t.metrics != nil {
			t.metrics.RecordEvent(string(ev.Kind))
		}
		logging.Debug(t.logger, "event synthesized",
			logging.FieldEvent, string(ev.Kind),
			logging.FieldContest, ev.ContestID)
	}
	return evs
}

// statusRegressed reports whether moving from one phase to another would walk
// the lifecycle backwards, which only stale upstream reads produce.
func statusRegressed(from, to contests.Status) bool {
	if from == to {
		return false
	}
	switch from {
	case contests.StatusInProgress, contests.StatusHalted:
		return to == contests.StatusScheduled
	case contests.StatusFinal:
		return true
	}
	return false
}

// Snapshot returns the latest accepted snapshot for a contest.
func (t *Tracker) Snapshot(contestID string) (contests.Snapshot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[contestID]
	if !ok {
		return contests.Snapshot{}, false
	}
	return e.snapshot, true
}

// Snapshots returns a copy of all tracked snapshots ordered by contest ID.
func (t *Tracker) Snapshots() []contests.Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]contests.Snapshot, 0, len(t.entries))
	for _, e := range t.entries {
		result = append(result, e.snapshot)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ContestID < result[j].ContestID
	})
	return result
}

// HasLive reports whether any tracked contest is in progress or halted.
// The poll loop uses this to pick its cadence.
func (t *Tracker) HasLive() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, e := range t.entries {
		switch e.snapshot.Status {
		case contests.StatusInProgress, contests.StatusHalted:
			return true
		}
	}
	return false
}

// Len returns the number of tracked contests.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// EvictFinished drops contests that went final at least retention ago,
// releasing their dedupe memory. It returns the number evicted.
func (t *Tracker) EvictFinished(retention time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	evicted := 0
	for id, e := range t.entries {
		if e.snapshot.Status != contests.StatusFinal || e.finalizedAt.IsZero() {
			continue
		}
		if now.Sub(e.finalizedAt) >= retention {
			delete(t.entries, id)
			evicted++
		}
	}
	if evicted > 0 {
		logging.Debug(t.logger, "evicted finished contests", logging.FieldCount, evicted)
	}
	return evicted
}
