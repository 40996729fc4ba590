package tracker

import (
	"fmt"
	"time"

	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/domain/events"
)

// synthesize diffs the previous and new snapshots of one contest and returns
// the events the change implies, in a fixed order: status transitions, then
// score changes, then play detail, then red zone edges. A consumer reacting
// to the end of a game sees it before any trailing score noise from the same
// poll. The caller holds the tracker lock.
func (t *Tracker) synthesize(e *entry, prev, snap contests.Snapshot) []events.Event {
	detected := t.now()
	var evs []events.Event

	started, ended, phase := t.statusEvents(e, prev, snap, detected)
	if started != nil {
		evs = append(evs, *started)
	}
	if phase != nil {
		evs = append(evs, *phase)
	}
	if ended != nil {
		evs = append(evs, *ended)
	}
	evs = append(evs, t.scoreEvents(e, prev, snap, detected)...)
	evs = append(evs, t.playEvents(e, snap, detected)...)
	evs = append(evs, t.redZoneEvents(e, snap, detected)...)
	return evs
}

// statusEvents classifies a phase transition into at most one lifecycle event.
// A kickoff becomes GameStarted, reaching Final from any phase becomes
// GameEnded, and every other transition is a plain StatusChanged.
func (t *Tracker) statusEvents(e *entry, prev, snap contests.Snapshot, detected time.Time) (started, ended, phase *events.Event) {
	if snap.Status == prev.Status {
		return nil, nil, nil
	}

	switch {
	case prev.Status == contests.StatusScheduled && snap.Status == contests.StatusInProgress:
		key := events.GameStartedKey(snap.ContestID)
		if e.alreadyEmitted(key) {
			return nil, nil, nil
		}
		e.markEmitted(key)
		return &events.Event{
			Kind:       events.KindGameStarted,
			ContestID:  snap.ContestID,
			Sport:      snap.Sport,
			FromStatus: prev.Status,
			ToStatus:   snap.Status,
			DedupeKey:  key,
			DetectedAt: detected,
		}, nil, nil

	case snap.Status == contests.StatusFinal:
		key := events.GameEndedKey(snap.ContestID)
		if e.alreadyEmitted(key) {
			return nil, nil, nil
		}
		e.markEmitted(key)
		return nil, &events.Event{
			Kind:       events.KindGameEnded,
			ContestID:  snap.ContestID,
			Sport:      snap.Sport,
			Team:       snap.Team(snap.Leader()),
			FromStatus: prev.Status,
			ToStatus:   snap.Status,
			DedupeKey:  key,
			DetectedAt: detected,
		}, nil

	default:
		key := events.StatusChangedKey(snap.ContestID, prev.Status, snap.Status)
		if e.alreadyEmitted(key) {
			return nil, nil, nil
		}
		e.markEmitted(key)
		return nil, nil, &events.Event{
			Kind:       events.KindStatusChanged,
			ContestID:  snap.ContestID,
			Sport:      snap.Sport,
			FromStatus: prev.Status,
			ToStatus:   snap.Status,
			DedupeKey:  key,
			DetectedAt: detected,
		}
	}
}

// scoreEvents emits one ScoreChanged per side whose score rose. Several
// upstream scoring steps folded into one poll surface as a single event with
// the combined delta. Decreases are score corrections and update silently.
func (t *Tracker) scoreEvents(e *entry, prev, snap contests.Snapshot, detected time.Time) []events.Event {
	var evs []events.Event
	for _, side := range []contests.Side{contests.SideHome, contests.SideAway} {
		oldScore := prev.SideScore(side)
		newScore := snap.SideScore(side)
		if newScore <= oldScore {
			continue
		}
		key := events.ScoreChangedKey(snap.ContestID, string(side), newScore)
		if e.alreadyEmitted(key) {
			continue
		}
		e.markEmitted(key)
		evs = append(evs, events.Event{
			Kind:       events.KindScoreChanged,
			ContestID:  snap.ContestID,
			Sport:      snap.Sport,
			Team:       snap.Team(side),
			Delta:      newScore - oldScore,
			NewScore:   newScore,
			DedupeKey:  key,
			DetectedAt: detected,
		})
	}
	return evs
}

// playEvents emits a ScoringPlay for each unseen, classifiable play marker.
func (t *Tracker) playEvents(e *entry, snap contests.Snapshot, detected time.Time) []events.Event {
	var evs []events.Event
	for _, m := range snap.PlayMarkers {
		if m.ID == "" {
			continue
		}
		if _, seen := e.seenPlays[m.ID]; seen {
			continue
		}
		e.seenPlays[m.ID] = struct{}{}

		playType, ok := ClassifyPlay(m.Text)
		if !ok {
			continue
		}
		key := events.ScoringPlayKey(snap.ContestID, m.ID)
		if e.alreadyEmitted(key) {
			continue
		}
		e.markEmitted(key)
		evs = append(evs, events.Event{
			Kind:       events.KindScoringPlay,
			ContestID:  snap.ContestID,
			Sport:      snap.Sport,
			Team:       sideTeam(snap, m.Team),
			PlayType:   playType,
			DedupeKey:  key,
			DetectedAt: detected,
		})
	}
	return evs
}

// redZoneEvents tracks the red zone flag edge while the contest is live.
// Outside live play the flag syncs silently.
func (t *Tracker) redZoneEvents(e *entry, snap contests.Snapshot, detected time.Time) []events.Event {
	if snap.Status != contests.StatusInProgress {
		e.redZone = false
		return nil
	}

	var evs []events.Event
	switch {
	case snap.RedZone && !e.redZone:
		e.redZoneSeq++
		evs = append(evs, events.Event{
			Kind:       events.KindRedZoneEntered,
			ContestID:  snap.ContestID,
			Sport:      snap.Sport,
			Team:       sideTeam(snap, snap.Possession),
			DedupeKey:  fmt.Sprintf("%s|redzone|%d", snap.ContestID, e.redZoneSeq),
			DetectedAt: detected,
		})
	case !snap.RedZone && e.redZone:
		evs = append(evs, events.Event{
			Kind:       events.KindRedZoneCleared,
			ContestID:  snap.ContestID,
			Sport:      snap.Sport,
			DedupeKey:  fmt.Sprintf("%s|redzone|%d|clear", snap.ContestID, e.redZoneSeq),
			DetectedAt: detected,
		})
	}
	e.redZone = snap.RedZone
	return evs
}

// sideTeam resolves a "home"/"away" side string to the team on that side.
func sideTeam(snap contests.Snapshot, side string) contests.Team {
	switch contests.Side(side) {
	case contests.SideHome:
		return snap.HomeTeam
	case contests.SideAway:
		return snap.AwayTeam
	}
	return contests.Team{}
}
