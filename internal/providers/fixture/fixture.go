package fixture

import (
	"context"
	"sync"
	"time"

	"smart-stadium/internal/domain/contests"
)

// Provider replays a scripted contest timeline, advancing one step per fetch.
// It lets the full pipeline run locally without touching the upstream API:
// the contest kicks off, both sides score, the home side wins.
type Provider struct {
	mu   sync.Mutex
	step int
	now  func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchScoreboard returns the current step of the scripted timeline and
// advances to the next one. The final step repeats forever.
func (p *Provider) FetchScoreboard(ctx context.Context, sport contests.Sport, date string) ([]contests.Snapshot, error) {
	_ = ctx
	_ = date

	p.mu.Lock()
	idx := p.step
	if p.step < len(script)-1 {
		p.step++
	}
	p.mu.Unlock()

	snap := script[idx]
	snap.Sport = sport
	snap.ObservedAt = p.now()
	return []contests.Snapshot{snap}, nil
}

// Rewind resets the timeline to its first step.
func (p *Provider) Rewind() {
	p.mu.Lock()
	p.step = 0
	p.mu.Unlock()
}

var (
	homeTeam = contests.Team{ID: "8", Name: "Detroit Lions", Abbreviation: "DET"}
	awayTeam = contests.Team{ID: "3", Name: "Chicago Bears", Abbreviation: "CHI"}
)

var script = []contests.Snapshot{
	{
		ContestID: "fixture-det-chi",
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		Status:    contests.StatusScheduled,
		StartTime: "2025-11-02T18:00Z",
	},
	{
		ContestID: "fixture-det-chi",
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		Status:    contests.StatusInProgress,
		Period:    1,
		Clock:     "15:00",
		StartTime: "2025-11-02T18:00Z",
	},
	{
		ContestID: "fixture-det-chi",
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		Score:     contests.Score{Home: 7, Away: 0},
		Status:    contests.StatusInProgress,
		Period:    1,
		Clock:     "8:42",
		StartTime: "2025-11-02T18:00Z",
		PlayMarkers: []contests.PlayMarker{
			{ID: "fixture-play-1", Team: "home", Text: "Passing Touchdown", ScoringPlay: true},
		},
	},
	{
		ContestID: "fixture-det-chi",
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		Score:     contests.Score{Home: 7, Away: 3},
		Status:    contests.StatusInProgress,
		Period:    2,
		Clock:     "2:00",
		StartTime: "2025-11-02T18:00Z",
		PlayMarkers: []contests.PlayMarker{
			{ID: "fixture-play-2", Team: "away", Text: "Field Goal Good", ScoringPlay: true},
		},
	},
	{
		ContestID:  "fixture-det-chi",
		HomeTeam:   homeTeam,
		AwayTeam:   awayTeam,
		Score:      contests.Score{Home: 7, Away: 3},
		Status:     contests.StatusInProgress,
		Period:     3,
		Clock:      "6:30",
		StartTime:  "2025-11-02T18:00Z",
		RedZone:    true,
		Possession: "home",
	},
	{
		ContestID: "fixture-det-chi",
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		Score:     contests.Score{Home: 14, Away: 3},
		Status:    contests.StatusInProgress,
		Period:    3,
		Clock:     "4:11",
		StartTime: "2025-11-02T18:00Z",
		PlayMarkers: []contests.PlayMarker{
			{ID: "fixture-play-3", Team: "home", Text: "Rushing Touchdown", ScoringPlay: true},
		},
	},
	{
		ContestID: "fixture-det-chi",
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		Score:     contests.Score{Home: 14, Away: 3},
		Status:    contests.StatusFinal,
		Period:    4,
		Clock:     "0:00",
		StartTime: "2025-11-02T18:00Z",
	},
}
