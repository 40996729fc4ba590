package teststubs

import (
	"context"
	"sync/atomic"

	"smart-stadium/internal/domain/contests"
)

// StubProvider is a test double for providers.ScoreboardProvider.
type StubProvider struct {
	Snapshots []contests.Snapshot
	Err       error
	Calls     atomic.Int32
	Notify    chan struct{}

	// FetchFn, when set, overrides the canned Snapshots/Err response.
	FetchFn func(ctx context.Context, sport contests.Sport, date string) ([]contests.Snapshot, error)
}

// FetchScoreboard returns the configured snapshots and error while tracking calls.
func (s *StubProvider) FetchScoreboard(ctx context.Context, sport contests.Sport, date string) ([]contests.Snapshot, error) {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	if s.FetchFn != nil {
		return s.FetchFn(ctx, sport, date)
	}
	return s.Snapshots, s.Err
}
