package providers

import (
	"context"

	"smart-stadium/internal/domain/contests"
)

// ScoreboardProvider defines how upstream scoreboard data is fetched and normalized.
// The date parameter, when provided, should be a YYYY-MM-DD string indicating which
// day's contests to fetch. Providers should interpret an empty date as "today" in
// their configured timezone. Implementations perform no retries and no backoff;
// polling policy belongs to the caller.
type ScoreboardProvider interface {
	FetchScoreboard(ctx context.Context, sport contests.Sport, date string) ([]contests.Snapshot, error)
}
