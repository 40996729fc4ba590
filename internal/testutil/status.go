package testutil

import (
	"time"

	"smart-stadium/internal/app/status"
	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/history"
	"smart-stadium/internal/monitor"
)

// FixedMonitor reports a fixed monitor status.
type FixedMonitor struct {
	StatusVal monitor.Status
}

func (m FixedMonitor) Status() monitor.Status { return m.StatusVal }

// FixedContests reports a fixed snapshot list.
type FixedContests struct {
	Snaps []contests.Snapshot
}

func (c FixedContests) Snapshots() []contests.Snapshot { return c.Snaps }

// FixedDevices reports fixed fleet counts.
type FixedDevices struct {
	TotalVal, EnabledVal, ReachableVal int
}

func (d FixedDevices) Counts() (int, int, int) {
	return d.TotalVal, d.EnabledVal, d.ReachableVal
}

// FixedHistory returns fixed records, or an error when set.
type FixedHistory struct {
	Records []history.Record
	Err     error
}

func (h FixedHistory) Recent(limit int) ([]history.Record, error) {
	if h.Err != nil {
		return nil, h.Err
	}
	if limit > 0 && limit < len(h.Records) {
		return h.Records[:limit], nil
	}
	return h.Records, nil
}

// NewStatusService builds a status service over fixed sources: one healthy
// in-progress contest, two devices, one celebration record.
func NewStatusService() *status.Service {
	snap := SampleSnapshot("espn-401")
	st := monitor.Status{
		State:           monitor.StatePolling,
		NextDelay:       7 * time.Second,
		LastSuccess:     snap.ObservedAt,
		LastAttempt:     snap.ObservedAt,
		ContestsTracked: 1,
	}
	return status.NewService(
		"smart-stadium",
		FixedMonitor{StatusVal: st},
		FixedContests{Snaps: []contests.Snapshot{snap}},
		FixedDevices{TotalVal: 2, EnabledVal: 2, ReachableVal: 1},
		FixedHistory{Records: []history.Record{SampleRecord("espn-401")}},
		[]contests.Sport{contests.SportNFL},
	)
}
