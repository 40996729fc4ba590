package status

import (
	"time"

	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/history"
	"smart-stadium/internal/monitor"
)

// MonitorSource exposes the polling loop's health.
type MonitorSource interface {
	Status() monitor.Status
}

// ContestSource exposes the tracked contest snapshots.
type ContestSource interface {
	Snapshots() []contests.Snapshot
}

// DeviceSource exposes fleet counts for the status surface.
type DeviceSource interface {
	Counts() (total, enabled, reachable int)
}

// HistorySource exposes recent celebration records.
type HistorySource interface {
	Recent(limit int) ([]history.Record, error)
}

// DeviceCounts summarizes the device fleet.
type DeviceCounts struct {
	Total     int `json:"total"`
	Enabled   int `json:"enabled"`
	Reachable int `json:"reachable"`
}

// Report is the payload returned by /api/status.
type Report struct {
	Service             string              `json:"service"`
	UptimeSeconds       int64               `json:"uptimeSeconds"`
	State               monitor.State       `json:"state"`
	MonitoringActive    bool                `json:"monitoringActive"`
	Paused              bool                `json:"paused"`
	Sports              []contests.Sport    `json:"sports"`
	NextPollMs          int64               `json:"nextPollMs"`
	ConsecutiveFailures int                 `json:"consecutiveFailures"`
	LastError           string              `json:"lastError,omitempty"`
	LastSuccess         time.Time           `json:"lastSuccess"`
	ContestsTracked     int                 `json:"contestsTracked"`
	Contests            []contests.Snapshot `json:"contests"`
	Devices             DeviceCounts        `json:"devices"`
	CelebrationsFired   int                 `json:"celebrationsFired"`
}

// Service aggregates the read-only operational view served over HTTP.
type Service struct {
	service  string
	monitor  MonitorSource
	contests ContestSource
	devices  DeviceSource
	history  HistorySource
	sports   []contests.Sport
	started  time.Time
	now      func() time.Time
}

// NewService constructs the status facade.
func NewService(service string, mon MonitorSource, contestSrc ContestSource, deviceSrc DeviceSource, historySrc HistorySource, sports []contests.Sport) *Service {
	s := &Service{
		service:  service,
		monitor:  mon,
		contests: contestSrc,
		devices:  deviceSrc,
		history:  historySrc,
		sports:   sports,
		now:      time.Now,
	}
	s.started = s.now()
	return s
}

// Report assembles the full status payload.
func (s *Service) Report() Report {
	st := s.MonitorStatus()
	snapshots := s.Contests()
	total, enabled, reachable := 0, 0, 0
	if s.devices != nil {
		total, enabled, reachable = s.devices.Counts()
	}

	return Report{
		Service:             s.service,
		UptimeSeconds:       int64(s.now().Sub(s.started).Seconds()),
		State:               st.State,
		MonitoringActive:    st.State != monitor.StateStopped && !st.Paused,
		Paused:              st.Paused,
		Sports:              s.sports,
		NextPollMs:          st.NextDelay.Milliseconds(),
		ConsecutiveFailures: st.ConsecutiveFailures,
		LastError:           st.LastError,
		LastSuccess:         st.LastSuccess,
		ContestsTracked:     st.ContestsTracked,
		Contests:            snapshots,
		Devices:             DeviceCounts{Total: total, Enabled: enabled, Reachable: reachable},
		CelebrationsFired:   st.CelebrationsFired,
	}
}

// MonitorStatus returns the raw loop health used by readiness checks.
func (s *Service) MonitorStatus() monitor.Status {
	if s.monitor == nil {
		return monitor.Status{}
	}
	return s.monitor.Status()
}

// Contests returns the latest snapshot per tracked contest.
func (s *Service) Contests() []contests.Snapshot {
	if s.contests == nil {
		return []contests.Snapshot{}
	}
	snaps := s.contests.Snapshots()
	if snaps == nil {
		return []contests.Snapshot{}
	}
	return snaps
}

// History returns recent celebration records, newest first.
func (s *Service) History(limit int) ([]history.Record, error) {
	if s.history == nil {
		return []history.Record{}, nil
	}
	records, err := s.history.Recent(limit)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []history.Record{}
	}
	return records, nil
}
