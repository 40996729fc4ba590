package contests

import (
	"strings"
	"time"
)

// Status mirrors the shared contract for contest lifecycle phases.
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusHalted     Status = "HALTED"
	StatusFinal      Status = "FINAL"
)

// Sport identifies the league a contest belongs to.
type Sport string

const (
	SportNFL             Sport = "nfl"
	SportCollegeFootball Sport = "college_football"
)

// ParseSport maps a configured sport name onto a known league.
func ParseSport(raw string) (Sport, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "nfl":
		return SportNFL, true
	case "college_football", "college-football", "ncaaf":
		return SportCollegeFootball, true
	default:
		return "", false
	}
}

// Side names the scoring side of a contest.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Team represents the normalized team shape.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// PlayMarker is a provider-supplied play descriptor attached to a snapshot.
// Markers are matched across polls by their provider-assigned ID.
type PlayMarker struct {
	ID          string `json:"id"`
	Team        string `json:"team"`
	Text        string `json:"text"`
	ScoringPlay bool   `json:"scoringPlay"`
}

// Snapshot is a contest's observed state at one poll. Snapshots are value
// objects; the tracker retains only the most recent one per contest.
type Snapshot struct {
	ContestID   string       `json:"contestId"`
	Sport       Sport        `json:"sport"`
	HomeTeam    Team         `json:"homeTeam"`
	AwayTeam    Team         `json:"awayTeam"`
	Score       Score        `json:"score"`
	Period      int          `json:"period,omitempty"`
	Clock       string       `json:"clock,omitempty"`
	Status      Status       `json:"status"`
	StartTime   string       `json:"startTime,omitempty"`
	ObservedAt  time.Time    `json:"observedAt"`
	PlayMarkers []PlayMarker `json:"playMarkers,omitempty"`
	RedZone     bool         `json:"redZone,omitempty"`
	Possession  string       `json:"possession,omitempty"`
}

// Team returns the team on the given side.
func (s Snapshot) Team(side Side) Team {
	if side == SideAway {
		return s.AwayTeam
	}
	return s.HomeTeam
}

// SideScore returns the score for the given side.
func (s Snapshot) SideScore(side Side) int {
	if side == SideAway {
		return s.Score.Away
	}
	return s.Score.Home
}

// Leader returns the side currently ahead, home on a tie.
func (s Snapshot) Leader() Side {
	if s.Score.Away > s.Score.Home {
		return SideAway
	}
	return SideHome
}

// ScoreboardResponse is the payload returned by /api/contests.
type ScoreboardResponse struct {
	Date     string     `json:"date"`
	Contests []Snapshot `json:"contests"`
}

// NewScoreboardResponse builds a ScoreboardResponse payload.
func NewScoreboardResponse(date string, snaps []Snapshot) ScoreboardResponse {
	return ScoreboardResponse{
		Date:     date,
		Contests: snaps,
	}
}
