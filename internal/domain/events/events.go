package events

import (
	"fmt"
	"time"

	"smart-stadium/internal/domain/contests"
)

// Kind enumerates the synthesized domain event types.
type Kind string

const (
	KindGameStarted    Kind = "GAME_STARTED"
	KindScoreChanged   Kind = "SCORE_CHANGED"
	KindScoringPlay    Kind = "SCORING_PLAY"
	KindGameEnded      Kind = "GAME_ENDED"
	KindStatusChanged  Kind = "STATUS_CHANGED"
	KindRedZoneEntered Kind = "RED_ZONE_ENTERED"
	KindRedZoneCleared Kind = "RED_ZONE_CLEARED"
)

// PlayType classifies a scoring or notable play detected from play markers.
type PlayType string

const (
	PlayTouchdown     PlayType = "touchdown"
	PlayFieldGoal     PlayType = "field_goal"
	PlayExtraPoint    PlayType = "extra_point"
	PlayTwoPoint      PlayType = "two_point"
	PlaySafety        PlayType = "safety"
	PlayTurnover      PlayType = "turnover"
	PlaySack          PlayType = "sack"
	PlayBigPlay       PlayType = "big_play"
	PlayDefensiveStop PlayType = "defensive_stop"
)

// Event is a synthesized, semantically meaningful change in a contest's state.
// For a given contest, a DedupeKey is emitted at most once for the lifetime of
// its tracker entry.
type Event struct {
	Kind       Kind            `json:"kind"`
	ContestID  string          `json:"contestId"`
	Sport      contests.Sport  `json:"sport"`
	Team       contests.Team   `json:"team,omitempty"`
	Delta      int             `json:"delta,omitempty"`
	NewScore   int             `json:"newScore,omitempty"`
	PlayType   PlayType        `json:"playType,omitempty"`
	FromStatus contests.Status `json:"fromStatus,omitempty"`
	ToStatus   contests.Status `json:"toStatus,omitempty"`
	DedupeKey  string          `json:"dedupeKey"`
	DetectedAt time.Time       `json:"detectedAt"`
}

// ScoreChangedKey derives the dedupe key for a score transition. The same
// numeric transition for a side can never fire twice.
func ScoreChangedKey(contestID string, team string, newScore int) string {
	return fmt.Sprintf("%s|%s|%d", contestID, team, newScore)
}

// GameStartedKey derives the dedupe key for a contest's start event.
func GameStartedKey(contestID string) string {
	return contestID + "|started"
}

// GameEndedKey derives the dedupe key for a contest's end event.
func GameEndedKey(contestID string) string {
	return contestID + "|ended"
}

// StatusChangedKey derives the dedupe key for an ordinary phase transition.
func StatusChangedKey(contestID string, from, to contests.Status) string {
	return fmt.Sprintf("%s|status|%s>%s", contestID, from, to)
}

// ScoringPlayKey derives the dedupe key for a detected play marker.
func ScoringPlayKey(contestID, playID string) string {
	return fmt.Sprintf("%s|play|%s", contestID, playID)
}
