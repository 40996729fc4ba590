package history

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/domain/events"
	"smart-stadium/internal/effects"
	"smart-stadium/internal/lights"
)

// Trigger records how a celebration came to run.
const (
	TriggerLive   = "live"
	TriggerManual = "manual"
)

// Record is one celebration audit entry: the event that fired, the effect
// played, and how every device fared.
type Record struct {
	ID         string                    `json:"id"`
	ContestID  string                    `json:"contestId,omitempty"`
	Sport      contests.Sport            `json:"sport,omitempty"`
	EventKind  events.Kind               `json:"eventKind"`
	DedupeKey  string                    `json:"dedupeKey,omitempty"`
	Team       contests.Team             `json:"team,omitempty"`
	Effect     effects.Effect            `json:"effect"`
	Outcomes   map[string]lights.Outcome `json:"outcomes"`
	Trigger    string                    `json:"trigger"`
	RecordedAt time.Time                 `json:"recordedAt"`
}

// NewRecordID generates a random record ID with a time-based fallback.
func NewRecordID(at time.Time) string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err == nil {
		return fmt.Sprintf("cel-%d-%s", at.Unix(), hex.EncodeToString(b[:]))
	}
	return fmt.Sprintf("cel-%d", at.UnixNano())
}
