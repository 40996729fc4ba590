package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/domain/events"
	"smart-stadium/internal/effects"
	"smart-stadium/internal/history"
	"smart-stadium/internal/lights"
)

// SampleSnapshot returns a minimal in-progress contest fixture with the
// provided id.
func SampleSnapshot(id string) contests.Snapshot {
	return contests.Snapshot{
		ContestID:  id,
		Sport:      contests.SportNFL,
		HomeTeam:   contests.Team{ID: "23", Name: "Pittsburgh Steelers", Abbreviation: "PIT"},
		AwayTeam:   contests.Team{ID: "10", Name: "Tennessee Titans", Abbreviation: "TEN"},
		Score:      contests.Score{Home: 7, Away: 3},
		Period:     2,
		Clock:      "11:32",
		Status:     contests.StatusInProgress,
		ObservedAt: time.Date(2025, 11, 2, 18, 30, 0, 0, time.UTC),
	}
}

// SampleRecord returns a celebration record fixture keyed by the provided
// contest id.
func SampleRecord(contestID string) history.Record {
	return history.Record{
		ID:        "cel-sample-" + contestID,
		ContestID: contestID,
		Sport:     contests.SportNFL,
		EventKind: events.KindScoreChanged,
		DedupeKey: events.ScoreChangedKey(contestID, "PIT", 7),
		Team:      contests.Team{ID: "23", Name: "Pittsburgh Steelers", Abbreviation: "PIT"},
		Effect: effects.Effect{
			Label:      "touchdown",
			Pattern:    effects.PatternFlash,
			Primary:    effects.RGB{R: 255, G: 182, B: 18},
			Secondary:  effects.RGB{R: 16, G: 24, B: 32},
			Cycles:     10,
			CycleMs:    500,
			DurationMs: 5000,
			Intensity:  255,
		},
		Outcomes: map[string]lights.Outcome{
			"living-room": {Status: lights.OutcomeSucceeded, Attempts: 1, ElapsedMs: 12},
		},
		Trigger:    history.TriggerLive,
		RecordedAt: time.Date(2025, 11, 2, 18, 30, 5, 0, time.UTC),
	}
}

// SampleDevices returns a two-device fixture, both enabled.
func SampleDevices() []lights.Device {
	return []lights.Device{
		{ID: "living-room", Name: "Living Room", Protocol: lights.ProtocolWiz, Address: "10.0.0.11", Enabled: true},
		{ID: "den", Name: "Den", Protocol: lights.ProtocolWiz, Address: "10.0.0.12", Enabled: true},
	}
}

// PaletteDoc is a small team colors document covering the sample teams.
const PaletteDoc = `{
  "nfl": {
    "PIT": {"name": "Pittsburgh Steelers", "primary": [255, 182, 18], "secondary": [16, 24, 32]},
    "TEN": {"name": "Tennessee Titans", "primary": [0, 34, 68], "secondary": [75, 146, 219]}
  },
  "college_football": {
    "MICH": {"name": "Michigan Wolverines", "primary": [0, 39, 76], "secondary": [255, 203, 5]}
  }
}`

// MustPalette parses PaletteDoc or panics; intended for tests.
func MustPalette() *effects.Palette {
	p, err := effects.ParsePalette([]byte(PaletteDoc))
	if err != nil {
		panic(err)
	}
	return p
}

// DevicesDoc is a device document matching SampleDevices.
const DevicesDoc = `{
  "devices": [
    {"id": "living-room", "name": "Living Room", "protocol": "wiz", "address": "10.0.0.11", "enabled": true},
    {"id": "den", "name": "Den", "protocol": "wiz", "address": "10.0.0.12", "enabled": true}
  ]
}`

// WriteConfigFiles drops the sample device and palette documents into a temp
// dir and returns their paths.
func WriteConfigFiles(t *testing.T) (devicesPath, colorsPath string) {
	t.Helper()
	dir := t.TempDir()
	devicesPath = filepath.Join(dir, "devices.json")
	colorsPath = filepath.Join(dir, "team_colors.json")
	if err := os.WriteFile(devicesPath, []byte(DevicesDoc), 0o644); err != nil {
		t.Fatalf("write devices: %v", err)
	}
	if err := os.WriteFile(colorsPath, []byte(PaletteDoc), 0o644); err != nil {
		t.Fatalf("write colors: %v", err)
	}
	return devicesPath, colorsPath
}
