package tracker

import (
	"strconv"
	"strings"

	"smart-stadium/internal/domain/events"
)

// bigPlayYards is the gain, in yards, at which a run or pass rates its own
// celebration even without points on the board.
const bigPlayYards = 40

// ClassifyPlay derives a play type from a marker's description text. The
// second return is false for plays that rate no celebration (punts, kickoffs,
// ordinary downs). Missed and blocked kicks count for the defense.
func ClassifyPlay(text string) (events.PlayType, bool) {
	t := strings.ToLower(text)
	if t == "" {
		return "", false
	}

	switch {
	case strings.Contains(t, "touchdown"):
		return events.PlayTouchdown, true
	case strings.Contains(t, "field goal"):
		if strings.Contains(t, "no good") || strings.Contains(t, "missed") || strings.Contains(t, "blocked") {
			return events.PlayDefensiveStop, true
		}
		return events.PlayFieldGoal, true
	case strings.Contains(t, "two-point") || strings.Contains(t, "two point"):
		return events.PlayTwoPoint, true
	case strings.Contains(t, "extra point"):
		return events.PlayExtraPoint, true
	case strings.Contains(t, "safety"):
		return events.PlaySafety, true
	case strings.Contains(t, "turnover on downs"):
		return events.PlayDefensiveStop, true
	case strings.Contains(t, "interception"):
		return events.PlayTurnover, true
	case strings.Contains(t, "fumble") && strings.Contains(t, "recover"):
		// A fumble only celebrates once somebody actually came up with it.
		return events.PlayTurnover, true
	case strings.Contains(t, "sack"):
		return events.PlaySack, true
	}

	if yards := gainedYards(t); yards >= bigPlayYards {
		if strings.Contains(t, "pass") || strings.Contains(t, "run") || strings.Contains(t, "rush") {
			return events.PlayBigPlay, true
		}
	}

	// An unclassifiable scoring marker still moves the score, and the score
	// diff celebrates that on its own.
	return "", false
}

// gainedYards scans the text for a "<n> yd" style gain and returns n, or 0.
func gainedYards(text string) int {
	fields := strings.Fields(text)
	for i, f := range fields {
		switch strings.Trim(f, ".,") {
		case "yd", "yds", "yard", "yards":
			if i == 0 {
				continue
			}
			if n, err := strconv.Atoi(fields[i-1]); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}
