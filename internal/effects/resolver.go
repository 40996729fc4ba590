package effects

import (
	"smart-stadium/internal/domain/events"
)

// Fallback pair for teams with no configured colors.
var (
	neutralPrimary   = RGB{R: 255, G: 255, B: 255}
	neutralSecondary = RGB{R: 128, G: 128, B: 128}
)

// Resolver maps domain events to lighting effects. Resolution is pure: the
// same event always yields the same effect, and kinds with no visual mapping
// resolve to nothing.
type Resolver struct {
	palette *Palette
}

func NewResolver(palette *Palette) *Resolver {
	return &Resolver{palette: palette}
}

// Resolve returns the effect for ev. The second return is false when the
// event has no visual mapping; GameStarted and ordinary status changes are
// tracked but not celebrated.
func (r *Resolver) Resolve(ev events.Event) (Effect, bool) {
	switch ev.Kind {
	case events.KindScoreChanged:
		return r.scoreEffect(ev), true
	case events.KindScoringPlay:
		return r.playEffect(ev)
	case events.KindGameEnded:
		return r.victoryEffect(ev), true
	case events.KindRedZoneEntered:
		return r.redZoneEffect(ev), true
	case events.KindRedZoneCleared:
		return DefaultLighting(), true
	default:
		return Effect{}, false
	}
}

// scoreEffect picks the celebration by point delta. Six or more points in one
// observation reads as a touchdown even when the conversion landed in the
// same poll.
func (r *Resolver) scoreEffect(ev events.Event) Effect {
	primary, secondary := r.teamColors(ev)
	switch {
	case ev.Delta >= 6:
		return flashEffect("touchdown", primary, secondary, 30, 400)
	case ev.Delta == 3:
		return flashEffect("field_goal", primary, secondary, 10, 500)
	case ev.Delta == 2:
		return flashEffect("two_point", primary, secondary, 8, 300)
	case ev.Delta == 1:
		return flashEffect("extra_point", primary, secondary, 5, 500)
	default:
		return flashEffect("score", primary, secondary, 8, 500)
	}
}

func (r *Resolver) playEffect(ev events.Event) (Effect, bool) {
	primary, secondary := r.teamColors(ev)
	switch ev.PlayType {
	case events.PlayTouchdown:
		return flashEffect("touchdown", primary, secondary, 30, 400), true
	case events.PlayFieldGoal:
		return flashEffect("field_goal", primary, secondary, 10, 500), true
	case events.PlayExtraPoint:
		return flashEffect("extra_point", primary, secondary, 5, 500), true
	case events.PlayTwoPoint:
		return flashEffect("two_point", primary, secondary, 8, 300), true
	case events.PlaySafety:
		return flashEffect("safety", primary, secondary, 6, 400), true
	case events.PlayTurnover:
		return flashEffect("turnover", primary, secondary, 8, 300), true
	case events.PlaySack:
		return flashEffect("sack", primary, secondary, 6, 250), true
	case events.PlayBigPlay:
		return flashEffect("big_play", primary, secondary, 6, 400), true
	case events.PlayDefensiveStop:
		return flashEffect("defensive_stop", primary, secondary, 4, 500), true
	default:
		return Effect{}, false
	}
}

func (r *Resolver) victoryEffect(ev events.Event) Effect {
	primary, secondary := r.teamColors(ev)
	return Effect{
		Label:      "victory",
		Pattern:    PatternStrobe,
		Primary:    primary,
		Secondary:  secondary,
		Cycles:     60,
		CycleMs:    300,
		DurationMs: 18000,
		Intensity:  celebrationIntensity,
	}
}

// redZoneEffect holds the possessing team's primary color until the drive
// resolves.
func (r *Resolver) redZoneEffect(ev events.Event) Effect {
	primary, _ := r.teamColors(ev)
	return Effect{
		Label:     "red_zone",
		Pattern:   PatternSolid,
		Primary:   primary,
		Secondary: primary,
		Intensity: redZoneIntensity,
	}
}

func (r *Resolver) teamColors(ev events.Event) (RGB, RGB) {
	if r.palette != nil && ev.Team.Abbreviation != "" {
		if colors, ok := r.palette.Colors(ev.Sport, ev.Team.Abbreviation); ok {
			return colors.Pair()
		}
	}
	return neutralPrimary, neutralSecondary
}
