package espn

import (
	"strconv"
	"strings"
	"time"

	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/providers"
)

// mapEvent converts one scoreboard event into a domain snapshot. Mapping fails
// closed: a payload missing required identity fields aborts the whole fetch so
// no events are synthesized from partial data.
func mapEvent(ev eventResponse, sport contests.Sport, observed time.Time) (contests.Snapshot, error) {
	if ev.ID == "" {
		return contests.Snapshot{}, &providers.MalformedPayloadError{Provider: providerName, Field: "event.id"}
	}
	if len(ev.Competitions) == 0 {
		return contests.Snapshot{}, &providers.MalformedPayloadError{Provider: providerName, Field: "competitions"}
	}

	comp := ev.Competitions[0]
	home, away, err := splitCompetitors(comp.Competitors)
	if err != nil {
		return contests.Snapshot{}, err
	}

	snap := contests.Snapshot{
		ContestID: providerName + "-" + ev.ID,
		Sport:     sport,
		HomeTeam:  mapTeam(home.Team),
		AwayTeam:  mapTeam(away.Team),
		Score: contests.Score{
			Home: parseScore(home.Score),
			Away: parseScore(away.Score),
		},
		Period:     comp.Status.Period,
		Clock:      comp.Status.DisplayClock,
		Status:     mapStatus(comp.Status.Type),
		StartTime:  ev.Date,
		ObservedAt: observed,
	}

	if comp.Situation != nil {
		snap.RedZone = comp.Situation.IsRedZone
		snap.Possession = sideForTeamID(comp.Situation.Possession, home, away)
		if play := comp.Situation.LastPlay; play != nil && play.ID != "" {
			snap.PlayMarkers = []contests.PlayMarker{{
				ID:          play.ID,
				Team:        sideForPlay(play, home, away),
				Text:        playText(play),
				ScoringPlay: play.ScoringPlay,
			}}
		}
	}

	return snap, nil
}

func splitCompetitors(comps []competitorResponse) (home, away competitorResponse, err error) {
	var haveHome, haveAway bool
	for _, c := range comps {
		switch strings.ToLower(c.HomeAway) {
		case "home":
			home = c
			haveHome = true
		case "away":
			away = c
			haveAway = true
		}
	}
	if !haveHome || !haveAway {
		return home, away, &providers.MalformedPayloadError{Provider: providerName, Field: "competitors"}
	}
	return home, away, nil
}

func mapTeam(t teamResponse) contests.Team {
	name := t.DisplayName
	if name == "" {
		name = t.ShortDisplayName
	}
	return contests.Team{
		ID:           t.ID,
		Name:         name,
		Abbreviation: t.Abbreviation,
	}
}

// mapStatus folds ESPN's status taxonomy into the four lifecycle phases.
// Delayed and suspended games report a live state, so the type name wins.
func mapStatus(st statusTypeResponse) contests.Status {
	name := strings.ToUpper(st.Name)
	if strings.Contains(name, "DELAYED") || strings.Contains(name, "SUSPENDED") {
		return contests.StatusHalted
	}
	switch strings.ToLower(st.State) {
	case "pre":
		return contests.StatusScheduled
	case "in":
		return contests.StatusInProgress
	case "post":
		return contests.StatusFinal
	default:
		return contests.StatusScheduled
	}
}

func parseScore(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func sideForTeamID(teamID string, home, away competitorResponse) string {
	switch teamID {
	case "":
		return ""
	case home.Team.ID, home.ID:
		return string(contests.SideHome)
	case away.Team.ID, away.ID:
		return string(contests.SideAway)
	}
	return ""
}

func sideForPlay(play *lastPlayResponse, home, away competitorResponse) string {
	if play.Team == nil {
		return ""
	}
	return sideForTeamID(play.Team.ID, home, away)
}

func playText(play *lastPlayResponse) string {
	if play.Type != nil && play.Type.Text != "" {
		return play.Type.Text
	}
	return strings.TrimSpace(play.Text)
}
