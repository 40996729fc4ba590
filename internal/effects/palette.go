package effects

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"smart-stadium/internal/domain/contests"
)

// TeamColors is one team's configured color pair. Lighting variants, when
// present, override the canonical colors for bulb visibility.
type TeamColors struct {
	Name              string `json:"name,omitempty"`
	Primary           RGB    `json:"primary"`
	Secondary         RGB    `json:"secondary"`
	LightingPrimary   *RGB   `json:"lighting_primary,omitempty"`
	LightingSecondary *RGB   `json:"lighting_secondary,omitempty"`
}

// Pair returns the colors to drive bulbs with.
func (t TeamColors) Pair() (RGB, RGB) {
	primary, secondary := t.Primary, t.Secondary
	if t.LightingPrimary != nil {
		primary = *t.LightingPrimary
	}
	if t.LightingSecondary != nil {
		secondary = *t.LightingSecondary
	}
	return primary, secondary
}

// Palette resolves team abbreviations to configured colors. The backing
// document maps sport to abbreviation to colors.
type Palette struct {
	sports map[contests.Sport]map[string]TeamColors
	order  []contests.Sport
}

// LoadPalette reads the team color configuration file. An unreadable or
// malformed file is a startup-time failure.
func LoadPalette(path string) (*Palette, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read team colors: %w", err)
	}
	p, err := ParsePalette(raw)
	if err != nil {
		return nil, fmt.Errorf("team colors %s: %w", path, err)
	}
	return p, nil
}

// ParsePalette decodes a sport -> abbreviation -> colors document.
func ParsePalette(raw []byte) (*Palette, error) {
	var doc map[string]map[string]TeamColors
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return nil, errors.New("no sports configured")
	}

	p := &Palette{sports: make(map[contests.Sport]map[string]TeamColors, len(doc))}
	for sport, teams := range doc {
		bucket := make(map[string]TeamColors, len(teams))
		for abbr, colors := range teams {
			bucket[strings.ToUpper(abbr)] = colors
		}
		p.sports[contests.Sport(sport)] = bucket
		p.order = append(p.order, contests.Sport(sport))
	}
	sort.Slice(p.order, func(i, j int) bool { return p.order[i] < p.order[j] })
	return p, nil
}

// Colors looks up a team's configured pair, preferring the sport-specific
// entry and falling back to a match in any other sport.
func (p *Palette) Colors(sport contests.Sport, abbr string) (TeamColors, bool) {
	key := strings.ToUpper(abbr)
	if teams, ok := p.sports[sport]; ok {
		if colors, ok := teams[key]; ok {
			return colors, true
		}
	}
	for _, s := range p.order {
		if s == sport {
			continue
		}
		if colors, ok := p.sports[s][key]; ok {
			return colors, true
		}
	}
	return TeamColors{}, false
}

// Len reports how many teams are configured across all sports.
func (p *Palette) Len() int {
	n := 0
	for _, teams := range p.sports {
		n += len(teams)
	}
	return n
}

// Sports lists the sports the palette has entries for, sorted.
func (p *Palette) Sports() []contests.Sport {
	return append([]contests.Sport(nil), p.order...)
}
