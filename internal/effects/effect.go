package effects

import (
	"encoding/json"
	"fmt"
)

// Pattern names the visual treatment a device should apply.
type Pattern string

const (
	PatternFlash  Pattern = "flash"
	PatternPulse  Pattern = "pulse"
	PatternSolid  Pattern = "solid"
	PatternStrobe Pattern = "strobe"
)

// RGB is a color channel triple. It marshals as a [r, g, b] JSON array to
// match the team color configuration format.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

func (c RGB) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d,%d,%d]", c.R, c.G, c.B)), nil
}

func (c *RGB) UnmarshalJSON(data []byte) error {
	var parts []int
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("rgb: %w", err)
	}
	if len(parts) != 3 {
		return fmt.Errorf("rgb: want 3 components, got %d", len(parts))
	}
	for _, p := range parts {
		if p < 0 || p > 255 {
			return fmt.Errorf("rgb: component %d out of range", p)
		}
	}
	c.R, c.G, c.B = uint8(parts[0]), uint8(parts[1]), uint8(parts[2])
	return nil
}

// Effect is a device-agnostic lighting instruction. Flash and strobe patterns
// alternate between the primary and secondary color every CycleMs; solid holds
// the primary color. DurationMs zero means hold until replaced.
type Effect struct {
	Label      string  `json:"label"`
	Pattern    Pattern `json:"pattern"`
	Primary    RGB     `json:"primary"`
	Secondary  RGB     `json:"secondary"`
	Cycles     int     `json:"cycles,omitempty"`
	CycleMs    int     `json:"cycleMs,omitempty"`
	DurationMs int     `json:"durationMs"`
	Intensity  int     `json:"intensity"`
}

const (
	celebrationIntensity     = 255
	redZoneIntensity         = 150
	defaultLightingIntensity = 180
)

// LabelDefaultLighting marks the resting effect; drivers that support white
// mode switch to color temperature instead of RGB when they see it.
const LabelDefaultLighting = "default_lighting"

// Warm white equivalent of the 2700 K resting pilot.
var defaultLightingColor = RGB{R: 255, G: 166, B: 87}

// DefaultLighting is the ambient state devices return to between
// celebrations.
func DefaultLighting() Effect {
	return Effect{
		Label:     LabelDefaultLighting,
		Pattern:   PatternSolid,
		Primary:   defaultLightingColor,
		Secondary: defaultLightingColor,
		Intensity: defaultLightingIntensity,
	}
}

// DeviceTest is the short pattern used to verify a single device responds.
func DeviceTest() Effect {
	return flashEffect("device_test", RGB{G: 255}, defaultLightingColor, 3, 300)
}

func flashEffect(label string, primary, secondary RGB, cycles, cycleMs int) Effect {
	return Effect{
		Label:      label,
		Pattern:    PatternFlash,
		Primary:    primary,
		Secondary:  secondary,
		Cycles:     cycles,
		CycleMs:    cycleMs,
		DurationMs: cycles * cycleMs,
		Intensity:  celebrationIntensity,
	}
}
