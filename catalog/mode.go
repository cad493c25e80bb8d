package catalog

import "strings"

// UnitsPerMetre converts announced race distance into course units.
const UnitsPerMetre = 3

// RaceMode is a named distance band.
type RaceMode string

const (
	ModeSprint RaceMode = "sprint"
	ModeMile   RaceMode = "mile"
	ModeStayer RaceMode = "stayer"
)

type modeRange struct {
	minMetres, maxMetres int
}

var modes = map[RaceMode]modeRange{
	ModeSprint: {1200, 1600},
	ModeMile:   {1800, 2400},
	ModeStayer: {2800, 3600},
}

// ParseRaceMode accepts mode names case-insensitively, including the
// short/medium/long aliases. ok is false for anything else.
func ParseRaceMode(s string) (RaceMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sprint", "short":
		return ModeSprint, true
	case "mile", "medium":
		return ModeMile, true
	case "stayer", "long":
		return ModeStayer, true
	}
	return "", false
}

// Metres returns the distance band of the mode.
func (m RaceMode) Metres() (lo, hi int) {
	r, ok := modes[m]
	if !ok {
		r = modes[ModeStayer]
	}
	return r.minMetres, r.maxMetres
}

// CourseLength draws a whole-metre distance inside the band and returns it in
// course units.
func CourseLength(m RaceMode, rng Rand) float64 {
	lo, hi := m.Metres()
	metres := lo + rng.Intn(hi-lo+1)
	return float64(metres * UnitsPerMetre)
}
