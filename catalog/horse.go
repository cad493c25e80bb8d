// Package catalog holds the static data every race is built from: horse
// profiles, daily conditions, special days, gimmick effects and race modes.
// Nothing in here changes once the process has started.
package catalog

import "fmt"

// Stats are the permanent per-horse multipliers.
type Stats struct {
	Speed        float64 `json:"speed"`        // base speed multiplier (0.7-1.5)
	Intelligence float64 `json:"intelligence"` // branch judgement (0.5-2.0)
	Power        float64 `json:"power"`        // hazard resistance (0.5-2.5)
	Stamina      float64 `json:"stamina"`      // endurance (0.5-2.0), higher tires slower
}

// Ability identifies the special rule a horse runs with.
type Ability string

const (
	AbilityNone           Ability = "none"
	AbilitySpeedOnGrass   Ability = "speed-on-grass"
	AbilityArmorBreaker   Ability = "armor-breaker"
	AbilityRoutePlanner   Ability = "route-planner"
	AbilityDoubleJumper   Ability = "double-jumper"
	AbilityChanceInverter Ability = "chance-inverter"
	AbilityMudLover       Ability = "mud-lover"
	AbilityGrassAbsorber  Ability = "grass-absorber"
	AbilityHazardShield   Ability = "hazard-shield"
	AbilityPhaseWalker    Ability = "phase-walker"
	AbilityTrapSetter     Ability = "trap-setter"
	AbilityStatShuffler   Ability = "stat-shuffler"
	AbilityCrusher        Ability = "crusher"
	AbilityHazardEater    Ability = "hazard-eater"
	AbilityLateralDash    Ability = "lateral-dash"
	AbilityRevengeStacker Ability = "revenge-stacker"
)

// Abilities lists every ability tag a roster horse may carry.
func Abilities() []Ability {
	return []Ability{
		AbilitySpeedOnGrass, AbilityArmorBreaker, AbilityRoutePlanner, AbilityDoubleJumper,
		AbilityChanceInverter, AbilityMudLover, AbilityGrassAbsorber, AbilityHazardShield,
		AbilityPhaseWalker, AbilityTrapSetter, AbilityStatShuffler, AbilityCrusher,
		AbilityHazardEater, AbilityLateralDash, AbilityRevengeStacker,
	}
}

// ParseAbility maps a stored tag back to an Ability. Unknown tags are an error.
func ParseAbility(s string) (Ability, error) {
	a := Ability(s)
	if a == AbilityNone || a == "" {
		return AbilityNone, nil
	}
	for _, known := range Abilities() {
		if a == known {
			return a, nil
		}
	}
	return AbilityNone, fmt.Errorf("unknown ability %q", s)
}

// HorseProfile is an immutable horse definition.
type HorseProfile struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Stats    Stats   `json:"stats"`
	Ability  Ability `json:"ability"`
	Color    string  `json:"color"`
}

// Validate reports profiles that cannot race: a non-positive id or stat.
func (p HorseProfile) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("horse %q: id must be positive", p.Name)
	}
	s := p.Stats
	if s.Speed <= 0 || s.Intelligence <= 0 || s.Power <= 0 || s.Stamina <= 0 {
		return fmt.Errorf("horse %d: stats must be positive", p.ID)
	}
	return nil
}
