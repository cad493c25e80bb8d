package models

import (
	"github.com/uptrace/bun"

	"github.com/padraicbc/amidarace/catalog"
)

// Horse is a roster entry. The built-in roster is seeded into this table and
// can be edited there; races read it back as catalog profiles.
type Horse struct {
	bun.BaseModel `bun:"table:horses,alias:h"`

	HorseID      int     `bun:"horse_id,pk" json:"horseID"`
	Name         string  `bun:"name,notnull,unique" json:"name"`
	Category     string  `bun:"category,notnull,default:''" json:"category"`
	Speed        float64 `bun:"speed,notnull" json:"speed"`
	Intelligence float64 `bun:"intelligence,notnull" json:"intelligence"`
	Power        float64 `bun:"power,notnull" json:"power"`
	Stamina      float64 `bun:"stamina,notnull" json:"stamina"`
	Ability      string  `bun:"ability,notnull,default:'none'" json:"ability"`
	Color        string  `bun:"color" json:"color,omitempty"`
	Retired      bool    `bun:"retired,notnull,default:false" json:"retired"`
}

// HorseFromProfile converts a catalog profile into a row.
func HorseFromProfile(p catalog.HorseProfile) *Horse {
	return &Horse{
		HorseID:      p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Speed:        p.Stats.Speed,
		Intelligence: p.Stats.Intelligence,
		Power:        p.Stats.Power,
		Stamina:      p.Stats.Stamina,
		Ability:      string(p.Ability),
		Color:        p.Color,
	}
}

// Profile converts the row into a raceable profile. Unknown ability tags race
// without an ability.
func (h *Horse) Profile() catalog.HorseProfile {
	ability, err := catalog.ParseAbility(h.Ability)
	if err != nil {
		ability = catalog.AbilityNone
	}
	return catalog.HorseProfile{
		ID:       h.HorseID,
		Name:     h.Name,
		Category: h.Category,
		Stats: catalog.Stats{
			Speed:        h.Speed,
			Intelligence: h.Intelligence,
			Power:        h.Power,
			Stamina:      h.Stamina,
		},
		Ability: ability,
		Color:   h.Color,
	}
}
