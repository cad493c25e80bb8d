package catalog

import "time"

// GimmickType is the kind of tile placed on a lane.
type GimmickType string

const (
	GimmickSpring       GimmickType = "spring"
	GimmickConstruction GimmickType = "construction"
	GimmickPoop         GimmickType = "poop"
	GimmickMud          GimmickType = "mud"
	GimmickGrass        GimmickType = "grass"
	GimmickCarrot       GimmickType = "carrot"
)

// GimmickTypes lists every gimmick in spawn-table order.
func GimmickTypes() []GimmickType {
	return []GimmickType{
		GimmickSpring, GimmickConstruction, GimmickPoop,
		GimmickMud, GimmickGrass, GimmickCarrot,
	}
}

// GimmickEffect is the unmodified effect of touching a gimmick.
type GimmickEffect struct {
	Stun           time.Duration // stop time before power scaling
	LaneShift      int           // lanes moved
	SpeedModifier  float64       // timed multiplier, 0 when unused
	Duration       time.Duration // how long SpeedModifier lasts
	StaminaRestore float64       // fraction of full stamina restored
}

// GimmickSpec is the static definition of one gimmick type.
type GimmickSpec struct {
	Type       GimmickType
	Name       string
	Effect     GimmickEffect
	BaseWeight float64
	Hazard     bool // slows or stops a horse
	Consumable bool // removed from the course after the first contact
}

var gimmicks = map[GimmickType]GimmickSpec{
	GimmickSpring: {
		Type: GimmickSpring, Name: "spring",
		Effect:     GimmickEffect{LaneShift: 1},
		BaseWeight: 0.18,
	},
	GimmickConstruction: {
		Type: GimmickConstruction, Name: "construction",
		Effect:     GimmickEffect{Stun: time.Second, LaneShift: 1},
		BaseWeight: 0.18, Hazard: true, Consumable: true,
	},
	GimmickPoop: {
		Type: GimmickPoop, Name: "poop",
		Effect:     GimmickEffect{Stun: 3 * time.Second},
		BaseWeight: 0.22, Hazard: true, Consumable: true,
	},
	GimmickMud: {
		Type: GimmickMud, Name: "mud",
		Effect:     GimmickEffect{SpeedModifier: 0.5, Duration: 2 * time.Second},
		BaseWeight: 0.21, Hazard: true,
	},
	GimmickGrass: {
		Type: GimmickGrass, Name: "grass",
		Effect:     GimmickEffect{SpeedModifier: 1.5, Duration: 2 * time.Second},
		BaseWeight: 0.21,
	},
	GimmickCarrot: {
		Type: GimmickCarrot, Name: "carrot",
		Effect:     GimmickEffect{StaminaRestore: 0.3},
		BaseWeight: 0.10, Consumable: true,
	},
}

// Gimmick returns the static definition for t.
func Gimmick(t GimmickType) (GimmickSpec, bool) {
	spec, ok := gimmicks[t]
	return spec, ok
}

// IsHazard reports whether t slows or stops a horse.
func (t GimmickType) IsHazard() bool {
	return gimmicks[t].Hazard
}

// IsConsumable reports whether t disappears after its first contact.
func (t GimmickType) IsConsumable() bool {
	return gimmicks[t].Consumable
}
