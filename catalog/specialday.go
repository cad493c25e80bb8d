package catalog

// SpecialDay is the race-wide theme that reweights gimmick spawns.
type SpecialDay string

const (
	DayNormal       SpecialDay = "normal"
	DayPoop         SpecialDay = "poop"
	DaySpring       SpecialDay = "spring"
	DayGrass        SpecialDay = "grass"
	DayMud          SpecialDay = "mud"
	DayConstruction SpecialDay = "construction"
	DayChaos        SpecialDay = "chaos"
)

type specialDayEntry struct {
	day         SpecialDay
	description string
	weight      float64
	modifiers   map[GimmickType]float64
}

// featured builds the table for a day that triples one gimmick and halves
// the rest.
func featured(t GimmickType) map[GimmickType]float64 {
	m := make(map[GimmickType]float64, len(gimmicks))
	for _, g := range GimmickTypes() {
		m[g] = 0.5
	}
	m[t] = 3.0
	return m
}

func uniform(v float64) map[GimmickType]float64 {
	m := make(map[GimmickType]float64, len(gimmicks))
	for _, g := range GimmickTypes() {
		m[g] = v
	}
	return m
}

var specialDays = []specialDayEntry{
	{DayNormal, "business as usual", 30, uniform(1)},
	{DayPoop, "poop everywhere", 12, featured(GimmickPoop)},
	{DaySpring, "springs all over the track", 12, featured(GimmickSpring)},
	{DayGrass, "fresh turf, everyone speeds up", 12, featured(GimmickGrass)},
	{DayMud, "after the rain, mud on every lane", 12, featured(GimmickMud)},
	{DayConstruction, "road works, detours required", 12, featured(GimmickConstruction)},
	{DayChaos, "every gimmick doubled", 10, uniform(2)},
}

func lookupDay(d SpecialDay) specialDayEntry {
	for _, e := range specialDays {
		if e.day == d {
			return e
		}
	}
	return specialDays[0]
}

// ParseSpecialDay returns the named day, or normal for anything unknown.
func ParseSpecialDay(s string) SpecialDay {
	return lookupDay(SpecialDay(s)).day
}

// Description is the one-line announcement for the day.
func (d SpecialDay) Description() string {
	return lookupDay(d).description
}

// Modifier returns the spawn weight multiplier the day applies to t.
func (d SpecialDay) Modifier(t GimmickType) float64 {
	m, ok := lookupDay(d).modifiers[t]
	if !ok {
		return 1
	}
	return m
}

// SpecialDays lists every day in declaration order.
func SpecialDays() []SpecialDay {
	out := make([]SpecialDay, len(specialDays))
	for i, e := range specialDays {
		out[i] = e.day
	}
	return out
}

// DrawSpecialDay draws a day from the standard weight table.
func DrawSpecialDay(rng Rand) SpecialDay {
	weights := make([]float64, len(specialDays))
	for i, e := range specialDays {
		weights[i] = e.weight
	}
	return DrawSpecialDayWeighted(rng, weights)
}

// DrawSpecialDayWeighted draws with weights aligned to SpecialDays().
func DrawSpecialDayWeighted(rng Rand, weights []float64) SpecialDay {
	i := WeightedIndex(rng, weights)
	if i < 0 || i >= len(specialDays) {
		return DayNormal
	}
	return specialDays[i].day
}

// SpawnWeights returns each gimmick's base weight scaled by the day,
// aligned to GimmickTypes().
func SpawnWeights(d SpecialDay) []float64 {
	types := GimmickTypes()
	out := make([]float64, len(types))
	for i, t := range types {
		out[i] = gimmicks[t].BaseWeight * d.Modifier(t)
	}
	return out
}
