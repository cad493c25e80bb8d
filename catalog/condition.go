package catalog

// Condition is a horse's form on race day.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionNormal    Condition = "normal"
	ConditionPoor      Condition = "poor"
	ConditionTerrible  Condition = "terrible"
)

type conditionEntry struct {
	condition Condition
	modifier  float64
	weight    float64
}

var conditions = []conditionEntry{
	{ConditionExcellent, 1.15, 10},
	{ConditionGood, 1.07, 25},
	{ConditionNormal, 1.0, 35},
	{ConditionPoor, 0.93, 20},
	{ConditionTerrible, 0.85, 10},
}

// SpeedModifier returns the speed multiplier for c. Unknown conditions race
// as normal.
func (c Condition) SpeedModifier() float64 {
	for _, e := range conditions {
		if e.condition == c {
			return e.modifier
		}
	}
	return 1.0
}

// ParseCondition returns the named condition, or normal for anything unknown.
func ParseCondition(s string) Condition {
	for _, e := range conditions {
		if string(e.condition) == s {
			return e.condition
		}
	}
	return ConditionNormal
}

// ConditionWeights returns a copy of the standard draw weights.
func ConditionWeights() map[Condition]float64 {
	out := make(map[Condition]float64, len(conditions))
	for _, e := range conditions {
		out[e.condition] = e.weight
	}
	return out
}

// DrawCondition draws one condition from the standard weight table.
func DrawCondition(rng Rand) Condition {
	return drawCondition(rng, nil)
}

// DrawConditionWeighted draws with caller weights; conditions missing from
// the map weigh zero. A table with no positive weight yields normal.
func DrawConditionWeighted(rng Rand, weights map[Condition]float64) Condition {
	return drawCondition(rng, weights)
}

func drawCondition(rng Rand, override map[Condition]float64) Condition {
	weights := make([]float64, len(conditions))
	for i, e := range conditions {
		if override != nil {
			weights[i] = override[e.condition]
		} else {
			weights[i] = e.weight
		}
	}
	i := WeightedIndex(rng, weights)
	if i < 0 {
		return ConditionNormal
	}
	return conditions[i].condition
}

// DrawConditions draws n independent conditions.
func DrawConditions(rng Rand, n int) []Condition {
	out := make([]Condition, n)
	for i := range out {
		out[i] = DrawCondition(rng)
	}
	return out
}
