package catalog

import (
	"math/rand"
	"testing"
)

// scripted replays fixed values, cycling when it runs out.
type scripted struct {
	floats []float64
	i      int
}

func (s *scripted) Float64() float64 {
	v := s.floats[s.i%len(s.floats)]
	s.i++
	return v
}

func (s *scripted) Intn(n int) int {
	return int(s.Float64() * float64(n))
}

// TestWeightedIndexSingleWeight ensures a lone positive weight always wins.
func TestWeightedIndexSingleWeight(t *testing.T) {
	weights := []float64{0, 0, 3, 0}
	for _, f := range []float64{0, 0.25, 0.5, 0.999999} {
		if got := WeightedIndex(&scripted{floats: []float64{f}}, weights); got != 2 {
			t.Fatalf("WeightedIndex(%v) = %d, want 2", f, got)
		}
	}
}

// TestWeightedIndexNoWeights ensures empty tables return -1.
func TestWeightedIndexNoWeights(t *testing.T) {
	if got := WeightedIndex(rand.New(rand.NewSource(1)), []float64{0, -1}); got != -1 {
		t.Fatalf("WeightedIndex = %d, want -1", got)
	}
}

// TestWeightedIndexBoundaries ensures draws land in the right bucket.
func TestWeightedIndexBoundaries(t *testing.T) {
	weights := []float64{1, 1, 2}
	tcs := []struct {
		f    float64
		want int
	}{
		{0, 0},
		{0.2, 0},
		{0.3, 1},
		{0.6, 2},
		{0.99, 2},
	}
	for _, tc := range tcs {
		if got := WeightedIndex(&scripted{floats: []float64{tc.f}}, weights); got != tc.want {
			t.Fatalf("WeightedIndex(%v) = %d, want %d", tc.f, got, tc.want)
		}
	}
}

// TestDrawConditionSingleWeight ensures a zero-entropy table is deterministic.
func TestDrawConditionSingleWeight(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	weights := map[Condition]float64{ConditionPoor: 5}
	for i := 0; i < 100; i++ {
		if got := DrawConditionWeighted(rng, weights); got != ConditionPoor {
			t.Fatalf("draw %d = %s, want poor", i, got)
		}
	}
}

// TestDrawSpecialDaySingleWeight ensures a zero-entropy day table is deterministic.
func TestDrawSpecialDaySingleWeight(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	weights := make([]float64, len(SpecialDays()))
	weights[len(weights)-1] = 1
	for i := 0; i < 100; i++ {
		if got := DrawSpecialDayWeighted(rng, weights); got != DayChaos {
			t.Fatalf("draw %d = %s, want chaos", i, got)
		}
	}
}

// TestSpawnWeightsSingleType ensures a single spawnable type is always drawn.
func TestSpawnWeightsSingleType(t *testing.T) {
	types := GimmickTypes()
	weights := make([]float64, len(types))
	weights[3] = SpawnWeights(DayMud)[3]
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		if got := types[WeightedIndex(rng, weights)]; got != GimmickMud {
			t.Fatalf("draw %d = %s, want mud", i, got)
		}
	}
}

// TestSpecialDayModifiers checks the featured and chaos tables.
func TestSpecialDayModifiers(t *testing.T) {
	if got := DayPoop.Modifier(GimmickPoop); got != 3 {
		t.Fatalf("poop day poop modifier = %v, want 3", got)
	}
	if got := DayPoop.Modifier(GimmickGrass); got != 0.5 {
		t.Fatalf("poop day grass modifier = %v, want 0.5", got)
	}
	if got := DayChaos.Modifier(GimmickCarrot); got != 2 {
		t.Fatalf("chaos carrot modifier = %v, want 2", got)
	}
	if got := ParseSpecialDay("festival"); got != DayNormal {
		t.Fatalf("unknown day parsed to %s, want normal", got)
	}
}

// TestRosterIntegrity ensures ids are 1..15 and abilities are unique.
func TestRosterIntegrity(t *testing.T) {
	horses := Roster()
	if len(horses) != 15 {
		t.Fatalf("expected 15 horses, got %d", len(horses))
	}
	seen := map[Ability]bool{}
	for i, h := range horses {
		if h.ID != i+1 {
			t.Fatalf("horse %d has id %d", i, h.ID)
		}
		if err := h.Validate(); err != nil {
			t.Fatalf("horse %d invalid: %v", h.ID, err)
		}
		if seen[h.Ability] {
			t.Fatalf("ability %s used twice", h.Ability)
		}
		seen[h.Ability] = true
	}
	horses[0].Name = "changed"
	if Roster()[0].Name == "changed" {
		t.Fatal("Roster returned shared storage")
	}
}

// TestConditionModifiers checks the speed table and unknown fallback.
func TestConditionModifiers(t *testing.T) {
	if got := ConditionExcellent.SpeedModifier(); got != 1.15 {
		t.Fatalf("excellent = %v", got)
	}
	if got := Condition("sleepy").SpeedModifier(); got != 1 {
		t.Fatalf("unknown condition = %v, want 1", got)
	}
}

// TestCourseLengthWithinMode ensures drawn lengths stay in band.
func TestCourseLengthWithinMode(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 200; i++ {
		got := CourseLength(ModeSprint, rng)
		if got < 1200*UnitsPerMetre || got > 1600*UnitsPerMetre {
			t.Fatalf("sprint length %v out of band", got)
		}
	}
	if m, ok := ParseRaceMode("LONG"); !ok || m != ModeStayer {
		t.Fatalf("ParseRaceMode(LONG) = %s, %v", m, ok)
	}
}

// TestParseAbility ensures unknown tags are rejected.
func TestParseAbility(t *testing.T) {
	if _, err := ParseAbility("teleport"); err == nil {
		t.Fatal("expected error for unknown ability")
	}
	if a, err := ParseAbility("crusher"); err != nil || a != AbilityCrusher {
		t.Fatalf("ParseAbility(crusher) = %s, %v", a, err)
	}
}
