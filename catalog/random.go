package catalog

// Rand is the random source the simulation draws from. *math/rand.Rand
// satisfies it; tests substitute scripted sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// WeightedIndex picks an index with probability proportional to its weight.
// Non-positive weights are never picked, so a table with a single positive
// weight always returns that entry. It returns -1 if no weight is positive.
func WeightedIndex(rng Rand, weights []float64) int {
	total := 0.0
	last := -1
	for i, w := range weights {
		if w > 0 {
			total += w
			last = i
		}
	}
	if last < 0 {
		return -1
	}

	pick := rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if pick < w {
			return i
		}
		pick -= w
	}
	return last
}
