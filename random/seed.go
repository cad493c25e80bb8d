// Package random picks and applies race seeds. A race replays exactly from
// its seed, so every race reports the seed it ran with.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source says where a seed came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceRequested Source = "requested"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Resolve returns requested when it is non-zero, otherwise a seed from gen.
// A nil gen uses NewSeed.
func Resolve(requested int64, gen func() (int64, error)) (int64, Source, error) {
	if requested != 0 {
		return requested, SourceRequested, nil
	}
	if gen == nil {
		gen = NewSeed
	}
	seed, err := gen()
	if err != nil {
		return 0, "", err
	}
	return seed, SourceGenerated, nil
}

// New returns a math/rand source for seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
