package random

import (
	"errors"
	"testing"
)

func TestResolvePrefersRequestedSeed(t *testing.T) {
	seed, source, err := Resolve(77, func() (int64, error) {
		t.Fatal("generator called for a requested seed")
		return 0, nil
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if seed != 77 || source != SourceRequested {
		t.Fatalf("seed = %d source = %q, want 77 %q", seed, source, SourceRequested)
	}
}

func TestResolveGeneratesWhenUnset(t *testing.T) {
	seed, source, err := Resolve(0, func() (int64, error) { return 123, nil })
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if seed != 123 || source != SourceGenerated {
		t.Fatalf("seed = %d source = %q, want 123 %q", seed, source, SourceGenerated)
	}
}

func TestResolvePropagatesGeneratorError(t *testing.T) {
	boom := errors.New("boom")
	if _, _, err := Resolve(0, func() (int64, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(9), New(9)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d differs", i)
		}
	}
}
