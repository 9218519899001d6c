package engine

import (
	"errors"
	"testing"
)

func TestRNG_Deterministic(t *testing.T) {
	rng1 := NewRNG(42)
	rng2 := NewRNG(42)

	for i := 0; i < 20; i++ {
		a, _ := rng1.IntRange(15, 25)
		b, _ := rng2.IntRange(15, 25)
		if a != b {
			t.Fatalf("roll %d: got %d and %d from same seed", i, a, b)
		}
	}
}

func TestRNG_IntRange_Bounds(t *testing.T) {
	rng := NewRNG(99)
	seen := map[int]bool{}

	for i := 0; i < 2000; i++ {
		v, err := rng.IntRange(1, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v < 1 || v > 3 {
			t.Fatalf("value out of range [1,3]: got %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all of 1..3 to appear, saw %v", seen)
	}
}

func TestRNG_IntRange_SingleValue(t *testing.T) {
	rng := NewRNG(1)
	for i := 0; i < 10; i++ {
		if v, _ := rng.IntRange(7, 7); v != 7 {
			t.Fatalf("degenerate range should always be 7, got %d", v)
		}
	}
}

func TestRNG_IntRange_Invalid(t *testing.T) {
	rng := NewRNG(1)
	_, err := rng.IntRange(5, 4)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if rng.Position() != 0 {
		t.Errorf("failed call should not advance position, got %d", rng.Position())
	}
}

func TestRNG_IntRange_Distribution(t *testing.T) {
	rng := NewRNG(12345)
	counts := [3]int{}

	const trials = 9000
	for i := 0; i < trials; i++ {
		v, _ := rng.IntRange(1, 3)
		counts[v-1]++
	}
	for i, c := range counts {
		if c < 2600 || c > 3400 {
			t.Errorf("value %d: expected ~3000, got %d", i+1, c)
		}
	}
}

func TestRNG_Position_Tracks(t *testing.T) {
	rng := NewRNG(42)
	if rng.Position() != 0 {
		t.Fatalf("expected position 0, got %d", rng.Position())
	}
	rng.IntRange(1, 6)
	Pick(rng, []string{"a", "b"})
	if rng.Position() != 2 {
		t.Fatalf("expected position 2, got %d", rng.Position())
	}
	if rng.Seed() != 42 {
		t.Errorf("seed = %d, want 42", rng.Seed())
	}
}

func TestPick(t *testing.T) {
	rng := NewRNG(7)
	items := []string{"Lobo", "Bandido", "Esqueleto"}
	for i := 0; i < 50; i++ {
		got, err := Pick(rng, items)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		found := false
		for _, it := range items {
			if it == got {
				found = true
			}
		}
		if !found {
			t.Fatalf("picked %q not in collection", got)
		}
	}
}

func TestPick_Empty(t *testing.T) {
	_, err := Pick(NewRNG(1), []int{})
	if !errors.Is(err, ErrEmptyCollection) {
		t.Fatalf("expected ErrEmptyCollection, got %v", err)
	}
}

func TestPick_UsesInjectedSource(t *testing.T) {
	src := &seqRNG{values: []int{2}}
	got, err := Pick(src, []string{"a", "b", "c"})
	if err != nil || got != "c" {
		t.Errorf("Pick = %q, %v; want c", got, err)
	}
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	b, _ := NewSeed()
	if a == b {
		t.Error("two seeds from crypto/rand should differ")
	}
}
