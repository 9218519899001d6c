package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrInvalidRange is returned when a range's low bound exceeds its high bound.
	ErrInvalidRange = errors.New("invalid range")
	// ErrEmptyCollection is returned when picking from an empty sequence.
	ErrEmptyCollection = errors.New("empty collection")
)

// Random supplies uniform integers in a closed range. Combat and chapter
// code depend on this interface so tests can inject fixed sequences.
type Random interface {
	IntRange(low, high int) (int, error)
}

// RNG wraps math/rand.Rand with position tracking.
// Position increments with every successful call.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// NewSeed generates a seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// IntRange returns a random integer in [low, high].
func (r *RNG) IntRange(low, high int) (int, error) {
	if low > high {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, low, high)
	}
	r.pos++
	return low + r.src.Intn(high-low+1), nil
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of RNG calls made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// Pick returns a uniformly random element of items.
func Pick[T any](r Random, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyCollection
	}
	i, err := r.IntRange(0, len(items)-1)
	if err != nil {
		return zero, err
	}
	return items[i], nil
}
