// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package core

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"

	"github.com/samber/oops"
)

// RandomSource supplies the dice rolls and table picks used by the turn pipeline.
// Implementations are not required to be safe for concurrent use.
type RandomSource interface {
	// RollRange returns a value uniformly distributed in [lo, hi].
	RollRange(lo, hi uint32) uint32
	// ChooseIndex returns a uniform index in [0, n), or false when n is 0.
	ChooseIndex(n int) (int, bool)
}

// Choose picks one element of items uniformly. It returns false for an empty slice.
func Choose[T any](src RandomSource, items []T) (T, bool) {
	var zero T
	idx, ok := src.ChooseIndex(len(items))
	if !ok || idx < 0 || idx >= len(items) {
		return zero, false
	}
	return items[idx], true
}

// DefaultSource is the production RandomSource backed by a PCG generator.
type DefaultSource struct {
	rng *rand.Rand
}

// NewDefaultSource returns a source seeded from crypto/rand.
func NewDefaultSource() (*DefaultSource, error) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, oops.Code("RNG_SEED_FAILED").Wrapf(err, "read random seed")
	}
	return &DefaultSource{
		rng: rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:]))),
	}, nil
}

// NewSeededSource returns a reproducible source for the given seed.
func NewSeededSource(seed uint64) *DefaultSource {
	return &DefaultSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// RollRange returns a value in [lo, hi]; reversed bounds are swapped.
func (s *DefaultSource) RollRange(lo, hi uint32) uint32 {
	if lo > hi {
		lo, hi = hi, lo
	}
	span := uint64(hi-lo) + 1
	return lo + uint32(s.rng.Uint64N(span))
}

// ChooseIndex returns a uniform index in [0, n).
func (s *DefaultSource) ChooseIndex(n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	return int(s.RollRange(0, uint32(n-1))), true
}
