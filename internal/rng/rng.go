// Package rng provides the seeded random source used to fill the grid
// at 50% density when no pattern file is given.
package rng

import "math/rand"

// Source wraps a seeded PRNG producing whole 64-bit chip words, so a
// random seed can be delivered in one RECV per chip rather than one
// unicast per cell.
type Source struct {
	r *rand.Rand
}

// New creates a Source seeded with seed.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// ChipWord returns a fresh 64-bit word with each bit independently 1
// with 50% probability.
func (s *Source) ChipWord() uint64 {
	return s.r.Uint64()
}
