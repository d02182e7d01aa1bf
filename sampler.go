package fakedata

import (
	"fmt"
	"math/rand/v2"
)

// RandSource is the randomness consumed by a Sampler. *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
	Float64() float64
}

// globalSource draws from the math/rand/v2 top level functions, which are safe
// for concurrent use.
type globalSource struct{}

func (globalSource) IntN(n int) int   { return rand.IntN(n) }
func (globalSource) Float64() float64 { return rand.Float64() }

// Sampler picks elements and integers. Seeded samplers are deterministic and
// meant for a single goroutine; the default sampler is safe for concurrent use.
type Sampler struct {
	src RandSource
}

// Weighted pairs a value with its relative weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

var defaultSampler = &Sampler{src: globalSource{}}

// DefaultSampler returns the process wide sampler
func DefaultSampler() *Sampler {
	return defaultSampler
}

// NewSampler wraps src; a nil src falls back to the process wide source
func NewSampler(src RandSource) *Sampler {
	if src == nil {
		src = globalSource{}
	}
	return &Sampler{src: src}
}

// NewSeededSampler returns a deterministic sampler for seed
func NewSeededSampler(seed uint64) *Sampler {
	return &Sampler{src: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Sampler) source() RandSource {
	if s == nil || s.src == nil {
		return globalSource{}
	}
	return s.src
}

// Choice picks one element uniformly.
func Choice[T any](s *Sampler, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyPool
	}
	return items[s.source().IntN(len(items))], nil
}

// WeightedChoice picks one element with probability proportional to its weight.
func WeightedChoice[T any](s *Sampler, items []Weighted[T]) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyPool
	}

	var total float64
	for i, item := range items {
		if item.Weight < 0 {
			return zero, fmt.Errorf("%w: negative weight at #%d", ErrInvalidWeights, i)
		}
		total += item.Weight
	}
	if total <= 0 {
		return zero, fmt.Errorf("%w: all weights are zero", ErrInvalidWeights)
	}

	target := s.source().Float64() * total
	var acc float64
	last := -1
	for i, item := range items {
		if item.Weight == 0 {
			continue
		}
		acc += item.Weight
		last = i
		if acc > target {
			return item.Value, nil
		}
	}

	// float rounding can leave target == total
	return items[last].Value, nil
}

// IntRange returns an integer in [lo, hi].
func (s *Sampler) IntRange(lo, hi int) (int, error) {
	if lo > hi {
		return 0, fmt.Errorf("%w: %d > %d", ErrInvalidRange, lo, hi)
	}
	span := hi - lo + 1
	if span <= 0 {
		return 0, fmt.Errorf("%w: [%d, %d] overflows", ErrInvalidRange, lo, hi)
	}
	return lo + s.source().IntN(span), nil
}

// Pick samples a pool, weighted when the pool carries weights.
func (s *Sampler) Pick(pool Pool) (string, error) {
	if !pool.Weighted() {
		return Choice(s, pool.Values)
	}
	if len(pool.Weights) != len(pool.Values) {
		return "", fmt.Errorf("%w: %d weights for %d values", ErrInvalidWeights, len(pool.Weights), len(pool.Values))
	}

	items := make([]Weighted[string], len(pool.Values))
	for i, value := range pool.Values {
		items[i] = Weighted[string]{Value: value, Weight: pool.Weights[i]}
	}
	return WeightedChoice(s, items)
}
