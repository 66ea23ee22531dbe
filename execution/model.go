// Package execution models whether resting quotes get filled. The fill
// probability decays exponentially with the quote's distance from the mid
// price: intensity(offset) = baseProb * exp(-decay*offset).
package execution

import (
	"errors"
	"math"
	"math/rand"
)

// Model computes fill intensities and samples fill outcomes.
type Model struct {
	baseProb float64
	decay    float64
	rng      *rand.Rand
}

// New creates a fill model. baseProb is the fill probability of a quote
// resting exactly at the mid price; decay controls how fast the probability
// falls off with distance.
func New(baseProb, decay float64, seed int64) (*Model, error) {
	if baseProb < 0 || baseProb > 1 || math.IsNaN(baseProb) {
		return nil, errors.New("base probability must be in [0,1]")
	}
	if decay <= 0 || math.IsNaN(decay) || math.IsInf(decay, 0) {
		return nil, errors.New("decay constant must be > 0")
	}
	return &Model{
		baseProb: baseProb,
		decay:    decay,
		rng:      rand.New(rand.NewSource(seed)),
	}, nil
}

// Intensity returns the one-tick fill probability for a quote offset ticks
// away from mid. Monotone non-increasing in offset; Intensity(0) is exactly
// the base probability. Clamped into [0,1] against floating-point drift.
func (m *Model) Intensity(offset float64) float64 {
	if offset < 0 {
		offset = 0
	}
	p := m.baseProb * math.Exp(-m.decay*offset)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// SampleFill draws one Bernoulli trial at the intensity for offset.
// Bid and ask sides are expected to call this separately; the draws are
// independent.
func (m *Model) SampleFill(offset float64) bool {
	return m.rng.Float64() < m.Intensity(offset)
}
