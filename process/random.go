package process

import (
	"errors"
	"math"
	"math/rand"
)

// GaussianIncrements draws i.i.d. zero-mean normal price increments with
// per-step scale volatility*sqrt(dt). Each instance owns its generator, so
// independent simulation runs never share random state.
type GaussianIncrements struct {
	scale float64
	rng   *rand.Rand
}

// NewGaussianIncrements creates a seeded increment source.
func NewGaussianIncrements(volatility, dt float64, seed int64) (*GaussianIncrements, error) {
	if volatility < 0 || math.IsNaN(volatility) || math.IsInf(volatility, 0) {
		return nil, errors.New("volatility must be a finite value >= 0")
	}
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, errors.New("time step must be a finite value > 0")
	}
	return &GaussianIncrements{
		scale: volatility * math.Sqrt(dt),
		rng:   rand.New(rand.NewSource(seed)),
	}, nil
}

// Increment returns one sample. Successive calls are independent draws.
func (g *GaussianIncrements) Increment() float64 {
	return g.scale * g.rng.NormFloat64()
}
