package process

import "errors"

// PriceFloor is the minimum admissible mid price. An increment that would
// push the price to or below zero is clamped here instead of rejected, so
// every path stays strictly positive for its full length.
const PriceFloor = 1e-6

// IncrementSource provides the stochastic increments driving the mid price.
type IncrementSource interface {
	Increment() float64
}

// MidPrice integrates increments into a strictly positive price path.
// The path is append-only and grows by exactly one entry per Advance call;
// index 0 is the initial price.
type MidPrice struct {
	src  IncrementSource
	path []float64
}

// NewMidPrice creates a mid-price model starting at initial.
func NewMidPrice(initial float64, src IncrementSource) (*MidPrice, error) {
	if initial <= 0 {
		return nil, errors.New("initial price must be > 0")
	}
	if src == nil {
		return nil, errors.New("increment source is required")
	}
	return &MidPrice{
		src:  src,
		path: []float64{initial},
	}, nil
}

// Current returns the latest price on the path.
func (m *MidPrice) Current() float64 {
	return m.path[len(m.path)-1]
}

// Advance draws one increment, applies it and returns the new price.
func (m *MidPrice) Advance() float64 {
	next := m.Current() + m.src.Increment()
	if next < PriceFloor {
		next = PriceFloor
	}
	m.path = append(m.path, next)
	return next
}

// Path returns a copy of the price path accumulated so far.
func (m *MidPrice) Path() []float64 {
	out := make([]float64, len(m.path))
	copy(out, m.path)
	return out
}
