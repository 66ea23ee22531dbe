// Package strategy derives optimal quote placements from inventory, time
// remaining and volatility, following the Avellaneda-Stoikov closed form.
package strategy

import (
	"errors"
	"math"
)

// Quote is a pair of non-negative offsets from the mid price.
// bid price = mid - BidOffset, ask price = mid + AskOffset.
type Quote struct {
	BidOffset float64
	AskOffset float64
}

// Config holds the closed-form constants.
type Config struct {
	RiskAversion  float64 // gamma; 0 disables inventory skew and the variance term
	DecayConstant float64 // k, the order-book liquidity decay
	Volatility    float64 // sigma, per-step std of mid-price increments
}

// Quoter computes reservation price and optimal half spread.
//
// reservation = mid - inventory*gamma*sigma^2*timeLeft
// halfSpread  = gamma*sigma^2*timeLeft/2 + ln(1+gamma/k)/gamma
//
// For gamma == 0 the log term is replaced by its gamma->0 limit 1/k, which
// degenerates to a fixed symmetric spread around mid.
type Quoter struct {
	gamma    float64
	k        float64
	variance float64
}

// NewQuoter validates the constants and builds a quoter.
func NewQuoter(cfg Config) (*Quoter, error) {
	if cfg.RiskAversion < 0 || math.IsNaN(cfg.RiskAversion) || math.IsInf(cfg.RiskAversion, 0) {
		return nil, errors.New("risk aversion must be a finite value >= 0")
	}
	if cfg.DecayConstant <= 0 || math.IsNaN(cfg.DecayConstant) || math.IsInf(cfg.DecayConstant, 0) {
		return nil, errors.New("decay constant must be > 0")
	}
	if cfg.Volatility < 0 || math.IsNaN(cfg.Volatility) || math.IsInf(cfg.Volatility, 0) {
		return nil, errors.New("volatility must be a finite value >= 0")
	}
	return &Quoter{
		gamma:    cfg.RiskAversion,
		k:        cfg.DecayConstant,
		variance: cfg.Volatility * cfg.Volatility,
	}, nil
}

// ReservationPrice is the inventory-adjusted center price. A long position
// pushes it below mid to bias toward inventory-reducing ask fills, and
// symmetrically for a short position.
func (q *Quoter) ReservationPrice(mid, inventory, timeLeft float64) float64 {
	return mid - inventory*q.gamma*q.variance*timeLeft
}

// HalfSpread is the distance from the reservation price to each quote.
func (q *Quoter) HalfSpread(timeLeft float64) float64 {
	if q.gamma == 0 {
		return 1 / q.k
	}
	return q.gamma*q.variance*timeLeft/2 + math.Log(1+q.gamma/q.k)/q.gamma
}

// QuoteAt returns the optimal offsets for the current state. Offsets are
// floored at zero: heavy inventory skew can push a raw quote through mid,
// and a crossed quote is reported as resting at mid instead.
func (q *Quoter) QuoteAt(mid, inventory, timeLeft float64) Quote {
	r := q.ReservationPrice(mid, inventory, timeLeft)
	h := q.HalfSpread(timeLeft)
	bidOffset := mid - (r - h)
	askOffset := (r + h) - mid
	if bidOffset < 0 {
		bidOffset = 0
	}
	if askOffset < 0 {
		askOffset = 0
	}
	return Quote{BidOffset: bidOffset, AskOffset: askOffset}
}
