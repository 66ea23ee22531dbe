package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter marks configuration errors. They are detected once at
// construction and never mid-run.
var ErrInvalidParameter = errors.New("invalid simulation parameter")

// Parameters is the immutable configuration of a single simulation run.
type Parameters struct {
	InitialPrice         float64 `yaml:"initialPrice" json:"initialPrice"`
	Volatility           float64 `yaml:"volatility" json:"volatility"`
	ExecutionProbability float64 `yaml:"executionProbability" json:"executionProbability"`
	SimulationSteps      int     `yaml:"simulationSteps" json:"simulationSteps"`

	RiskAversion  float64 `yaml:"riskAversion" json:"riskAversion"`
	DecayConstant float64 `yaml:"decayConstant" json:"decayConstant"`
	TimeHorizon   float64 `yaml:"timeHorizon" json:"timeHorizon"`

	// Seed drives every random source of the run. 0 means "derive from the
	// wall clock", which sacrifices reproducibility.
	Seed     int64   `yaml:"seed" json:"seed"`
	FillSize float64 `yaml:"fillSize" json:"fillSize"`
}

// DefaultParameters returns a runnable default configuration.
func DefaultParameters() Parameters {
	return Parameters{
		InitialPrice:         100,
		Volatility:           2,
		ExecutionProbability: 0.8,
		SimulationSteps:      1000,
		RiskAversion:         0.1,
		DecayConstant:        1.5,
		TimeHorizon:          1,
		Seed:                 0,
		FillSize:             1,
	}
}

// Validate checks every field against its documented domain.
func (p Parameters) Validate() error {
	if p.InitialPrice <= 0 || !isFinite(p.InitialPrice) {
		return fmt.Errorf("%w: initialPrice must be a finite value > 0", ErrInvalidParameter)
	}
	if p.Volatility < 0 || !isFinite(p.Volatility) {
		return fmt.Errorf("%w: volatility must be a finite value >= 0", ErrInvalidParameter)
	}
	if p.ExecutionProbability < 0 || p.ExecutionProbability > 1 || math.IsNaN(p.ExecutionProbability) {
		return fmt.Errorf("%w: executionProbability must be in [0,1]", ErrInvalidParameter)
	}
	if p.SimulationSteps < 1 {
		return fmt.Errorf("%w: simulationSteps must be >= 1", ErrInvalidParameter)
	}
	if p.RiskAversion < 0 || !isFinite(p.RiskAversion) {
		return fmt.Errorf("%w: riskAversion must be a finite value >= 0", ErrInvalidParameter)
	}
	if p.DecayConstant <= 0 || !isFinite(p.DecayConstant) {
		return fmt.Errorf("%w: decayConstant must be > 0", ErrInvalidParameter)
	}
	if p.TimeHorizon <= 0 || !isFinite(p.TimeHorizon) {
		return fmt.Errorf("%w: timeHorizon must be > 0", ErrInvalidParameter)
	}
	if p.FillSize <= 0 || !isFinite(p.FillSize) {
		return fmt.Errorf("%w: fillSize must be > 0", ErrInvalidParameter)
	}
	return nil
}

// Dt is the length of one tick in horizon units.
func (p Parameters) Dt() float64 {
	return p.TimeHorizon / float64(p.SimulationSteps)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
