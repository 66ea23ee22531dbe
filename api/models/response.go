package models

import (
	"market-sim-go/report"
	"market-sim-go/sim"
)

// SimulateResponse carries one completed run.
type SimulateResponse struct {
	Summary    report.RunSummary `json:"summary"`
	Trajectory *sim.Trajectory   `json:"trajectory,omitempty"`
}

// MonteCarloResponse carries an aggregated batch.
type MonteCarloResponse struct {
	Summary   report.BatchSummary `json:"summary"`
	FinalPnLs []float64           `json:"finalPnls"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
