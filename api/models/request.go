package models

import "market-sim-go/sim"

// SimulateRequest is the body of POST /api/v1/simulate. Params left at
// their zero value are filled from the server defaults.
type SimulateRequest struct {
	Params sim.Parameters `json:"params"`
	// IncludeSnapshots embeds the full per-tick trajectory in the response.
	// Off by default: long runs produce large payloads.
	IncludeSnapshots bool `json:"includeSnapshots"`
}

// MonteCarloRequest is the body of POST /api/v1/montecarlo.
type MonteCarloRequest struct {
	Params sim.Parameters  `json:"params"`
	Batch  sim.BatchConfig `json:"batch"`
}
