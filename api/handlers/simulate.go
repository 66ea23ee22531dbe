package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"market-sim-go/api/models"
	"market-sim-go/report"
	"market-sim-go/sim"
)

// SimulateHandler runs simulations on request.
type SimulateHandler struct {
	// Defaults fill request fields left at zero.
	Defaults sim.Parameters
}

func NewSimulateHandler(defaults sim.Parameters) *SimulateHandler {
	return &SimulateHandler{Defaults: defaults}
}

// RunSimulation handles POST /api/v1/simulate.
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	params := h.applyDefaults(req.Params)
	traj, err := sim.Run(c.Request.Context(), params)
	if err != nil {
		h.writeRunError(c, err)
		return
	}

	resp := models.SimulateResponse{Summary: report.Summarize(traj)}
	if req.IncludeSnapshots {
		resp.Trajectory = traj
	}
	c.JSON(http.StatusOK, resp)
}

// RunMonteCarlo handles POST /api/v1/montecarlo.
func (h *SimulateHandler) RunMonteCarlo(c *gin.Context) {
	var req models.MonteCarloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	params := h.applyDefaults(req.Params)
	batch := req.Batch
	if batch.Runs == 0 {
		batch = sim.DefaultBatchConfig()
	}
	result, err := sim.RunBatch(c.Request.Context(), params, batch)
	if err != nil {
		h.writeRunError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MonteCarloResponse{
		Summary:   report.SummarizeBatch(result),
		FinalPnLs: result.FinalPnLs(),
	})
}

func (h *SimulateHandler) applyDefaults(p sim.Parameters) sim.Parameters {
	if p.InitialPrice == 0 {
		p.InitialPrice = h.Defaults.InitialPrice
	}
	if p.SimulationSteps == 0 {
		p.SimulationSteps = h.Defaults.SimulationSteps
	}
	if p.DecayConstant == 0 {
		p.DecayConstant = h.Defaults.DecayConstant
	}
	if p.TimeHorizon == 0 {
		p.TimeHorizon = h.Defaults.TimeHorizon
	}
	if p.FillSize == 0 {
		p.FillSize = h.Defaults.FillSize
	}
	return p
}

func (h *SimulateHandler) writeRunError(c *gin.Context, err error) {
	var tickErr *sim.TickError
	switch {
	case errors.Is(err, sim.ErrInvalidParameter):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PARAMETERS",
				Message: err.Error(),
			},
		})
	case errors.As(err, &tickErr):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RUN_ABORTED",
				Message: err.Error(),
				Details: map[string]interface{}{
					"tick":            tickErr.Tick,
					"completed_ticks": len(tickErr.Partial),
				},
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: err.Error(),
			},
		})
	}
}
