package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-sim-go/execution"
)

func testParams() Parameters {
	p := DefaultParameters()
	p.SimulationSteps = 200
	p.Seed = 42
	return p
}

func TestRun_NegativeVolatilityFailsBeforeAnyTick(t *testing.T) {
	p := testParams()
	p.Volatility = -0.1

	_, err := Run(context.Background(), p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	var tickErr *TickError
	assert.False(t, errors.As(err, &tickErr), "configuration errors must not carry a tick index")
}

func TestRun_MidPriceStaysPositive(t *testing.T) {
	p := testParams()
	p.Volatility = 50 // violent path, exercises the clamp

	traj, err := Run(context.Background(), p)
	require.NoError(t, err)
	for _, s := range traj.Snapshots {
		assert.Greater(t, s.Mid, 0.0, "tick %d", s.Step)
	}
}

func TestRun_InventoryDeltaPerTick(t *testing.T) {
	traj, err := Run(context.Background(), testParams())
	require.NoError(t, err)

	prev := 0.0
	for _, s := range traj.Snapshots {
		delta := s.Inventory - prev
		assert.Contains(t, []float64{-1, 0, 1}, delta, "tick %d delta %v", s.Step, delta)

		// The recorded fill flags must explain the delta exactly.
		want := 0.0
		if s.BidFilled {
			want++
		}
		if s.AskFilled {
			want--
		}
		assert.InDelta(t, want, delta, 1e-12, "tick %d", s.Step)
		prev = s.Inventory
	}
}

func TestRun_TerminalPnLIdentity(t *testing.T) {
	traj, err := Run(context.Background(), testParams())
	require.NoError(t, err)

	last := traj.Snapshots[len(traj.Snapshots)-1]
	assert.InDelta(t, last.Cash+last.Inventory*last.Mid, traj.FinalPnL, 1e-9)
	assert.Equal(t, last.Mid, traj.FinalMid)
	assert.Equal(t, last.Inventory, traj.FinalInventory)
}

func TestRun_Reproducible(t *testing.T) {
	p := testParams()
	a, err := Run(context.Background(), p)
	require.NoError(t, err)
	b, err := Run(context.Background(), p)
	require.NoError(t, err)

	// Bit-identical trajectories; only the run ID differs.
	assert.Equal(t, a.Snapshots, b.Snapshots)
	assert.Equal(t, a.FinalPnL, b.FinalPnL)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRun_SingleStepBoundary(t *testing.T) {
	p := testParams()
	p.SimulationSteps = 1

	r, err := NewRunner(p)
	require.NoError(t, err)
	assert.Equal(t, StateNotStarted, r.State())

	traj, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, r.State())

	require.Len(t, traj.Snapshots, 1)
	assert.Equal(t, 0.0, traj.Snapshots[0].TimeRemaining)
}

func TestRunner_SingleUse(t *testing.T) {
	r, err := NewRunner(testParams())
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	assert.ErrorIs(t, err, ErrRunConsumed)
}

func TestRun_ZeroVolatilityScenario(t *testing.T) {
	// initial=100, vol=0, execProb=1, steps=5, gamma=0, k=1: the mid pins at
	// 100, the spread degenerates to the fixed half-spread 1/k = 1, and the
	// per-side fill probability is exp(-k*offset) = exp(-1) each tick.
	p := Parameters{
		InitialPrice:         100,
		Volatility:           0,
		ExecutionProbability: 1,
		SimulationSteps:      5,
		RiskAversion:         0,
		DecayConstant:        1,
		TimeHorizon:          1,
		Seed:                 7,
		FillSize:             1,
	}

	traj, err := Run(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, traj.Snapshots, 5)

	for _, s := range traj.Snapshots {
		assert.Equal(t, 100.0, s.Mid, "tick %d", s.Step)
		assert.Equal(t, 1.0, s.BidOffset, "tick %d", s.Step)
		assert.Equal(t, 1.0, s.AskOffset, "tick %d", s.Step)
	}

	// Replay the execution rng (seed+1, bid drawn before ask) and check the
	// recorded fill flags against the model's own exp(-1) draws at offset 1.
	ref, err := execution.New(p.ExecutionProbability, p.DecayConstant, p.Seed+1)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-1), ref.Intensity(1), 1e-15)
	for _, s := range traj.Snapshots {
		assert.Equal(t, ref.SampleFill(1), s.BidFilled, "tick %d bid", s.Step)
		assert.Equal(t, ref.SampleFill(1), s.AskFilled, "tick %d ask", s.Step)
	}
}

func TestRun_CancellationCarriesPartialTrajectory(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := testParams()
	_, err := Run(ctx, p)
	require.Error(t, err)

	var tickErr *TickError
	require.ErrorAs(t, err, &tickErr)
	assert.Equal(t, 0, tickErr.Tick)
	assert.Len(t, tickErr.Partial, 1, "the tick completed before the abort is preserved")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_TimeRemainingDecreasesToZero(t *testing.T) {
	p := testParams()
	p.SimulationSteps = 10
	p.TimeHorizon = 2

	traj, err := Run(context.Background(), p)
	require.NoError(t, err)

	prev := math.Inf(1)
	for _, s := range traj.Snapshots {
		assert.Less(t, s.TimeRemaining, prev, "tick %d", s.Step)
		assert.GreaterOrEqual(t, s.TimeRemaining, 0.0, "tick %d", s.Step)
		prev = s.TimeRemaining
	}
	assert.Equal(t, 0.0, traj.Snapshots[len(traj.Snapshots)-1].TimeRemaining)
}
