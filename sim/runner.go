package sim

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"market-sim-go/account"
	"market-sim-go/execution"
	"market-sim-go/process"
	"market-sim-go/strategy"
)

// State of a runner. A runner is single-use: once completed it never runs
// again.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateCompleted
)

// Observer receives each snapshot as it is produced, e.g. a live stream
// publisher. Observers must not block; the tick loop calls them inline.
type Observer interface {
	OnSnapshot(Snapshot)
}

// Runner 将随机过程->中间价->策略->成交模型串成一条串行时间线。
// Each tick, in order: advance mid, quote, sample both fills, update state,
// append snapshot, decrement the clock.
type Runner struct {
	// Observer, if set before Run, is notified after every tick.
	Observer Observer

	params Parameters
	mid    *process.MidPrice
	exec   *execution.Model
	quoter *strategy.Quoter
	acct   *account.Tracker
	state  State
}

// NewRunner validates the parameters and assembles a runner. All random
// sources are derived from params.Seed, so equal parameters produce
// bit-identical trajectories.
func NewRunner(params Parameters) (*Runner, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	seed := params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	inc, err := process.NewGaussianIncrements(params.Volatility, params.Dt(), seed)
	if err != nil {
		return nil, err
	}
	mid, err := process.NewMidPrice(params.InitialPrice, inc)
	if err != nil {
		return nil, err
	}
	exec, err := execution.New(params.ExecutionProbability, params.DecayConstant, seed+1)
	if err != nil {
		return nil, err
	}
	quoter, err := strategy.NewQuoter(strategy.Config{
		RiskAversion:  params.RiskAversion,
		DecayConstant: params.DecayConstant,
		Volatility:    params.Volatility,
	})
	if err != nil {
		return nil, err
	}

	return &Runner{
		params: params,
		mid:    mid,
		exec:   exec,
		quoter: quoter,
		acct:   &account.Tracker{},
		state:  StateNotStarted,
	}, nil
}

// State returns the runner's lifecycle state.
func (r *Runner) State() State { return r.state }

// Run executes every tick and returns the completed trajectory. On failure
// it returns a *TickError carrying the failing tick index and the snapshots
// completed before it. Cancellation is checked between ticks only; a tick
// never stops halfway through its sub-steps.
func (r *Runner) Run(ctx context.Context) (*Trajectory, error) {
	if r.state != StateNotStarted {
		return nil, ErrRunConsumed
	}
	r.state = StateRunning

	steps := r.params.SimulationSteps
	dt := r.params.Dt()
	size := r.params.FillSize
	snaps := make([]Snapshot, 0, steps)

	for t := 0; t < steps; t++ {
		mid := r.mid.Advance()
		if mid <= 0 || math.IsNaN(mid) || math.IsInf(mid, 0) {
			r.state = StateCompleted
			return nil, &TickError{Tick: t, Cause: ErrNonFinitePrice, Partial: snaps}
		}

		// timeLeft counts from the start of this tick: horizon at t=0,
		// one dt on the final tick.
		timeLeft := float64(steps-t) * dt
		quote := r.quoter.QuoteAt(mid, r.acct.NetExposure(), timeLeft)

		// Bid drawn before ask, always: the fixed order keeps equal seeds
		// bit-identical.
		bidFilled := r.exec.SampleFill(quote.BidOffset)
		askFilled := r.exec.SampleFill(quote.AskOffset)
		if bidFilled {
			r.acct.ApplyBidFill(mid-quote.BidOffset, size)
		}
		if askFilled {
			r.acct.ApplyAskFill(mid+quote.AskOffset, size)
		}

		remaining := float64(steps-t-1) * dt
		if remaining < 0 {
			r.state = StateCompleted
			return nil, &TickError{Tick: t, Cause: ErrNegativeTimeRemaining, Partial: snaps}
		}

		snap := Snapshot{
			Step:          t,
			Mid:           mid,
			BidOffset:     quote.BidOffset,
			AskOffset:     quote.AskOffset,
			BidFilled:     bidFilled,
			AskFilled:     askFilled,
			Inventory:     r.acct.NetExposure(),
			Cash:          r.acct.Cash(),
			Equity:        r.acct.Equity(mid),
			TimeRemaining: remaining,
		}
		snaps = append(snaps, snap)
		if r.Observer != nil {
			r.Observer.OnSnapshot(snap)
		}

		if err := ctx.Err(); err != nil {
			r.state = StateCompleted
			return nil, &TickError{Tick: t, Cause: err, Partial: snaps}
		}
	}

	r.state = StateCompleted
	finalMid := r.mid.Current()
	return &Trajectory{
		RunID:          uuid.NewString(),
		Params:         r.params,
		Snapshots:      snaps,
		FinalPnL:       r.acct.Equity(finalMid),
		FinalInventory: r.acct.NetExposure(),
		FinalMid:       finalMid,
	}, nil
}

// Run is the core entry contract: parameters in, completed trajectory out.
func Run(ctx context.Context, params Parameters) (*Trajectory, error) {
	r, err := NewRunner(params)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}
