package sim

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// BatchConfig controls a Monte-Carlo batch of independent runs.
type BatchConfig struct {
	Runs    int `yaml:"runs" json:"runs"`
	Workers int `yaml:"workers" json:"workers"`
}

// DefaultBatchConfig returns a runnable default.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{Runs: 100, Workers: runtime.NumCPU()}
}

// Validate checks the batch settings.
func (c BatchConfig) Validate() error {
	if c.Runs < 1 {
		return fmt.Errorf("%w: batch runs must be >= 1", ErrInvalidParameter)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: batch workers must be >= 0", ErrInvalidParameter)
	}
	return nil
}

// BatchResult aggregates a completed batch. Trajectories are ordered by run
// index, not by completion time.
type BatchResult struct {
	Trajectories []*Trajectory
}

// RunBatch executes cfg.Runs independent simulations of params in parallel.
// Run i uses seed base+i, where a zero base seed is resolved from the wall
// clock once for the whole batch; nothing mutable is shared between runs, so
// the batch is reproducible for a fixed base seed regardless of scheduling.
// The first failing run cancels the rest and its error is returned.
func RunBatch(ctx context.Context, params Parameters, cfg BatchConfig) (*BatchResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := params.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	g, ctx := errgroup.WithContext(ctx)
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g.SetLimit(workers)

	trajectories := make([]*Trajectory, cfg.Runs)
	for i := 0; i < cfg.Runs; i++ {
		i := i
		g.Go(func() error {
			p := params
			p.Seed = base + int64(i)
			traj, err := Run(ctx, p)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			trajectories[i] = traj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &BatchResult{Trajectories: trajectories}, nil
}

// FinalPnLs returns the terminal mark-to-market of each run, in run order.
func (r *BatchResult) FinalPnLs() []float64 {
	out := make([]float64, len(r.Trajectories))
	for i, t := range r.Trajectories {
		out[i] = t.FinalPnL
	}
	return out
}

// MeanEquityCurve averages the equity curves across runs, tick by tick.
func (r *BatchResult) MeanEquityCurve() []float64 {
	if len(r.Trajectories) == 0 {
		return nil
	}
	n := len(r.Trajectories[0].Snapshots)
	out := make([]float64, n)
	for _, t := range r.Trajectories {
		for i, s := range t.Snapshots {
			out[i] += s.Equity
		}
	}
	for i := range out {
		out[i] /= float64(len(r.Trajectories))
	}
	return out
}
