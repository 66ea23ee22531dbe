// Package report turns completed trajectories into summary statistics and
// on-disk artifacts for external plotting and analysis.
package report

import (
	"math"

	"market-sim-go/sim"
)

// SeriesStats are descriptive statistics of one series.
type SeriesStats struct {
	Min            float64
	Max            float64
	Mean           float64
	Std            float64
	MaxDrawdownPct float64
}

// ComputeSeriesStats scans a series once for min/max/mean/std and the peak
// drawdown in percent.
func ComputeSeriesStats(series []float64) SeriesStats {
	if len(series) == 0 {
		return SeriesStats{}
	}
	min, max := series[0], series[0]
	sum := 0.0
	peak := series[0]
	maxDD := 0.0
	for _, v := range series {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
		if v > peak {
			peak = v
		}
		if peak != 0 {
			dd := (peak - v) / peak * 100
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	mean := sum / float64(len(series))
	variance := 0.0
	for _, v := range series {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(series))
	return SeriesStats{
		Min:            min,
		Max:            max,
		Mean:           mean,
		Std:            math.Sqrt(variance),
		MaxDrawdownPct: maxDD,
	}
}

// SharpeRatio is mean/std of a return series with zero risk-free rate.
// Empty or constant series yield 0 rather than an error: a flat equity
// curve is a legitimate simulation outcome, not a failure.
func SharpeRatio(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		diff := r - mean
		variance += diff * diff
	}
	variance /= float64(len(returns))
	if variance == 0 {
		return 0
	}
	return mean / math.Sqrt(variance)
}

// Diffs returns the first differences of a series.
func Diffs(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	out := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		out[i-1] = series[i] - series[i-1]
	}
	return out
}

// RealizedVol is the std of log returns of a positive price series.
func RealizedVol(prices []float64) float64 {
	logReturns := make([]float64, 0, len(prices))
	for i := 1; i < len(prices); i++ {
		if prices[i-1] > 0 && prices[i] > 0 {
			logReturns = append(logReturns, math.Log(prices[i]/prices[i-1]))
		}
	}
	if len(logReturns) == 0 {
		return 0
	}
	mean := 0.0
	for _, r := range logReturns {
		mean += r
	}
	mean /= float64(len(logReturns))
	variance := 0.0
	for _, r := range logReturns {
		diff := r - mean
		variance += diff * diff
	}
	variance /= float64(len(logReturns))
	return math.Sqrt(variance)
}

// RunSummary condenses one trajectory.
type RunSummary struct {
	RunID          string
	Steps          int
	FinalPnL       float64
	FinalInventory float64
	FinalMid       float64
	BidFills       int
	AskFills       int
	Sharpe         float64
	MaxDrawdownPct float64
	RealizedVol    float64
}

// Summarize computes the per-run summary from a completed trajectory.
func Summarize(t *sim.Trajectory) RunSummary {
	bidFills, askFills := 0, 0
	for _, s := range t.Snapshots {
		if s.BidFilled {
			bidFills++
		}
		if s.AskFilled {
			askFills++
		}
	}
	equity := t.EquityCurve()
	return RunSummary{
		RunID:          t.RunID,
		Steps:          len(t.Snapshots),
		FinalPnL:       t.FinalPnL,
		FinalInventory: t.FinalInventory,
		FinalMid:       t.FinalMid,
		BidFills:       bidFills,
		AskFills:       askFills,
		Sharpe:         SharpeRatio(Diffs(equity)),
		MaxDrawdownPct: ComputeSeriesStats(equity).MaxDrawdownPct,
		RealizedVol:    RealizedVol(t.MidPath()),
	}
}

// BatchSummary condenses a Monte-Carlo batch.
type BatchSummary struct {
	Runs          int
	MeanPnL       float64
	StdPnL        float64
	WorstPnL      float64
	BestPnL       float64
	MeanInventory float64
}

// SummarizeBatch aggregates the terminal state of a batch.
func SummarizeBatch(r *sim.BatchResult) BatchSummary {
	pnls := r.FinalPnLs()
	stats := ComputeSeriesStats(pnls)
	meanInv := 0.0
	for _, t := range r.Trajectories {
		meanInv += t.FinalInventory
	}
	if len(r.Trajectories) > 0 {
		meanInv /= float64(len(r.Trajectories))
	}
	return BatchSummary{
		Runs:          len(pnls),
		MeanPnL:       stats.Mean,
		StdPnL:        stats.Std,
		WorstPnL:      stats.Min,
		BestPnL:       stats.Max,
		MeanInventory: meanInv,
	}
}
