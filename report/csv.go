package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"market-sim-go/sim"
)

// WriteTrajectoryCSV writes one row per tick. This is the primary artifact
// handed to external plotting tools.
func WriteTrajectoryCSV(path string, t *sim.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"step",
		"mid",
		"bid_offset",
		"ask_offset",
		"bid_filled",
		"ask_filled",
		"inventory",
		"cash",
		"equity",
		"time_remaining",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range t.Snapshots {
		row := []string{
			strconv.Itoa(s.Step),
			fmtFloat(s.Mid),
			fmtFloat(s.BidOffset),
			fmtFloat(s.AskOffset),
			strconv.FormatBool(s.BidFilled),
			strconv.FormatBool(s.AskFilled),
			fmtFloat(s.Inventory),
			fmtFloat(s.Cash),
			fmtFloat(s.Equity),
			fmtFloat(s.TimeRemaining),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// WriteRunSummaryCSV writes one row per run of a batch.
func WriteRunSummaryCSV(path string, sums []RunSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"run_id",
		"steps",
		"final_pnl",
		"final_inventory",
		"final_mid",
		"bid_fills",
		"ask_fills",
		"sharpe",
		"max_drawdown_pct",
		"realized_vol",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range sums {
		row := []string{
			s.RunID,
			strconv.Itoa(s.Steps),
			fmtFloat(s.FinalPnL),
			fmtFloat(s.FinalInventory),
			fmtFloat(s.FinalMid),
			strconv.Itoa(s.BidFills),
			strconv.Itoa(s.AskFills),
			fmtFloat(s.Sharpe),
			fmtFloat(s.MaxDrawdownPct),
			fmtFloat(s.RealizedVol),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
