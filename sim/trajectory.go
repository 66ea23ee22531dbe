package sim

// Snapshot is the per-tick record of a run: the new mid price, the quote
// that was placed against it, the fill outcomes and the resulting state.
type Snapshot struct {
	Step          int     `json:"step"`
	Mid           float64 `json:"mid"`
	BidOffset     float64 `json:"bidOffset"`
	AskOffset     float64 `json:"askOffset"`
	BidFilled     bool    `json:"bidFilled"`
	AskFilled     bool    `json:"askFilled"`
	Inventory     float64 `json:"inventory"`
	Cash          float64 `json:"cash"`
	Equity        float64 `json:"equity"`
	TimeRemaining float64 `json:"timeRemaining"`
}

// Trajectory is the full record of one completed run. It is immutable once
// the runner has finished and is the sole artifact handed to reporting.
type Trajectory struct {
	RunID     string     `json:"runId"`
	Params    Parameters `json:"params"`
	Snapshots []Snapshot `json:"snapshots"`
	// FinalPnL is the terminal mark-to-market: cash + inventory*final mid.
	FinalPnL       float64 `json:"finalPnl"`
	FinalInventory float64 `json:"finalInventory"`
	FinalMid       float64 `json:"finalMid"`
}

// EquityCurve returns the per-tick mark-to-market series.
func (t *Trajectory) EquityCurve() []float64 {
	out := make([]float64, len(t.Snapshots))
	for i, s := range t.Snapshots {
		out[i] = s.Equity
	}
	return out
}

// MidPath returns the per-tick mid prices (excluding the initial price).
func (t *Trajectory) MidPath() []float64 {
	out := make([]float64, len(t.Snapshots))
	for i, s := range t.Snapshots {
		out[i] = s.Mid
	}
	return out
}
