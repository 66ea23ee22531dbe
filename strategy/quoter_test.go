package strategy

import (
	"math"
	"testing"
)

func TestNewQuoter_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{RiskAversion: 0.1, DecayConstant: 1.5, Volatility: 2}, wantErr: false},
		{name: "zero gamma", cfg: Config{RiskAversion: 0, DecayConstant: 1, Volatility: 2}, wantErr: false},
		{name: "negative gamma", cfg: Config{RiskAversion: -0.1, DecayConstant: 1, Volatility: 2}, wantErr: true},
		{name: "zero decay", cfg: Config{RiskAversion: 0.1, DecayConstant: 0, Volatility: 2}, wantErr: true},
		{name: "negative decay", cfg: Config{RiskAversion: 0.1, DecayConstant: -1, Volatility: 2}, wantErr: true},
		{name: "negative volatility", cfg: Config{RiskAversion: 0.1, DecayConstant: 1, Volatility: -2}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuoter(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewQuoter() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReservationPrice_InventorySkew(t *testing.T) {
	q, err := NewQuoter(Config{RiskAversion: 0.5, DecayConstant: 1.5, Volatility: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mid := 100.0
	flat := q.ReservationPrice(mid, 0, 1)
	long := q.ReservationPrice(mid, 3, 1)
	short := q.ReservationPrice(mid, -3, 1)

	if flat != mid {
		t.Errorf("flat reservation = %v, want mid %v", flat, mid)
	}
	if long >= mid {
		t.Errorf("long reservation = %v, want below mid to favor ask fills", long)
	}
	if short <= mid {
		t.Errorf("short reservation = %v, want above mid to favor bid fills", short)
	}
	// reservation = mid - q*gamma*sigma^2*timeLeft = 100 - 3*0.5*4*1
	if want := 100 - 3*0.5*4*1.0; long != want {
		t.Errorf("long reservation = %v, want %v", long, want)
	}
}

func TestHalfSpread_ClosedForm(t *testing.T) {
	gamma, k, sigma := 0.1, 1.5, 2.0
	q, _ := NewQuoter(Config{RiskAversion: gamma, DecayConstant: k, Volatility: sigma})

	timeLeft := 0.7
	want := gamma*sigma*sigma*timeLeft/2 + math.Log(1+gamma/k)/gamma
	if got := q.HalfSpread(timeLeft); math.Abs(got-want) > 1e-12 {
		t.Fatalf("HalfSpread(%v) = %v, want %v", timeLeft, got, want)
	}
}

func TestHalfSpread_ZeroGammaUsesLimit(t *testing.T) {
	// gamma -> 0 limit of ln(1+gamma/k)/gamma is 1/k; the variance term
	// vanishes, leaving a fixed spread.
	q, _ := NewQuoter(Config{RiskAversion: 0, DecayConstant: 2, Volatility: 5})
	for _, timeLeft := range []float64{0, 0.5, 1} {
		if got := q.HalfSpread(timeLeft); got != 0.5 {
			t.Fatalf("HalfSpread(%v) = %v, want 1/k = 0.5", timeLeft, got)
		}
	}
}

func TestQuoteAt_SymmetricAtZeroInventory(t *testing.T) {
	q, _ := NewQuoter(Config{RiskAversion: 0.1, DecayConstant: 1.5, Volatility: 2})
	quote := q.QuoteAt(100, 0, 1)
	if quote.BidOffset != quote.AskOffset {
		t.Fatalf("flat-inventory quote not symmetric: bid=%v ask=%v", quote.BidOffset, quote.AskOffset)
	}
	if quote.BidOffset <= 0 {
		t.Fatalf("expected positive offsets, got %v", quote.BidOffset)
	}
}

func TestQuoteAt_OffsetsNeverNegative(t *testing.T) {
	// Extreme inventory pushes the raw bid through mid; the offset must be
	// floored at zero instead of going negative.
	q, _ := NewQuoter(Config{RiskAversion: 1, DecayConstant: 1.5, Volatility: 3})
	for _, inv := range []float64{-1000, -10, 0, 10, 1000} {
		quote := q.QuoteAt(100, inv, 1)
		if quote.BidOffset < 0 || quote.AskOffset < 0 {
			t.Fatalf("inventory %v produced negative offset: %+v", inv, quote)
		}
	}
}

func TestQuoteAt_SkewDirection(t *testing.T) {
	q, _ := NewQuoter(Config{RiskAversion: 0.2, DecayConstant: 1.5, Volatility: 2})
	long := q.QuoteAt(100, 5, 1)
	// Long inventory: both quotes shift down, so the bid moves further from
	// mid and the ask moves closer.
	flat := q.QuoteAt(100, 0, 1)
	if long.BidOffset <= flat.BidOffset {
		t.Errorf("long bid offset %v, want further than flat %v", long.BidOffset, flat.BidOffset)
	}
	if long.AskOffset >= flat.AskOffset {
		t.Errorf("long ask offset %v, want closer than flat %v", long.AskOffset, flat.AskOffset)
	}
}
