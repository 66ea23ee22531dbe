package account

import "sync"

// Tracker 维护单次模拟中做市商的仓位与现金。
// Positive inventory = long. Cash accumulates sale proceeds net of purchases.
type Tracker struct {
	mu        sync.RWMutex
	inventory float64
	cash      float64
}

// ApplyBidFill records a buy: inventory up, cash down by price*size.
func (t *Tracker) ApplyBidFill(price, size float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inventory += size
	t.cash -= price * size
}

// ApplyAskFill records a sell: inventory down, cash up by price*size.
func (t *Tracker) ApplyAskFill(price, size float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inventory -= size
	t.cash += price * size
}

// NetExposure returns the signed inventory.
func (t *Tracker) NetExposure() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.inventory
}

// Cash returns the accumulated cash balance.
func (t *Tracker) Cash() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cash
}

// Equity marks the position to mid: cash + inventory*mid.
func (t *Tracker) Equity(mid float64) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cash + t.inventory*mid
}
