package stream

import (
	"sync"

	"market-sim-go/sim"
)

// Publisher 一个轻量快照分发器，实现 sim.Observer。
// Slow subscribers are dropped-on-full so the tick loop never blocks.
type Publisher struct {
	mu   sync.RWMutex
	subs []chan sim.Snapshot
}

func NewPublisher() *Publisher {
	return &Publisher{subs: make([]chan sim.Snapshot, 0)}
}

// Subscribe returns a buffered channel receiving future snapshots.
func (p *Publisher) Subscribe(buffer int) <-chan sim.Snapshot {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan sim.Snapshot, buffer)
	p.mu.Lock()
	p.subs = append(p.subs, ch)
	p.mu.Unlock()
	return ch
}

// OnSnapshot fans the snapshot out to every subscriber without blocking.
// After Close it is a no-op.
func (p *Publisher) OnSnapshot(s sim.Snapshot) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, ch := range p.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// Close closes every subscriber channel so ranging consumers terminate.
// The publisher must not be handed more snapshots after Close.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subs {
		close(ch)
	}
	p.subs = nil
}
