package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-sim-go/sim"
)

func TestPublisher_FanOut(t *testing.T) {
	p := NewPublisher()
	a := p.Subscribe(4)
	b := p.Subscribe(4)

	p.OnSnapshot(sim.Snapshot{Step: 1, Mid: 100})
	p.OnSnapshot(sim.Snapshot{Step: 2, Mid: 101})

	for _, ch := range []<-chan sim.Snapshot{a, b} {
		require.Len(t, ch, 2)
		s := <-ch
		assert.Equal(t, 1, s.Step)
		s = <-ch
		assert.Equal(t, 2, s.Step)
	}
}

func TestPublisher_SlowSubscriberNeverBlocks(t *testing.T) {
	p := NewPublisher()
	slow := p.Subscribe(1)

	// Far more snapshots than the buffer holds; OnSnapshot must not block.
	for i := 0; i < 100; i++ {
		p.OnSnapshot(sim.Snapshot{Step: i})
	}

	// Only the first snapshot fit; the rest were dropped.
	require.Len(t, slow, 1)
	s := <-slow
	assert.Equal(t, 0, s.Step)
}

func TestPublisher_CloseReleasesSubscribers(t *testing.T) {
	p := NewPublisher()
	sub := p.Subscribe(4)

	done := make(chan struct{})
	go func() {
		for range sub {
		}
		close(done)
	}()

	p.OnSnapshot(sim.Snapshot{Step: 1})
	p.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ranging subscriber still blocked after Close")
	}

	// Snapshots after Close are dropped, never sent on a closed channel.
	p.OnSnapshot(sim.Snapshot{Step: 2})
}

func TestPublisher_MinimumBuffer(t *testing.T) {
	p := NewPublisher()
	ch := p.Subscribe(0)
	p.OnSnapshot(sim.Snapshot{Step: 9})
	require.Len(t, ch, 1)
}
