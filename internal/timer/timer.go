package timer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/rochambeau/internal/common/clock"
)

// Timer counts down whole seconds. It is single use: once started it cannot
// be started again.
type Timer struct {
	seconds int
	clock   clock.Clock

	started  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a countdown from seconds down to 1. A nil clock uses the
// system clock.
func New(seconds int, clk clock.Clock) *Timer {
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	return &Timer{
		seconds: seconds,
		clock:   clk,
		stop:    make(chan struct{}),
	}
}

// Start begins the countdown. The returned channel yields seconds, seconds-1,
// ..., 1 with one second after each value, and is closed when the sequence
// ends, the timer is stopped or ctx is done. Calling Start on a timer that was
// already started returns a closed channel.
func (t *Timer) Start(ctx context.Context) <-chan int {
	ticks := make(chan int)
	if !t.started.CompareAndSwap(false, true) {
		close(ticks)
		return ticks
	}

	go t.run(ctx, ticks)
	return ticks
}

// Stop prevents any further ticks. Safe to call more than once and before Start.
func (t *Timer) Stop() {
	t.stopOnce.Do(func() {
		close(t.stop)
	})
}

// Stopped reports whether Stop has been called
func (t *Timer) Stopped() bool {
	select {
	case <-t.stop:
		return true
	default:
		return false
	}
}

func (t *Timer) run(ctx context.Context, ticks chan<- int) {
	defer close(ticks)

	for remaining := t.seconds; remaining > 0; remaining-- {
		if t.Stopped() {
			return
		}

		select {
		case ticks <- remaining:
		case <-t.stop:
			return
		case <-ctx.Done():
			return
		}

		if t.Stopped() {
			return
		}

		select {
		case <-t.clock.After(time.Second):
		case <-t.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}
