package app

import (
	"context"
	"time"
)

// Countdown is a cancellable once-per-second countdown that navigates
// away when it reaches zero. The original success view existed in two
// near-identical variants differing only in countdown length, so the
// length is a parameter here.
type Countdown struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (c *Countdown) Cancel() { c.cancel() }

func (c *Countdown) Done() <-chan struct{} { return c.done }

// StartCountdown ticks down from seconds, reporting each remaining value
// through onTick, then calls navigate exactly once. Cancelling the
// countdown (or the parent context) before it completes guarantees
// navigate never fires.
func StartCountdown(ctx context.Context, clock Clock, seconds int, onTick func(remaining int), navigate func()) *Countdown {
	if clock == nil {
		clock = SystemClock()
	}

	ctx, cancel := context.WithCancel(ctx)
	c := &Countdown{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(c.done)
		defer cancel()

		ticker := clock.NewTicker(time.Second)
		defer ticker.Stop()

		remaining := seconds
		for remaining > 0 {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
			}
			remaining--
			if onTick != nil {
				onTick(remaining)
			}
		}

		if ctx.Err() != nil {
			return
		}
		navigate()
	}()

	return c
}
