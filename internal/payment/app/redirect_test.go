package app

import (
	"context"
	"sync"
	"testing"
)

type navRecorder struct {
	mu    sync.Mutex
	ticks []int
	navs  int
}

func (r *navRecorder) onTick(remaining int) {
	r.mu.Lock()
	r.ticks = append(r.ticks, remaining)
	r.mu.Unlock()
}

func (r *navRecorder) navigate() {
	r.mu.Lock()
	r.navs++
	r.mu.Unlock()
}

func (r *navRecorder) navCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.navs
}

func TestCountdownNavigatesOnceAtZero(t *testing.T) {
	clock := newFakeClock()
	rec := &navRecorder{}

	c := StartCountdown(context.Background(), clock, 3, rec.onTick, rec.navigate)

	clock.tick()
	clock.tick()
	clock.tick()
	<-c.Done()

	rec.mu.Lock()
	ticks := append([]int(nil), rec.ticks...)
	rec.mu.Unlock()

	if len(ticks) != 3 || ticks[0] != 2 || ticks[1] != 1 || ticks[2] != 0 {
		t.Fatalf("ticks: got %v", ticks)
	}
	if rec.navCount() != 1 {
		t.Fatalf("navigate fired %d times", rec.navCount())
	}
}

func TestCountdownCancelSuppressesNavigation(t *testing.T) {
	clock := newFakeClock()
	rec := &navRecorder{}

	c := StartCountdown(context.Background(), clock, 5, rec.onTick, rec.navigate)

	clock.tick()
	c.Cancel()
	<-c.Done()

	if rec.navCount() != 0 {
		t.Fatal("navigate must not fire after cancellation")
	}
}

func TestCountdownParentContextCancel(t *testing.T) {
	clock := newFakeClock()
	rec := &navRecorder{}
	ctx, cancel := context.WithCancel(context.Background())

	c := StartCountdown(ctx, clock, 5, rec.onTick, rec.navigate)

	cancel()
	<-c.Done()

	if rec.navCount() != 0 {
		t.Fatal("navigate must not fire after parent cancellation")
	}
}

func TestCountdownZeroSecondsNavigatesImmediately(t *testing.T) {
	clock := newFakeClock()
	rec := &navRecorder{}

	c := StartCountdown(context.Background(), clock, 0, rec.onTick, rec.navigate)
	<-c.Done()

	if rec.navCount() != 1 {
		t.Fatalf("navigate fired %d times", rec.navCount())
	}
}
