package app

import "time"

// Clock abstracts timer creation so tests can drive the engine and the
// redirect countdown tick by tick.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type systemClock struct{}

// SystemClock returns the wall-clock implementation used outside tests.
func SystemClock() Clock { return systemClock{} }

func (systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (t systemTicker) Chan() <-chan time.Time { return t.t.C }
func (t systemTicker) Stop()                  { t.t.Stop() }
