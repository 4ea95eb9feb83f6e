package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/neeste/storefront/internal/payment/domain"
)

const (
	DefaultPollInterval = 3 * time.Second
	DefaultMaxAttempts  = 60
)

// Config bounds a confirmation run. The interval is constant: with the
// defaults the engine gives up after 60 polls, a three minute budget.
type Config struct {
	Interval    time.Duration
	MaxAttempts int
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultPollInterval
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	return c
}

// StatusClient queries the payment status for a gateway reference.
type StatusClient interface {
	Status(ctx context.Context, referenceID string) (domain.Status, error)
}

// CartClearer empties the cart once the payment is confirmed. The engine
// is the only non-user writer of the cart, and only on the single
// SUCCESSFUL transition.
type CartClearer interface {
	Clear(ctx context.Context) error
}

// Hooks are invoked from the engine's polling goroutine. Either or both
// may be nil.
type Hooks struct {
	OnUpdate   func(domain.Snapshot)
	OnTerminal func(domain.Result)
}

// Engine owns the post-initiation payment lifecycle: it polls the status
// endpoint on a fixed cadence, classifies terminal responses and stops at
// the attempt bound.
type Engine struct {
	gateway StatusClient
	cart    CartClearer
	clock   Clock
	cfg     Config
	log     *slog.Logger
}

func NewEngine(gateway StatusClient, cart CartClearer, cfg Config, clock Clock, log *slog.Logger) *Engine {
	if clock == nil {
		clock = SystemClock()
	}
	if log == nil {
		log = slog.Default()
	}

	return &Engine{
		gateway: gateway,
		cart:    cart,
		clock:   clock,
		cfg:     cfg.withDefaults(),
		log:     log,
	}
}

// Session is the cancellation handle for one confirmation run. After
// Cancel returns, the engine fires no further hooks and mutates nothing,
// even if a poll response is still in flight.
type Session struct {
	cancel context.CancelFunc

	mu     sync.Mutex
	result *domain.Result
	done   chan struct{}
}

func (s *Session) Cancel() { s.cancel() }

// Done is closed once the run has ended, terminally or by cancellation.
func (s *Session) Done() <-chan struct{} { return s.done }

// Result reports the terminal outcome. ok is false while the run is live
// or when it was cancelled before reaching a terminal state.
func (s *Session) Result() (domain.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		return domain.Result{}, false
	}
	return *s.result, true
}

func (s *Session) finish(r domain.Result) {
	s.mu.Lock()
	s.result = &r
	s.mu.Unlock()
}

// Start begins polling for the given gateway reference and returns the
// session handle. The owning view must Cancel it on teardown.
func (e *Engine) Start(ctx context.Context, referenceID string, hooks Hooks) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{cancel: cancel, done: make(chan struct{})}

	go e.run(ctx, referenceID, hooks, s)
	return s
}

func (e *Engine) run(ctx context.Context, referenceID string, hooks Hooks, s *Session) {
	defer close(s.done)
	defer s.cancel()

	ticker := e.clock.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	polls := 0
	for polls < e.cfg.MaxAttempts {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		}
		polls++

		status, err := e.gateway.Status(ctx, referenceID)

		// A response that races cancellation is discarded: once the
		// session is cancelled no state changes and no hooks fire.
		if ctx.Err() != nil {
			return
		}

		if err != nil {
			// Transient: swallowed and retried on the next tick. It
			// still counts toward the bound, surfacing only as the
			// overall timeout.
			e.log.Debug("status poll failed",
				slog.String("reference_id", referenceID),
				slog.Int("poll", polls),
				slog.Any("err", err))
			continue
		}

		switch evaluate(status) {
		case domain.StateSuccessful:
			e.clearCart(ctx, referenceID)
			e.finish(hooks, s, domain.Result{
				State:         domain.StateSuccessful,
				MomoStatus:    status.MomoStatus,
				Polls:         polls,
				DownloadLinks: status.DownloadLinks,
			})
			return
		case domain.StateFailed:
			e.finish(hooks, s, domain.Result{
				State:      domain.StateFailed,
				MomoStatus: status.MomoStatus,
				Polls:      polls,
			})
			return
		default:
			if hooks.OnUpdate != nil {
				hooks.OnUpdate(domain.Snapshot{
					State:      domain.StatePending,
					MomoStatus: displayStatus(status.MomoStatus),
					Polls:      polls,
				})
			}
		}
	}

	// The gateway never produced a terminal answer within the budget.
	// The true outcome is unknown, which is why this is not FAILED.
	e.finish(hooks, s, domain.Result{State: domain.StateTimedOut, Polls: polls})
}

// evaluate classifies one polled status. The order status wins over the
// gateway status: the backend may reconcile via webhook before the
// gateway's polled status turns terminal.
func evaluate(st domain.Status) domain.State {
	switch {
	case st.OrderStatus == domain.OrderStatusPaid:
		return domain.StateSuccessful
	case st.MomoStatus == domain.MomoStatusFailed:
		return domain.StateFailed
	default:
		return domain.StatePending
	}
}

func (e *Engine) finish(hooks Hooks, s *Session, r domain.Result) {
	s.finish(r)
	e.log.Info("confirmation finished",
		slog.String("state", string(r.State)),
		slog.Int("polls", r.Polls))
	if hooks.OnTerminal != nil {
		hooks.OnTerminal(r)
	}
}

func (e *Engine) clearCart(ctx context.Context, referenceID string) {
	if e.cart == nil {
		return
	}
	// The payment is confirmed; a cart-clear failure must not turn the
	// success into anything else.
	if err := e.cart.Clear(ctx); err != nil {
		e.log.Error("cart clear after payment failed",
			slog.String("reference_id", referenceID),
			slog.Any("err", err))
	}
}

func displayStatus(momoStatus string) string {
	if momoStatus == "" {
		return "Processing"
	}
	return momoStatus
}
