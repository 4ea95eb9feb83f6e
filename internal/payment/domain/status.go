package domain

import "time"

// State is the confirmation engine's observable state. SUCCESSFUL, FAILED
// and TIMED_OUT are terminal: the engine never leaves them without a new
// checkout attempt.
type State string

const (
	StatePending    State = "PENDING"
	StateSuccessful State = "SUCCESSFUL"
	StateFailed     State = "FAILED"
	StateTimedOut   State = "TIMED_OUT"
)

func (s State) Terminal() bool {
	return s == StateSuccessful || s == StateFailed || s == StateTimedOut
}

// Message is the user-facing line for a state. TIMED_OUT deliberately does
// not claim the payment failed; the outcome is unknown and the backend
// stays authoritative.
func (s State) Message() string {
	switch s {
	case StateSuccessful:
		return "Payment successful!"
	case StateFailed:
		return "Payment failed. Please try again."
	case StateTimedOut:
		return "Payment is taking longer than expected. Check your order status later."
	default:
		return "Waiting for payment confirmation..."
	}
}

// Order statuses reported by the backend. PAID is the success authority:
// the backend may have reconciled via webhook before the gateway's own
// polled status catches up.
const OrderStatusPaid = "PAID"

// Gateway statuses are observed as raw strings; only FAILED is terminal
// on its own.
const MomoStatusFailed = "FAILED"

type DownloadLink struct {
	Product string
	URL     string
}

// Status is one polled snapshot of the payment from the backend. The
// client never owns this data, it only observes it.
type Status struct {
	MomoStatus    string
	OrderStatus   string
	DownloadLinks []DownloadLink
}

// Attempt is the session-scoped record of one confirmation run. It is
// never persisted; a reload starts confirmation tracking from zero.
type Attempt struct {
	ReferenceID string
	MSISDN      string
	CreatedAt   time.Time
	Polls       int
}

// Snapshot is handed to the UI on every non-terminal tick.
type Snapshot struct {
	State      State
	MomoStatus string
	Polls      int
}

// Result is the terminal outcome of a confirmation run.
type Result struct {
	State         State
	MomoStatus    string
	Polls         int
	DownloadLinks []DownloadLink
}
