package domain

import "time"

// RequestChangeType captures what changed in a history entry.
type RequestChangeType string

const (
	ChangeTypeStatus  RequestChangeType = "STATUS_CHANGE"
	ChangeTypePayment RequestChangeType = "PAYMENT"
	ChangeTypeFlags   RequestChangeType = "FLAGS_CHANGE"
)

// RequestHistory is an immutable audit trail entry for a request.
// ActorID is nil when the change was applied by the system.
type RequestHistory struct {
	ID         int64
	RequestID  int64
	ActorID    *int64
	ChangeType RequestChangeType
	OldValue   map[string]any
	NewValue   map[string]any
	CreatedAt  time.Time
}
