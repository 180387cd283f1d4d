package events

import (
	"time"

	"github.com/spec-kit/service-desk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated   EventType = "request_created"
	EventRequestTaken     EventType = "request_taken"
	EventRequestCompleted EventType = "request_completed"
	EventRequestPaid      EventType = "request_paid"
	EventRequestAdjusted  EventType = "request_adjusted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	RequestID int64     `json:"request_id"`
	ActorID   int64     `json:"actor_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	Company string `json:"company"`
	Problem string `json:"problem"`
}

// RequestTakenPayload payload.
type RequestTakenPayload struct {
	EngineerID int64                `json:"engineer_id"`
	OldStatus  domain.RequestStatus `json:"old_status"`
}

// RequestCompletedPayload payload.
type RequestCompletedPayload struct {
	EngineerID  int64     `json:"engineer_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// RequestPaidPayload payload.
type RequestPaidPayload struct {
	CustomerID int64   `json:"customer_id"`
	Price      float64 `json:"price"`
}

// RequestAdjustedPayload captures the manager's administrative override.
type RequestAdjustedPayload struct {
	Paid    *bool    `json:"paid,omitempty"`
	IsValid *bool    `json:"is_valid,omitempty"`
	Price   *float64 `json:"price,omitempty"`
}
