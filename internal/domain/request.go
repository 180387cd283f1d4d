package domain

import "time"

// RequestStatus enumerates lifecycle states for service requests.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
)

// Request is the aggregate for customer-submitted problem reports.
//
// Company is denormalized from the customer at creation time and is the
// grouping key for boards and statistics; it is never revalidated against the
// customer's current company. Paid and IsValid are independent flags: payment
// is never reversed by a later invalidation.
type Request struct {
	ID          int64
	CustomerID  int64
	Company     string
	Problem     string
	Status      RequestStatus
	EngineerID  *int64
	Paid        bool
	IsValid     bool
	Price       float64
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// BoardRow is a request as listed on grouped engineer/manager boards.
type BoardRow struct {
	Request
	CustomerEmail string
}

// RequestDetail joins a request with customer and engineer identity for the
// leadership report. Engineer fields are nil while the request is unclaimed.
type RequestDetail struct {
	Request
	CustomerEmail   string
	CustomerCompany string
	EngineerEmail   *string
	EngineerCompany *string
}
