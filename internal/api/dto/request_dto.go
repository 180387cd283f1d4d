package dto

import (
	"time"

	"github.com/spec-kit/service-desk/internal/domain"
)

// CreateRequestRequest payload for customer request creation.
type CreateRequestRequest struct {
	Company string `json:"company" validate:"required"`
	Problem string `json:"problem" validate:"required"`
}

// AdminUpdateRequest payload for the manager override. All fields optional;
// at least one must be present (enforced by the service).
type AdminUpdateRequest struct {
	Paid    *bool    `json:"paid"`
	IsValid *bool    `json:"is_valid"`
	Price   *float64 `json:"price"`
}

// RequestSummary is the customer-facing request payload.
type RequestSummary struct {
	ID          int64                `json:"id"`
	Company     string               `json:"company"`
	Problem     string               `json:"problem"`
	Status      domain.RequestStatus `json:"status"`
	Paid        bool                 `json:"paid"`
	IsValid     bool                 `json:"is_valid"`
	CreatedAt   time.Time            `json:"created_at"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
}

// BoardItem is one request on the engineer board. Validity is implied (the
// engineer board only lists valid rows), payment is withheld.
type BoardItem struct {
	ID            int64                `json:"id"`
	Problem       string               `json:"problem"`
	Status        domain.RequestStatus `json:"status"`
	EngineerID    *int64               `json:"engineer_id"`
	CreatedAt     time.Time            `json:"created_at"`
	CustomerEmail string               `json:"customer_email"`
}

// ManagerBoardItem extends the board item with paid and validity flags.
type ManagerBoardItem struct {
	BoardItem
	Paid    bool    `json:"paid"`
	IsValid bool    `json:"is_valid"`
	Price   float64 `json:"price"`
}

// BoardResponse is a grouped-by-company listing plus total.
type BoardResponse[T any] struct {
	Requests map[string][]T `json:"requests"`
	Total    int            `json:"total_requests"`
}

// HistoryEntry is one audit record for a request.
type HistoryEntry struct {
	ID         int64                    `json:"id"`
	ActorID    *int64                   `json:"actor_id"`
	ChangeType domain.RequestChangeType `json:"change_type"`
	OldValue   map[string]any           `json:"old_value"`
	NewValue   map[string]any           `json:"new_value"`
	CreatedAt  time.Time                `json:"created_at"`
}

// RequestSummaryFromDomain maps a request to its customer payload.
func RequestSummaryFromDomain(request *domain.Request) RequestSummary {
	return RequestSummary{
		ID:          request.ID,
		Company:     request.Company,
		Problem:     request.Problem,
		Status:      request.Status,
		Paid:        request.Paid,
		IsValid:     request.IsValid,
		CreatedAt:   request.CreatedAt,
		CompletedAt: request.CompletedAt,
	}
}

// BoardItemFromDomain maps a board row to the engineer payload.
func BoardItemFromDomain(row *domain.BoardRow) BoardItem {
	return BoardItem{
		ID:            row.ID,
		Problem:       row.Problem,
		Status:        row.Status,
		EngineerID:    row.EngineerID,
		CreatedAt:     row.CreatedAt,
		CustomerEmail: row.CustomerEmail,
	}
}

// ManagerBoardItemFromDomain maps a board row to the manager payload.
func ManagerBoardItemFromDomain(row *domain.BoardRow) ManagerBoardItem {
	return ManagerBoardItem{
		BoardItem: BoardItemFromDomain(row),
		Paid:      row.Paid,
		IsValid:   row.IsValid,
		Price:     row.Price,
	}
}

// HistoryEntryFromDomain maps an audit record.
func HistoryEntryFromDomain(entry *domain.RequestHistory) HistoryEntry {
	return HistoryEntry{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		ChangeType: entry.ChangeType,
		OldValue:   entry.OldValue,
		NewValue:   entry.NewValue,
		CreatedAt:  entry.CreatedAt,
	}
}
