package dto

import (
	"time"

	"github.com/spec-kit/service-desk/internal/aggregate"
	"github.com/spec-kit/service-desk/internal/domain"
	"github.com/spec-kit/service-desk/internal/service"
)

// StatusCount is one status bucket in the valid-only rollup.
type StatusCount struct {
	Status domain.RequestStatus `json:"status"`
	Count  int                  `json:"count"`
}

// PartyRef identifies a customer or engineer in the detail listing.
type PartyRef struct {
	Email   string `json:"email"`
	Company string `json:"company"`
}

// RequestDetailItem is one row of the leadership detail listing.
type RequestDetailItem struct {
	ID          int64                `json:"id"`
	Company     string               `json:"company"`
	Problem     string               `json:"problem"`
	Status      domain.RequestStatus `json:"status"`
	Paid        bool                 `json:"paid"`
	IsValid     bool                 `json:"is_valid"`
	Price       float64              `json:"price"`
	CreatedAt   time.Time            `json:"created_at"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
	Customer    *PartyRef            `json:"customer,omitempty"`
	Engineer    *PartyRef            `json:"engineer,omitempty"`
}

// StatisticsResponse is the full leadership bundle.
type StatisticsResponse struct {
	TotalRequests      int                       `json:"total_requests"`
	PendingRequests    int                       `json:"pending_requests"`
	InProgressRequests int                       `json:"in_progress_requests"`
	CompletedRequests  int                       `json:"completed_requests"`
	TotalProfit        float64                   `json:"total_profit"`
	MonthlyStats       []aggregate.MonthlyBucket `json:"monthly_stats"`
	StatusStats        []StatusCount             `json:"status_stats"`
	Details            []RequestDetailItem       `json:"details"`
}

// statusOrder keeps the valid-only rollup deterministic in responses.
var statusOrder = []domain.RequestStatus{
	domain.StatusPending,
	domain.StatusInProgress,
	domain.StatusCompleted,
}

// StatisticsFromBundle maps the service bundle to the response payload.
func StatisticsFromBundle(bundle *service.StatisticsBundle) StatisticsResponse {
	statusStats := make([]StatusCount, 0, len(bundle.ByStatus))
	for _, status := range statusOrder {
		if count, ok := bundle.ByStatus[status]; ok {
			statusStats = append(statusStats, StatusCount{Status: status, Count: count})
		}
	}

	details := make([]RequestDetailItem, 0, len(bundle.Details))
	for i := range bundle.Details {
		details = append(details, detailItemFromDomain(&bundle.Details[i]))
	}

	monthly := bundle.Monthly
	if monthly == nil {
		monthly = []aggregate.MonthlyBucket{}
	}

	return StatisticsResponse{
		TotalRequests:      bundle.Totals.Total,
		PendingRequests:    bundle.Totals.Pending,
		InProgressRequests: bundle.Totals.InProgress,
		CompletedRequests:  bundle.Totals.Completed,
		TotalProfit:        bundle.ProfitTotal,
		MonthlyStats:       monthly,
		StatusStats:        statusStats,
		Details:            details,
	}
}

func detailItemFromDomain(detail *domain.RequestDetail) RequestDetailItem {
	item := RequestDetailItem{
		ID:          detail.ID,
		Company:     detail.Company,
		Problem:     detail.Problem,
		Status:      detail.Status,
		Paid:        detail.Paid,
		IsValid:     detail.IsValid,
		Price:       detail.Price,
		CreatedAt:   detail.CreatedAt,
		CompletedAt: detail.CompletedAt,
	}
	if detail.CustomerEmail != "" {
		item.Customer = &PartyRef{Email: detail.CustomerEmail, Company: detail.CustomerCompany}
	}
	if detail.EngineerEmail != nil {
		engineer := &PartyRef{Email: *detail.EngineerEmail}
		if detail.EngineerCompany != nil {
			engineer.Company = *detail.EngineerCompany
		}
		item.Engineer = engineer
	}
	return item
}
