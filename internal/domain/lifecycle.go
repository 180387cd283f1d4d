package domain

import (
	"time"

	apperrors "github.com/spec-kit/service-desk/pkg/util"
)

// allowedTransitions is the request state machine. Take is deliberately more
// tolerant than the table: a repeated Take by the assigned engineer re-enters
// in_progress from any state so that client retries stay safe.
var allowedTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:    {StatusInProgress},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
}

// CanTransition reports whether the state machine permits current -> next.
func CanTransition(current, next RequestStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ValidateTake checks whether the engineer may claim the request.
// Invalidated requests are frozen; a request held by a different engineer
// yields a conflict. A repeat call by the holder passes.
func (r *Request) ValidateTake(engineerID int64) error {
	if !r.IsValid {
		return apperrors.NewInvalidInput("cannot take an invalid request", nil)
	}
	if r.EngineerID != nil && *r.EngineerID != engineerID {
		return apperrors.NewConflict("request already taken by another engineer", map[string]any{
			"engineer_id": *r.EngineerID,
		})
	}
	return nil
}

// ApplyTake assigns the engineer and moves the request to in_progress.
// Unconditional on current status to tolerate retried Take calls.
func (r *Request) ApplyTake(engineerID int64) {
	r.EngineerID = &engineerID
	r.Status = StatusInProgress
}

// ValidatePay checks whether the owning customer may pay for the request.
// Ownership itself is enforced by the repository query, not here.
func (r *Request) ValidatePay() error {
	if !r.IsValid {
		return apperrors.NewInvalidInput("cannot pay for an invalid request", nil)
	}
	return nil
}

// ApplyPay marks the request paid. Status is untouched and re-paying is a
// no-op; payment is never reversed.
func (r *Request) ApplyPay() {
	r.Paid = true
}

// ValidateComplete checks whether the engineer may finish the request.
// Only the assigned engineer may complete, and only out of in_progress;
// a repeat call by the same engineer on a completed request passes.
func (r *Request) ValidateComplete(engineerID int64) error {
	if !r.IsValid {
		return apperrors.NewInvalidInput("cannot complete an invalid request", nil)
	}
	if r.EngineerID == nil || *r.EngineerID != engineerID {
		return apperrors.NewForbidden("request is not assigned to you")
	}
	if r.Status == StatusCompleted {
		return nil
	}
	if !CanTransition(r.Status, StatusCompleted) {
		return apperrors.NewInvalidInput("request is not in progress", map[string]any{
			"status": r.Status,
		})
	}
	return nil
}

// ApplyComplete moves the request to completed and stamps CompletedAt once.
func (r *Request) ApplyComplete(now time.Time) {
	if r.Status == StatusCompleted {
		return
	}
	r.Status = StatusCompleted
	r.CompletedAt = &now
}

// AdminPatch carries the manager's administrative overrides. Fields left nil
// are untouched. No cross-field validation happens on this path: it may, for
// example, mark an invalid request paid, which the Pay operation never would.
type AdminPatch struct {
	Paid    *bool
	IsValid *bool
	Price   *float64
}

// Empty reports whether the patch changes nothing.
func (p AdminPatch) Empty() bool {
	return p.Paid == nil && p.IsValid == nil && p.Price == nil
}

// ApplyAdminPatch applies present fields independently.
func (r *Request) ApplyAdminPatch(patch AdminPatch) {
	if patch.Paid != nil {
		r.Paid = *patch.Paid
	}
	if patch.IsValid != nil {
		r.IsValid = *patch.IsValid
	}
	if patch.Price != nil {
		r.Price = *patch.Price
	}
}
