package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/service-desk/internal/aggregate"
	"github.com/spec-kit/service-desk/internal/domain"
	"github.com/spec-kit/service-desk/internal/events"
	"github.com/spec-kit/service-desk/internal/repository"
	apperrors "github.com/spec-kit/service-desk/pkg/util"
)

// RequestService is the lifecycle engine: it validates intents against the
// current row state and the actor's role, mutates the repository, and emits
// events for every accepted transition.
type RequestService struct {
	requests   repository.RequestRepository
	users      repository.UserRepository
	history    repository.HistoryRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// RequestDependencies bundles collaborators for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	UserRepo    repository.UserRepository
	HistoryRepo repository.HistoryRepository
	Dispatcher  events.Dispatcher
}

// Board is a grouped-by-company listing plus its total row count.
type Board struct {
	Groups map[string][]domain.BoardRow
	Total  int
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:   deps.RequestRepo,
		users:      deps.UserRepo,
		history:    deps.HistoryRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// Create inserts a pending request on behalf of a customer.
func (s *RequestService) Create(ctx context.Context, actorID int64, company, problem string) (*domain.Request, error) {
	company = strings.TrimSpace(company)
	problem = strings.TrimSpace(problem)
	if company == "" || problem == "" {
		return nil, apperrors.NewInvalidInput("company and problem are required", nil)
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	if actor.Role != domain.RoleCustomer {
		return nil, apperrors.NewForbidden("only customers can create requests")
	}

	request := &domain.Request{
		CustomerID: actor.ID,
		Company:    company,
		Problem:    problem,
		Status:     domain.StatusPending,
		IsValid:    true,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: request.ID,
		ActorID:   actor.ID,
		Payload: events.RequestCreatedPayload{
			Company: request.Company,
			Problem: request.Problem,
		},
	})
	return request, nil
}

// Take lets an engineer claim a request. Retries by the same engineer succeed;
// a claim on a row held by a different engineer conflicts.
func (s *RequestService) Take(ctx context.Context, requestID, engineerID int64) (*domain.Request, error) {
	var updated domain.Request
	var oldStatus domain.RequestStatus
	err := s.requests.Mutate(ctx, requestID, func(r *domain.Request) error {
		if err := r.ValidateTake(engineerID); err != nil {
			return err
		}
		oldStatus = r.Status
		r.ApplyTake(engineerID)
		updated = *r
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", nil)
		}
		return nil, err
	}

	s.recordChange(ctx, &engineerID, requestID, domain.ChangeTypeStatus,
		map[string]any{"status": oldStatus},
		map[string]any{"status": updated.Status, "engineer_id": engineerID})
	s.publish(ctx, events.Event{
		Type:      events.EventRequestTaken,
		RequestID: requestID,
		ActorID:   engineerID,
		Payload: events.RequestTakenPayload{
			EngineerID: engineerID,
			OldStatus:  oldStatus,
		},
	})
	return &updated, nil
}

// Complete lets the assigned engineer finish an in-progress request.
func (s *RequestService) Complete(ctx context.Context, requestID, engineerID int64) (*domain.Request, error) {
	var updated domain.Request
	var oldStatus domain.RequestStatus
	err := s.requests.Mutate(ctx, requestID, func(r *domain.Request) error {
		if err := r.ValidateComplete(engineerID); err != nil {
			return err
		}
		oldStatus = r.Status
		r.ApplyComplete(s.now())
		updated = *r
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", nil)
		}
		return nil, err
	}

	if oldStatus != updated.Status {
		s.recordChange(ctx, &engineerID, requestID, domain.ChangeTypeStatus,
			map[string]any{"status": oldStatus},
			map[string]any{"status": updated.Status})
		s.publish(ctx, events.Event{
			Type:      events.EventRequestCompleted,
			RequestID: requestID,
			ActorID:   engineerID,
			Payload: events.RequestCompletedPayload{
				EngineerID:  engineerID,
				CompletedAt: *updated.CompletedAt,
			},
		})
	}
	return &updated, nil
}

// Pay marks a request paid on behalf of its owning customer. The repository
// filters by id and owner together, so "absent" and "not yours" are one error.
func (s *RequestService) Pay(ctx context.Context, requestID, customerID int64) (*domain.Request, error) {
	var updated domain.Request
	var alreadyPaid bool
	err := s.requests.MutateOwned(ctx, requestID, customerID, func(r *domain.Request) error {
		if err := r.ValidatePay(); err != nil {
			return err
		}
		alreadyPaid = r.Paid
		r.ApplyPay()
		updated = *r
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", nil)
		}
		return nil, err
	}

	if !alreadyPaid {
		s.recordChange(ctx, &customerID, requestID, domain.ChangeTypePayment,
			map[string]any{"paid": false},
			map[string]any{"paid": true})
		s.publish(ctx, events.Event{
			Type:      events.EventRequestPaid,
			RequestID: requestID,
			ActorID:   customerID,
			Payload: events.RequestPaidPayload{
				CustomerID: customerID,
				Price:      updated.Price,
			},
		})
	}
	return &updated, nil
}

// AdminUpdate applies a manager's overrides to paid, validity, and price.
func (s *RequestService) AdminUpdate(ctx context.Context, requestID, actorID int64, patch domain.AdminPatch) (*domain.Request, error) {
	if patch.Empty() {
		return nil, apperrors.NewInvalidInput("no fields to update", nil)
	}

	var updated domain.Request
	var before domain.Request
	err := s.requests.Mutate(ctx, requestID, func(r *domain.Request) error {
		before = *r
		r.ApplyAdminPatch(patch)
		updated = *r
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", nil)
		}
		return nil, err
	}

	s.recordChange(ctx, &actorID, requestID, domain.ChangeTypeFlags,
		map[string]any{"paid": before.Paid, "is_valid": before.IsValid, "price": before.Price},
		map[string]any{"paid": updated.Paid, "is_valid": updated.IsValid, "price": updated.Price})
	s.publish(ctx, events.Event{
		Type:      events.EventRequestAdjusted,
		RequestID: requestID,
		ActorID:   actorID,
		Payload: events.RequestAdjustedPayload{
			Paid:    patch.Paid,
			IsValid: patch.IsValid,
			Price:   patch.Price,
		},
	})
	return &updated, nil
}

// ListOwn returns the customer's requests, newest first.
func (s *RequestService) ListOwn(ctx context.Context, customerID int64) ([]domain.Request, error) {
	return s.requests.ListByCustomer(ctx, customerID)
}

// EngineerBoard returns valid requests grouped by company.
func (s *RequestService) EngineerBoard(ctx context.Context) (*Board, error) {
	return s.board(ctx, true)
}

// ManagerBoard returns every request grouped by company, validity included.
func (s *RequestService) ManagerBoard(ctx context.Context) (*Board, error) {
	return s.board(ctx, false)
}

func (s *RequestService) board(ctx context.Context, onlyValid bool) (*Board, error) {
	rows, err := s.requests.ListBoard(ctx, onlyValid)
	if err != nil {
		return nil, err
	}
	return &Board{
		Groups: aggregate.GroupByCompany(rows),
		Total:  len(rows),
	}, nil
}

// History returns the audit trail for one request.
func (s *RequestService) History(ctx context.Context, requestID int64) ([]domain.RequestHistory, error) {
	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", nil)
		}
		return nil, err
	}
	return s.history.ListByRequest(ctx, requestID)
}

// recordChange writes an audit entry; failures are deliberately not fatal to
// the triggering operation.
func (s *RequestService) recordChange(ctx context.Context, actorID *int64, requestID int64, changeType domain.RequestChangeType, oldValue, newValue map[string]any) {
	if s.history == nil {
		return
	}
	entry := &domain.RequestHistory{
		RequestID:  requestID,
		ActorID:    actorID,
		ChangeType: changeType,
		OldValue:   oldValue,
		NewValue:   newValue,
	}
	_ = s.history.Create(ctx, entry)
}

func (s *RequestService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
