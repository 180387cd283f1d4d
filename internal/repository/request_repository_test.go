package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/service-desk/internal/domain"
	"github.com/spec-kit/service-desk/internal/repository"
)

var requestCols = []string{
	"id", "customer_id", "company", "problem", "status", "engineer_id",
	"paid", "is_valid", "price", "created_at", "completed_at",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRequestRepositoryCreate(t *testing.T) {
	mock := newMock(t)
	repo := repository.NewRequestRepository(mock)

	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO requests").
		WithArgs(int64(7), "acme", "printer on fire", domain.StatusPending,
			pgxmock.AnyArg(), false, true, float64(0)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), created))

	request := &domain.Request{
		CustomerID: 7,
		Company:    "acme",
		Problem:    "printer on fire",
		Status:     domain.StatusPending,
		IsValid:    true,
	}
	require.NoError(t, repo.Create(context.Background(), request))
	assert.Equal(t, int64(1), request.ID)
	assert.Equal(t, created, request.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryGetByID(t *testing.T) {
	mock := newMock(t)
	repo := repository.NewRequestRepository(mock)

	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM requests WHERE id=").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(requestCols).
			AddRow(int64(1), int64(7), "acme", "printer on fire", domain.StatusPending,
				nil, false, true, float64(0), created, nil))

	request, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), request.CustomerID)
	assert.Equal(t, domain.StatusPending, request.Status)
	assert.Nil(t, request.EngineerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryGetByIDNotFound(t *testing.T) {
	mock := newMock(t)
	repo := repository.NewRequestRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM requests WHERE id=").
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryMutate(t *testing.T) {
	mock := newMock(t)
	repo := repository.NewRequestRepository(mock)

	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM requests WHERE id=(.+) FOR UPDATE").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(requestCols).
			AddRow(int64(1), int64(7), "acme", "printer on fire", domain.StatusPending,
				nil, false, true, float64(0), created, nil))
	mock.ExpectExec("UPDATE requests").
		WithArgs(domain.StatusInProgress, pgxmock.AnyArg(), false, true, float64(0),
			pgxmock.AnyArg(), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.Mutate(context.Background(), 1, func(r *domain.Request) error {
		r.ApplyTake(3)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryMutateRollsBackOnCallbackError(t *testing.T) {
	mock := newMock(t)
	repo := repository.NewRequestRepository(mock)

	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM requests WHERE id=(.+) FOR UPDATE").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(requestCols).
			AddRow(int64(1), int64(7), "acme", "printer on fire", domain.StatusPending,
				nil, false, true, float64(0), created, nil))
	mock.ExpectRollback()

	sentinel := errors.New("validation failed")
	err := repo.Mutate(context.Background(), 1, func(*domain.Request) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryMutateOwnedNotFound(t *testing.T) {
	mock := newMock(t)
	repo := repository.NewRequestRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM requests WHERE id=(.+) AND customer_id=(.+) FOR UPDATE").
		WithArgs(int64(1), int64(99)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := repo.MutateOwned(context.Background(), 1, 99, func(*domain.Request) error {
		t.Fatal("callback must not run for a missing row")
		return nil
	})
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryListBoard(t *testing.T) {
	mock := newMock(t)
	repo := repository.NewRequestRepository(mock)

	boardCols := append(append([]string{}, requestCols...), "email")
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)SELECT .+ FROM requests r.+JOIN users u ON .+WHERE r\.is_valid`).
		WillReturnRows(pgxmock.NewRows(boardCols).
			AddRow(int64(1), int64(7), "acme", "printer on fire", domain.StatusPending,
				nil, false, true, float64(0), created, nil, "ivan@acme.test"))

	rows, err := repo.ListBoard(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ivan@acme.test", rows[0].CustomerEmail)
	assert.Equal(t, "acme", rows[0].Company)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdatePassword(t *testing.T) {
	mock := newMock(t)
	repo := repository.NewUserRepository(mock)

	mock.ExpectExec("UPDATE users SET password_hash=").
		WithArgs("new-hash", int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.UpdatePassword(context.Background(), 5, "new-hash"))

	mock.ExpectExec("UPDATE users SET password_hash=").
		WithArgs("new-hash", int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	err := repo.UpdatePassword(context.Background(), 404, "new-hash")
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepositoryCreate(t *testing.T) {
	mock := newMock(t)
	repo := repository.NewHistoryRepository(mock)

	actor := int64(3)
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO request_history").
		WithArgs(int64(1), &actor, domain.ChangeTypeStatus,
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), created))

	entry := &domain.RequestHistory{
		RequestID:  1,
		ActorID:    &actor,
		ChangeType: domain.ChangeTypeStatus,
		OldValue:   map[string]any{"status": "pending"},
		NewValue:   map[string]any{"status": "in_progress"},
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.Equal(t, int64(10), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
