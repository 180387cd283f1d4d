package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/service-desk/internal/domain"
)

const requestColumns = `id, customer_id, company, problem, status, engineer_id, paid, is_valid, price, created_at, completed_at`

// RequestRepository encapsulates request persistence. Mutate and MutateOwned
// run the supplied function against a row locked inside a transaction, so
// read-modify-write sequences (Take, Pay, Complete, admin updates) are atomic
// with respect to concurrent writers on the same id.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.Request) error
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Request, error)
	ListBoard(ctx context.Context, onlyValid bool) ([]domain.BoardRow, error)
	ListAll(ctx context.Context) ([]domain.Request, error)
	ListDetails(ctx context.Context) ([]domain.RequestDetail, error)
	Mutate(ctx context.Context, id int64, fn func(*domain.Request) error) error
	MutateOwned(ctx context.Context, id, customerID int64, fn func(*domain.Request) error) error
}

type requestRepository struct {
	db DB
}

// NewRequestRepository instantiates the repository.
func NewRequestRepository(db DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *domain.Request) error {
	const query = `
        INSERT INTO requests (customer_id, company, problem, status, engineer_id, paid, is_valid, price)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		request.CustomerID,
		request.Company,
		request.Problem,
		request.Status,
		request.EngineerID,
		request.Paid,
		request.IsValid,
		request.Price,
	).Scan(&request.ID, &request.CreatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	const query = `SELECT ` + requestColumns + ` FROM requests WHERE id=$1`
	var request domain.Request
	if err := scanRequest(r.db.QueryRow(ctx, query, id), &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Request, error) {
	const query = `
        SELECT ` + requestColumns + `
        FROM requests WHERE customer_id=$1
        ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) ListAll(ctx context.Context) ([]domain.Request, error) {
	const query = `SELECT ` + requestColumns + ` FROM requests ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

// ListBoard returns rows in board order: company ascending, newest first
// within each company. The grouping itself happens in the aggregate package.
func (r *requestRepository) ListBoard(ctx context.Context, onlyValid bool) ([]domain.BoardRow, error) {
	query := `
        SELECT r.id, r.customer_id, r.company, r.problem, r.status, r.engineer_id,
               r.paid, r.is_valid, r.price, r.created_at, r.completed_at, u.email
        FROM requests r
        JOIN users u ON r.customer_id = u.id`
	if onlyValid {
		query += `
        WHERE r.is_valid`
	}
	query += `
        ORDER BY r.company ASC, r.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BoardRow
	for rows.Next() {
		var row domain.BoardRow
		if err := rows.Scan(
			&row.ID,
			&row.CustomerID,
			&row.Company,
			&row.Problem,
			&row.Status,
			&row.EngineerID,
			&row.Paid,
			&row.IsValid,
			&row.Price,
			&row.CreatedAt,
			&row.CompletedAt,
			&row.CustomerEmail,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *requestRepository) ListDetails(ctx context.Context) ([]domain.RequestDetail, error) {
	const query = `
        SELECT r.id, r.customer_id, r.company, r.problem, r.status, r.engineer_id,
               r.paid, r.is_valid, r.price, r.created_at, r.completed_at,
               cu.email, cu.company, en.email, en.company
        FROM requests r
        LEFT JOIN users cu ON r.customer_id = cu.id
        LEFT JOIN users en ON r.engineer_id = en.id
        ORDER BY r.created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RequestDetail
	for rows.Next() {
		var detail domain.RequestDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.CustomerID,
			&detail.Company,
			&detail.Problem,
			&detail.Status,
			&detail.EngineerID,
			&detail.Paid,
			&detail.IsValid,
			&detail.Price,
			&detail.CreatedAt,
			&detail.CompletedAt,
			&detail.CustomerEmail,
			&detail.CustomerCompany,
			&detail.EngineerEmail,
			&detail.EngineerCompany,
		); err != nil {
			return nil, err
		}
		result = append(result, detail)
	}
	return result, rows.Err()
}

func (r *requestRepository) Mutate(ctx context.Context, id int64, fn func(*domain.Request) error) error {
	const query = `SELECT ` + requestColumns + ` FROM requests WHERE id=$1 FOR UPDATE`
	return r.mutate(ctx, fn, query, id)
}

// MutateOwned filters by both id and owner in a single query, so a non-owner
// observes the same "not found" as a caller of an absent id.
func (r *requestRepository) MutateOwned(ctx context.Context, id, customerID int64, fn func(*domain.Request) error) error {
	const query = `SELECT ` + requestColumns + ` FROM requests WHERE id=$1 AND customer_id=$2 FOR UPDATE`
	return r.mutate(ctx, fn, query, id, customerID)
}

func (r *requestRepository) mutate(ctx context.Context, fn func(*domain.Request) error, query string, args ...any) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var request domain.Request
	if err := scanRequest(tx.QueryRow(ctx, query, args...), &request); err != nil {
		return err
	}
	if err := fn(&request); err != nil {
		return err
	}

	const update = `
        UPDATE requests
        SET status=$1, engineer_id=$2, paid=$3, is_valid=$4, price=$5, completed_at=$6
        WHERE id=$7`
	if _, err := tx.Exec(ctx, update,
		request.Status,
		request.EngineerID,
		request.Paid,
		request.IsValid,
		request.Price,
		request.CompletedAt,
		request.ID,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scanRequest(row pgx.Row, request *domain.Request) error {
	return row.Scan(
		&request.ID,
		&request.CustomerID,
		&request.Company,
		&request.Problem,
		&request.Status,
		&request.EngineerID,
		&request.Paid,
		&request.IsValid,
		&request.Price,
		&request.CreatedAt,
		&request.CompletedAt,
	)
}

func scanRequests(rows pgx.Rows) ([]domain.Request, error) {
	var result []domain.Request
	for rows.Next() {
		var request domain.Request
		if err := scanRequest(rows, &request); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}
