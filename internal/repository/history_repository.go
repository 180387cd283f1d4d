package repository

import (
	"context"

	"github.com/spec-kit/service-desk/internal/domain"
)

// HistoryRepository stores audit entries for request changes.
type HistoryRepository interface {
	Create(ctx context.Context, history *domain.RequestHistory) error
	ListByRequest(ctx context.Context, requestID int64) ([]domain.RequestHistory, error)
}

type historyRepository struct {
	db DB
}

// NewHistoryRepository builds the repository.
func NewHistoryRepository(db DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, history *domain.RequestHistory) error {
	const query = `
        INSERT INTO request_history (request_id, actor_id, change_type, old_value, new_value)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		history.RequestID,
		history.ActorID,
		history.ChangeType,
		history.OldValue,
		history.NewValue,
	).Scan(&history.ID, &history.CreatedAt)
}

func (r *historyRepository) ListByRequest(ctx context.Context, requestID int64) ([]domain.RequestHistory, error) {
	const query = `
        SELECT id, request_id, actor_id, change_type, old_value, new_value, created_at
        FROM request_history WHERE request_id=$1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RequestHistory
	for rows.Next() {
		var history domain.RequestHistory
		if err := rows.Scan(
			&history.ID,
			&history.RequestID,
			&history.ActorID,
			&history.ChangeType,
			&history.OldValue,
			&history.NewValue,
			&history.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, history)
	}
	return result, rows.Err()
}
