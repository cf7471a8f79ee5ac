package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/timeclock-service/internal/domain"
)

// ClockEventRepository handles persistence for clock events. Events are
// append-only; no update or delete is exposed.
type ClockEventRepository interface {
	Create(ctx context.Context, event *domain.ClockEvent) error
	ListByUser(ctx context.Context, userID string) ([]domain.ClockEvent, error)
	ListAll(ctx context.Context) ([]domain.ClockEvent, error)
}

type clockEventRepository struct {
	pool *pgxpool.Pool
}

// NewClockEventRepository instantiates the repository.
func NewClockEventRepository(pool *pgxpool.Pool) ClockEventRepository {
	return &clockEventRepository{pool: pool}
}

func (r *clockEventRepository) Create(ctx context.Context, event *domain.ClockEvent) error {
	const query = `
        INSERT INTO clock_events (user_id, clock_type, recorded_at)
        VALUES ($1, $2, $3)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		event.UserID,
		event.ClockType,
		event.RecordedAt,
	).Scan(&event.ID)
}

func (r *clockEventRepository) ListByUser(ctx context.Context, userID string) ([]domain.ClockEvent, error) {
	const query = `
        SELECT id, user_id, clock_type, recorded_at
        FROM clock_events WHERE user_id=$1
        ORDER BY recorded_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ClockEvent
	for rows.Next() {
		var event domain.ClockEvent
		if err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.ClockType,
			&event.RecordedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

func (r *clockEventRepository) ListAll(ctx context.Context) ([]domain.ClockEvent, error) {
	const query = `
        SELECT e.id, e.user_id, e.clock_type, e.recorded_at, u.username
        FROM clock_events e
        JOIN users u ON u.id = e.user_id
        ORDER BY e.recorded_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ClockEvent
	for rows.Next() {
		var event domain.ClockEvent
		if err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.ClockType,
			&event.RecordedAt,
			&event.Username,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
