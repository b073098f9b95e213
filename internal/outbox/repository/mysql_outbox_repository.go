package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/idvault/internal/database"
	apperrors "github.com/allisson/idvault/internal/errors"
	"github.com/allisson/idvault/internal/outbox/domain"
)

// MySQLOutboxEventRepository handles outbox event persistence for MySQL.
// IDs are stored as BINARY(16).
type MySQLOutboxEventRepository struct {
	db *sql.DB
}

// NewMySQLOutboxEventRepository creates a new MySQLOutboxEventRepository.
func NewMySQLOutboxEventRepository(db *sql.DB) *MySQLOutboxEventRepository {
	return &MySQLOutboxEventRepository{db: db}
}

// Create inserts a new outbox event.
func (r *MySQLOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	querier := database.GetTx(ctx, r.db)

	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal outbox event id")
	}

	query := `INSERT INTO outbox_events (id, event_type, payload, status, retries, last_error, processed_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query, id, event.EventType, event.Payload, event.Status,
		event.Retries, event.LastError, event.ProcessedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create outbox event")
	}
	return nil
}

// GetPendingEvents locks and returns up to limit pending events, oldest first.
// Requires MySQL 8.0 for SKIP LOCKED. Must be called inside a transaction.
func (r *MySQLOutboxEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*domain.OutboxEvent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, event_type, payload, status, retries, last_error, processed_at, created_at, updated_at
			  FROM outbox_events
			  WHERE status = ?
			  ORDER BY created_at ASC
			  LIMIT ?
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, domain.OutboxEventStatusPending, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get pending outbox events")
	}
	defer rows.Close() //nolint:errcheck

	events := make([]*domain.OutboxEvent, 0)
	for rows.Next() {
		var event domain.OutboxEvent
		var id []byte

		err := rows.Scan(&id, &event.EventType, &event.Payload, &event.Status,
			&event.Retries, &event.LastError, &event.ProcessedAt, &event.CreatedAt, &event.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan outbox event")
		}
		if err := event.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal outbox event id")
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate outbox events")
	}
	return events, nil
}

// Update persists the delivery state of an outbox event.
func (r *MySQLOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	querier := database.GetTx(ctx, r.db)

	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal outbox event id")
	}

	query := `UPDATE outbox_events
			  SET status = ?, retries = ?, last_error = ?, processed_at = ?, updated_at = NOW()
			  WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, event.Status, event.Retries, event.LastError,
		event.ProcessedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update outbox event")
	}
	return nil
}
