package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"docintake-backend/internal/domain"
	"docintake-backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (message_id, topic, token, payload, dispatched, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		e.MessageID, e.Topic, e.Token, nullableJSON(e.Payload), e.Dispatched, e.CreatedOn)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *eventRepository) ListPending(ctx context.Context, limit int32) ([]domain.Event, error) {
	query := `SELECT message_id, topic, token, payload, dispatched, created_on, dispatched_on
	          FROM events WHERE dispatched = false ORDER BY created_on ASC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var payload []byte
		var dispatchedOn sql.NullTime
		if err := rows.Scan(&e.MessageID, &e.Topic, &e.Token, &payload, &e.Dispatched, &e.CreatedOn, &dispatchedOn); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Payload = payload
		if dispatchedOn.Valid {
			e.DispatchedOn = &dispatchedOn.Time
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) MarkDispatched(ctx context.Context, messageID string, at time.Time) error {
	query := `UPDATE events SET dispatched = true, dispatched_on = $1 WHERE message_id = $2`
	_, err := r.db.ExecContext(ctx, query, at, messageID)
	if err != nil {
		return fmt.Errorf("failed to mark event dispatched: %w", err)
	}
	return nil
}
