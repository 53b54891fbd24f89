package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventgate/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, name, venue, starts_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query,
		event.ID, event.Name, event.Venue, event.StartsAt, event.CreatedAt, event.UpdatedAt)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, venue, starts_at, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	event := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&event.ID, &event.Name, &event.Venue, &event.StartsAt, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}
