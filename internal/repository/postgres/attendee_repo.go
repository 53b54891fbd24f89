package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventgate/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
	}
}

const attendeeColumns = `
	id, event_id, name, email, phone, adults, children, veg_meals, nonveg_meals,
	dietary_notes, token, delivery_status, retry_count, last_attempt_at, last_error,
	created_at, updated_at
`

func (r *attendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	query := `
		INSERT INTO attendees (
			id, event_id, name, email, phone, adults, children, veg_meals, nonveg_meals,
			dietary_notes, token, delivery_status, retry_count, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID, a.EventID, a.Name, a.Email, nullString(a.Phone),
		a.Adults, a.Children, a.VegMeals, a.NonVegMeals,
		nullString(a.DietaryNotes), a.Token, a.Delivery.Status, a.Delivery.RetryCount,
		a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateAttendee
		}
		return err
	}
	return nil
}

func (r *attendeeRepository) GetByID(ctx context.Context, id string) (*domain.Attendee, error) {
	query := `SELECT ` + attendeeColumns + ` FROM attendees WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *attendeeRepository) GetByToken(ctx context.Context, token string) (*domain.Attendee, error) {
	query := `SELECT ` + attendeeColumns + ` FROM attendees WHERE token = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, token))
}

func (r *attendeeRepository) ListPendingDispatch(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	query := `
		SELECT ` + attendeeColumns + `
		FROM attendees
		WHERE event_id = $1 AND delivery_status IN ($2, $3, $4)
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID,
		domain.DeliveryPending, domain.DeliveryFailed, domain.DeliveryRetryScheduled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]*domain.Attendee, 0)
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *attendeeRepository) UpdateDeliveryState(ctx context.Context, attendeeID string, state domain.EmailDeliveryState) error {
	query := `
		UPDATE attendees
		SET delivery_status = $2, retry_count = $3, last_attempt_at = $4,
		    last_error = $5, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, attendeeID,
		state.Status, state.RetryCount, state.LastAttemptAt, nullString(state.LastError))
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *attendeeRepository) scanOne(row rowScanner) (*domain.Attendee, error) {
	a, err := scanAttendee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func scanAttendee(row rowScanner) (*domain.Attendee, error) {
	a := &domain.Attendee{}
	var phone, dietaryNotes, lastError sql.NullString
	var lastAttemptAt sql.NullTime
	err := row.Scan(
		&a.ID, &a.EventID, &a.Name, &a.Email, &phone,
		&a.Adults, &a.Children, &a.VegMeals, &a.NonVegMeals,
		&dietaryNotes, &a.Token, &a.Delivery.Status, &a.Delivery.RetryCount,
		&lastAttemptAt, &lastError, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Phone = phone.String
	a.DietaryNotes = dietaryNotes.String
	a.Delivery.LastError = lastError.String
	if lastAttemptAt.Valid {
		t := lastAttemptAt.Time
		a.Delivery.LastAttemptAt = &t
	}
	return a, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
