package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventgate/internal/domain"
)

type checkInRepository struct {
	DB *sql.DB
}

func NewCheckInRepository(db *sql.DB) domain.CheckInRepository {
	return &checkInRepository{
		DB: db,
	}
}

// Create relies on the unique constraint on attendee_id to guarantee exactly
// one record per attendee. Two operators committing near-simultaneously race
// on the insert; the loser gets ErrAlreadyCheckedIn.
func (r *checkInRepository) Create(ctx context.Context, record *domain.CheckInRecord) error {
	query := `
		INSERT INTO checkin_records (id, attendee_id, event_id, operator_id, coupon_count, checked_in_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query,
		record.ID, record.AttendeeID, record.EventID,
		record.OperatorID, record.CouponCount, record.CheckedInAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrAlreadyCheckedIn
		}
		return err
	}
	return nil
}

func (r *checkInRepository) GetByAttendeeID(ctx context.Context, attendeeID string) (*domain.CheckInRecord, error) {
	query := `
		SELECT id, attendee_id, event_id, operator_id, coupon_count, checked_in_at
		FROM checkin_records
		WHERE attendee_id = $1
	`
	record := &domain.CheckInRecord{}
	err := r.DB.QueryRowContext(ctx, query, attendeeID).
		Scan(&record.ID, &record.AttendeeID, &record.EventID,
			&record.OperatorID, &record.CouponCount, &record.CheckedInAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}
