package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eventgate/internal/domain"
)

type checkInService struct {
	attendeeRepo domain.AttendeeRepository
	checkInRepo  domain.CheckInRepository
}

// NewCheckInService creates the CheckInService, the only writer of check-in
// records.
func NewCheckInService(
	attendeeRepo domain.AttendeeRepository,
	checkInRepo domain.CheckInRepository,
) domain.CheckInService {
	return &checkInService{
		attendeeRepo: attendeeRepo,
		checkInRepo:  checkInRepo,
	}
}

func (s *checkInService) Confirm(ctx context.Context, attendeeID, operatorID string) (*domain.CheckInRecord, error) {
	if operatorID == "" {
		return nil, fmt.Errorf("%w: operator is required", domain.ErrInvalidInput)
	}

	attendee, err := s.attendeeRepo.GetByID(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}

	// Coupon count is recomputed from the live headcount fields. Values
	// carried in the scanned payload or posted by the UI are never trusted.
	record := &domain.CheckInRecord{
		ID:          uuid.NewString(),
		AttendeeID:  attendee.ID,
		EventID:     attendee.EventID,
		OperatorID:  operatorID,
		CouponCount: attendee.CouponCount(),
		CheckedInAt: time.Now(),
	}

	if err := s.checkInRepo.Create(ctx, record); err != nil {
		if errors.Is(err, domain.ErrAlreadyCheckedIn) {
			// Race loss under concurrent scanning. Propagated verbatim so
			// the station renders "already done", not a failure.
			return nil, domain.ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("create check-in record: %w", err)
	}
	return record, nil
}
