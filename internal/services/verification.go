package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eventgate/internal/domain"
)

type verificationService struct {
	codec        domain.TokenCodec
	attendeeRepo domain.AttendeeRepository
	checkInRepo  domain.CheckInRepository
	logger       *slog.Logger
}

// NewVerificationService creates a VerificationService. It performs no writes
// and may be called any number of times for the same code.
func NewVerificationService(
	codec domain.TokenCodec,
	attendeeRepo domain.AttendeeRepository,
	checkInRepo domain.CheckInRepository,
	logger *slog.Logger,
) domain.VerificationService {
	return &verificationService{
		codec:        codec,
		attendeeRepo: attendeeRepo,
		checkInRepo:  checkInRepo,
		logger:       logger,
	}
}

func (s *verificationService) Verify(ctx context.Context, rawScan, expectedEventID string) (*domain.VerificationResult, error) {
	// Decode failures collapse to a single invalid_code status. The detail
	// (malformed vs decryption) is logged for operators but never surfaced,
	// so a scanner cannot probe which failure mode it hit.
	payload, err := s.codec.Decode(rawScan)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedToken) || errors.Is(err, domain.ErrDecryptionFailure) {
			s.logger.DebugContext(ctx, "scan rejected", "reason", err)
			return &domain.VerificationResult{Status: domain.VerificationInvalidCode}, nil
		}
		return nil, fmt.Errorf("decode scan: %w", err)
	}

	// Cross-check the decoded event against the scanning station's event.
	// A code from another event must not pass even though decryption
	// succeeded under the shared key.
	if payload.EventID != expectedEventID {
		return &domain.VerificationResult{Status: domain.VerificationWrongEvent}, nil
	}

	// Resolve the raw scan string itself, not the decoded payload. A token
	// that decrypts but was never issued (forged with the right key) has no
	// stored attendee and stops here.
	attendee, err := s.attendeeRepo.GetByToken(ctx, rawScan)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.VerificationResult{Status: domain.VerificationNotFound}, nil
		}
		return nil, fmt.Errorf("find attendee by token: %w", err)
	}

	record, err := s.checkInRepo.GetByAttendeeID(ctx, attendee.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.VerificationResult{
				Status:      domain.VerificationReadyToCheckIn,
				Attendee:    attendee,
				CouponCount: attendee.CouponCount(),
			}, nil
		}
		return nil, fmt.Errorf("get check-in status: %w", err)
	}

	checkedInAt := record.CheckedInAt
	return &domain.VerificationResult{
		Status:      domain.VerificationAlreadyCheckedIn,
		Attendee:    attendee,
		CouponCount: record.CouponCount,
		CheckedInAt: &checkedInAt,
		OperatorID:  record.OperatorID,
	}, nil
}
