package domain

import (
	"context"
	"time"
)

// CheckInRecord represents the one-time redemption of an attendee's token at
// the venue. At most one exists per attendee; it is never updated or deleted.
// swagger:model CheckInRecord
type CheckInRecord struct {
	ID          string    `json:"id"`
	AttendeeID  string    `json:"attendee_id"`
	EventID     string    `json:"event_id"`
	OperatorID  string    `json:"operator_id"`
	CouponCount int       `json:"coupon_count"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// CheckInRepository defines storage operations for check-in records.
type CheckInRepository interface {
	// Create inserts the record. The storage layer enforces at most one
	// record per attendee; a second insert returns ErrAlreadyCheckedIn.
	// This is the sole correctness mechanism under concurrent scanning.
	Create(ctx context.Context, record *CheckInRecord) error
	// GetByAttendeeID returns the record, or ErrNotFound when the attendee
	// has not checked in.
	GetByAttendeeID(ctx context.Context, attendeeID string) (*CheckInRecord, error)
}

// CheckInService is the single write path for check-ins, invoked only after
// an operator explicitly confirms a verification result.
type CheckInService interface {
	// Confirm transitions the attendee to checked-in exactly once. A race
	// loss surfaces as ErrAlreadyCheckedIn, which callers must render as a
	// benign "already done" state.
	Confirm(ctx context.Context, attendeeID, operatorID string) (*CheckInRecord, error)
}

// Verification statuses returned to the scanning station.
const (
	VerificationInvalidCode      = "invalid_code"
	VerificationWrongEvent       = "wrong_event"
	VerificationNotFound         = "not_found"
	VerificationReadyToCheckIn   = "ready_to_check_in"
	VerificationAlreadyCheckedIn = "already_checked_in"
)

// VerificationResult is what the confirmation screen renders before an
// operator commits a check-in.
// swagger:model VerificationResult
type VerificationResult struct {
	Status string `json:"status"`

	// Attendee fields are set only for ready_to_check_in and
	// already_checked_in.
	Attendee    *Attendee `json:"attendee,omitempty"`
	CouponCount int       `json:"coupon_count,omitempty"`

	// CheckedInAt and OperatorID are set only for already_checked_in.
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
	OperatorID  string     `json:"operator_id,omitempty"`
}

// VerificationService resolves a scanned string into actionable attendee
// state without mutating anything; it may be called arbitrarily often for
// the same code.
type VerificationService interface {
	Verify(ctx context.Context, rawScan, expectedEventID string) (*VerificationResult, error)
}
