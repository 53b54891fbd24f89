package domain

import (
	"context"
	"time"
)

// Delivery status values for the attendee's ticket email.
const (
	DeliveryPending        = "pending"
	DeliverySent           = "sent"
	DeliveryFailed         = "failed"
	DeliveryRetryScheduled = "retry_scheduled"
)

// EmailDeliveryState tracks the outcome of ticket email delivery for one
// attendee. Mutated only by the dispatch pipeline.
type EmailDeliveryState struct {
	Status        string     `json:"status"`
	RetryCount    int        `json:"retry_count"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
}

// Attendee represents a registered participant of one event, including the
// headcount breakdown used for coupon totals and the encoded check-in token.
// The token is generated once at creation and is immutable; re-issuing a code
// means creating a new attendee record, never mutating this one.
// swagger:model Attendee
type Attendee struct {
	ID           string `json:"id"`
	EventID      string `json:"event_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`
	VegMeals     int    `json:"veg_meals"`
	NonVegMeals  int    `json:"nonveg_meals"`
	DietaryNotes string `json:"dietary_notes,omitempty"`

	// Token is the opaque encrypted string embedded in the QR code.
	Token string `json:"token"`

	Delivery EmailDeliveryState `json:"delivery"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CouponCount derives the number of meal coupons owed at check-in from the
// live headcount fields. It is recomputed at confirm time and never trusted
// from a scanned payload or the UI.
func (a *Attendee) CouponCount() int {
	return a.Adults + a.Children
}

// AttendeeRepository defines storage operations for attendees.
type AttendeeRepository interface {
	// Create persists the attendee. The caller must have populated Token;
	// an attendee is never visible to readers without one.
	Create(ctx context.Context, attendee *Attendee) error
	GetByID(ctx context.Context, id string) (*Attendee, error)
	// GetByToken resolves the exact stored token string, not a re-decode.
	GetByToken(ctx context.Context, token string) (*Attendee, error)
	// ListPendingDispatch returns the event's attendees whose delivery status
	// is pending, failed or retry_scheduled, in creation order.
	ListPendingDispatch(ctx context.Context, eventID string) ([]*Attendee, error)
	// UpdateDeliveryState overwrites the delivery state for the attendee.
	UpdateDeliveryState(ctx context.Context, attendeeID string, state EmailDeliveryState) error
}

// NewAttendeeInput carries the fields needed to register an attendee.
type NewAttendeeInput struct {
	Name         string
	Email        string
	Phone        string
	Adults       int
	Children     int
	VegMeals     int
	NonVegMeals  int
	DietaryNotes string
}

// AttendeeService defines attendee registration operations. Creation mints
// the encoded token synchronously before the record is stored.
type AttendeeService interface {
	CreateAttendee(ctx context.Context, eventID string, input NewAttendeeInput) (*Attendee, error)
	GetAttendee(ctx context.Context, attendeeID string) (*Attendee, error)
}
