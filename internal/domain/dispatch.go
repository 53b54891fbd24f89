package domain

import "context"

// DispatchOutcome reports the result of a single delivery attempt.
// swagger:model DispatchOutcome
type DispatchOutcome struct {
	AttendeeID string `json:"attendee_id"`
	Status     string `json:"status"`
	RetryCount int    `json:"retry_count"`
	Error      string `json:"error,omitempty"`
}

// BatchResult aggregates a per-event dispatch batch. Errors holds one
// "attendeeID: message" string per failed attendee for operator review.
// swagger:model BatchResult
type BatchResult struct {
	Total  int      `json:"total"`
	Sent   int      `json:"sent"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors"`
}

// DispatchService delivers encoded tokens to attendees by email, tolerating
// transient transport failures without losing track of who still needs a
// message.
type DispatchService interface {
	// SendOne attempts delivery for one attendee. With forceRetry the retry
	// counter is reset and the attempt proceeds even past the ceiling; this
	// represents an explicit operator override.
	SendOne(ctx context.Context, attendeeID string, forceRetry bool) (*DispatchOutcome, error)
	// SendBatch processes all attendees of the event not yet in sent state,
	// sequentially with a pacing delay, isolating per-item failures. It must
	// not run twice concurrently for the same event.
	SendBatch(ctx context.Context, eventID string) (*BatchResult, error)
}
