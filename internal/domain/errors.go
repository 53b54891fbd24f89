package domain

import "errors"

// Sentinel errors shared across the core. Services wrap infrastructure errors
// with context; these values are matched with errors.Is at the delivery layer.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMalformedToken is returned when a scanned string does not match the
	// token wire format or the decrypted bytes do not parse.
	ErrMalformedToken = errors.New("malformed token")

	// ErrDecryptionFailure is returned when the cipher rejects the IV or
	// ciphertext length.
	ErrDecryptionFailure = errors.New("decryption failure")

	// ErrDuplicateAttendee is returned when an attendee with the same
	// event and email already exists.
	ErrDuplicateAttendee = errors.New("attendee already exists for this event and email")

	// ErrAlreadyCheckedIn is returned when a check-in record already exists
	// for the attendee. It is an expected benign outcome under concurrent
	// scanning, not a failure.
	ErrAlreadyCheckedIn = errors.New("attendee already checked in")

	// ErrAttendeeNotFound is returned by the dispatch pipeline when the
	// attendee to mail does not exist.
	ErrAttendeeNotFound = errors.New("attendee not found")

	// ErrMissingToken is returned when an attendee record carries no encoded
	// token and therefore cannot be mailed.
	ErrMissingToken = errors.New("attendee has no encoded token")

	// ErrRetryLimitExceeded is returned when delivery attempts are exhausted
	// and the caller did not request a forced retry.
	ErrRetryLimitExceeded = errors.New("delivery retry limit exceeded")

	// ErrBatchInProgress is returned when a dispatch batch is already running
	// for the event.
	ErrBatchInProgress = errors.New("dispatch batch already in progress for event")

	// ErrInvalidCredentials is returned when operator login fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInput is returned when a request is semantically invalid.
	ErrInvalidInput = errors.New("invalid input")
)
