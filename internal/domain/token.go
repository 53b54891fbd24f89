package domain

import "time"

// TokenPayload is the structured payload carried inside an encoded check-in
// token. All fields are required; absence of any is a malformed token.
type TokenPayload struct {
	EventID    string `json:"event_id"`
	AttendeeID string `json:"attendee_id"`
	IssuedAtMS int64  `json:"issued_at_ms"`
	Nonce      string `json:"nonce"`
}

// IssuedAt returns the issuance time carried in the payload.
func (p TokenPayload) IssuedAt() time.Time {
	return time.UnixMilli(p.IssuedAtMS)
}

// TokenCodec turns a payload into an opaque encrypted string safe to embed
// in a QR image and email, and reverses the operation. Implementations hold
// only immutable key material and are safe for concurrent use.
type TokenCodec interface {
	// Encode serializes and encrypts the payload. A missing nonce is
	// generated internally from a cryptographically secure source.
	Encode(payload TokenPayload) (string, error)
	// Decode decrypts and parses a token. All failure paths return
	// ErrMalformedToken or ErrDecryptionFailure; attacker-controlled input
	// never causes a crash.
	Decode(token string) (TokenPayload, error)
}

// QRRenderer turns an encoded token string into a scannable raster image.
// Pure function, no state.
type QRRenderer interface {
	Render(token string, size int) ([]byte, error)
}
