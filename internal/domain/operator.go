package domain

import (
	"context"
	"time"
)

// Operator represents a staff member allowed to confirm check-ins and trigger
// dispatch. Authorization itself lives in the delivery layer; the core only
// records operator identity on check-in records.
// swagger:model Operator
type Operator struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	PasswordSalt string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated operator.
type TokenIssuer interface {
	Issue(operatorID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated operator ID.
type TokenVerifier interface {
	Verify(token string) (operatorID string, err error)
}

// OperatorRepository defines storage operations for operators.
type OperatorRepository interface {
	Create(ctx context.Context, operator *Operator) error
	GetByEmail(ctx context.Context, email string) (*Operator, error)
	GetByID(ctx context.Context, id string) (*Operator, error)
}

// AuthService authenticates operators and issues bearer tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, operator *Operator, err error)
}
