package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventgate/internal/domain"
)

const operatorTokenExpiry = 12 * time.Hour

type authService struct {
	operatorRepo domain.OperatorRepository
	hasher       domain.PasswordHasher
	issuer       domain.TokenIssuer
}

// NewAuthService creates an AuthService for operator login.
func NewAuthService(
	operatorRepo domain.OperatorRepository,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
) domain.AuthService {
	return &authService{
		operatorRepo: operatorRepo,
		hasher:       hasher,
		issuer:       issuer,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Operator, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	operator, err := s.operatorRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same error as a bad password so login cannot be used to probe
			// which operator accounts exist.
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get operator: %w", err)
	}

	if err := s.hasher.Compare(operator.PasswordHash, operator.PasswordSalt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(operator.ID, operator.Email, operatorTokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, operator, nil
}
