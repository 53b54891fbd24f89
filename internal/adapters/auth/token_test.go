package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("op-123", "staff@example.com", 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "op-123", claims.Subject)
	assert.Equal(t, "staff@example.com", claims.Email)
}

func TestJWTVerifier_Verify(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	verifier := NewJWTVerifier("test-secret")

	token, err := issuer.Issue("op-123", "staff@example.com", time.Hour)
	require.NoError(t, err)

	operatorID, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "op-123", operatorID)

	_, err = verifier.Verify(token + "tampered")
	require.Error(t, err)

	otherVerifier := NewJWTVerifier("other-secret")
	_, err = otherVerifier.Verify(token)
	require.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(4)

	salt, err := hasher.GenerateSalt()
	require.NoError(t, err)
	require.NotEmpty(t, salt)

	hash, err := hasher.Hash(salt, "hunter2")
	require.NoError(t, err)

	require.NoError(t, hasher.Compare(hash, salt, "hunter2"))
	require.Error(t, hasher.Compare(hash, salt, "wrong"))
	require.Error(t, hasher.Compare(hash, "other-salt", "hunter2"))
}
