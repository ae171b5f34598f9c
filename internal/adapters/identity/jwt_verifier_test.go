package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentnest/rentnest/backend/internal/adapters/identity"
	"github.com/rentnest/rentnest/backend/internal/domain/entities"
	apperrors "github.com/rentnest/rentnest/backend/pkg/errors"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTVerifier_ValidToken(t *testing.T) {
	verifier := identity.NewJWTVerifier(testSecret)

	tokenString := signToken(t, jwt.MapClaims{
		"id":          "user-42",
		"accountType": "owner",
		"exp":         time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	ident, err := verifier.Verify(context.Background(), tokenString)

	assert.NoError(t, err)
	assert.Equal(t, "user-42", ident.UserID)
	assert.Equal(t, entities.AccountTypeOwner, ident.AccountType)
}

func TestJWTVerifier_SubjectClaimFallback(t *testing.T) {
	verifier := identity.NewJWTVerifier(testSecret)

	tokenString := signToken(t, jwt.MapClaims{
		"sub":         "user-7",
		"accountType": "tenant",
	}, testSecret)

	ident, err := verifier.Verify(context.Background(), tokenString)

	assert.NoError(t, err)
	assert.Equal(t, "user-7", ident.UserID)
	assert.Equal(t, entities.AccountTypeTenant, ident.AccountType)
}

func TestJWTVerifier_WrongSecret(t *testing.T) {
	verifier := identity.NewJWTVerifier(testSecret)

	tokenString := signToken(t, jwt.MapClaims{
		"id":          "user-42",
		"accountType": "owner",
	}, "some-other-secret")

	_, err := verifier.Verify(context.Background(), tokenString)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthenticated))
}

func TestJWTVerifier_ExpiredToken(t *testing.T) {
	verifier := identity.NewJWTVerifier(testSecret)

	tokenString := signToken(t, jwt.MapClaims{
		"id":          "user-42",
		"accountType": "owner",
		"exp":         time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	_, err := verifier.Verify(context.Background(), tokenString)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthenticated))
}

func TestJWTVerifier_UnknownAccountType(t *testing.T) {
	verifier := identity.NewJWTVerifier(testSecret)

	tokenString := signToken(t, jwt.MapClaims{
		"id":          "user-42",
		"accountType": "admin",
	}, testSecret)

	_, err := verifier.Verify(context.Background(), tokenString)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthenticated))
}

func TestJWTVerifier_GarbageToken(t *testing.T) {
	verifier := identity.NewJWTVerifier(testSecret)

	_, err := verifier.Verify(context.Background(), "not-a-token")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthenticated))
}
