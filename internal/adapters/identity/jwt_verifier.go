package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rentnest/rentnest/backend/internal/domain/entities"
	"github.com/rentnest/rentnest/backend/internal/domain/providers"
	apperrors "github.com/rentnest/rentnest/backend/pkg/errors"
)

// JWTVerifier resolves HMAC-signed bearer tokens issued by the auth
// service into an identity. Token issuance lives outside this service;
// only the shared secret is configured here.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier for tokens signed with the given secret.
func NewJWTVerifier(secret string) providers.TokenVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token and extracts the caller identity.
func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (entities.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return entities.Identity{}, apperrors.NewUnauthenticatedError("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entities.Identity{}, apperrors.NewUnauthenticatedError("invalid token claims")
	}

	userID, _ := claims["id"].(string)
	if userID == "" {
		// some issuers use the registered subject claim instead
		userID, _ = claims["sub"].(string)
	}
	accountType, _ := claims["accountType"].(string)

	ident := entities.Identity{
		UserID:      userID,
		AccountType: entities.AccountType(accountType),
	}
	if ident.UserID == "" || !ident.AccountType.Valid() {
		return entities.Identity{}, apperrors.NewUnauthenticatedError("token carries no usable identity")
	}

	return ident, nil
}
