package providers

import (
	"context"

	"github.com/rentnest/rentnest/backend/internal/domain/entities"
)

// TokenVerifier is the identity collaborator: it resolves request
// credentials into an authenticated identity or fails with an
// unauthenticated error.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (entities.Identity, error)
}
