package ports

import (
	"context"

	"github.com/marketplace/identity-api/internal/core/domain"
)

// SessionStore persists the identity bound to each issued session.
// Get and Delete return domain.ErrSessionNotFound for unknown or expired ids.
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
