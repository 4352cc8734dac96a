package ports

import (
	"context"
	"time"

	"github.com/marketplace/identity-api/internal/core/domain"
)

// LoginInput is the DTO passed from the transport layer to AuthService.Login.
type LoginInput struct {
	Identifier string
	Secret     string
	// PreviousSessionID, when set, is revoked once the new session exists.
	PreviousSessionID string
	IP                string
	UserAgent         string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token      string
	SessionID  string
	ExpiresAt  time.Time
	User       domain.User
	RedirectTo string
}

type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
}
