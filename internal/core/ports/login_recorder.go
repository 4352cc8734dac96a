package ports

import (
	"context"

	"github.com/marketplace/identity-api/internal/core/domain"
)

// LoginRecorder receives audit events. Implementations must not block the
// login path for long.
type LoginRecorder interface {
	Record(event domain.LoginEvent)
}

// LoginEventRepository is the persistence side of the audit trail.
type LoginEventRepository interface {
	Insert(ctx context.Context, event *domain.LoginEvent) error
}
