package ports

import (
	"context"
	"time"

	"github.com/only/profile-portal/internal/core/domain"
)

// SessionService issues and resolves login sessions for the coordinator that
// routes between the login form and the profile page.
type SessionService interface {
	Issue(identity domain.SessionIdentity, remember bool) (string, *domain.Session, error)
	Resolve(ctx context.Context, token string) (*domain.Session, error)
	Revoke(ctx context.Context, session *domain.Session) error
}

// SessionRevoker remembers revoked session IDs until they would have expired.
type SessionRevoker interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
