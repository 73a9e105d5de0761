package ports

import (
	"time"

	"github.com/only/profile-portal/internal/core/domain"
)

// Authenticator checks login attempts. The returned channel yields exactly one
// outcome once delay has elapsed and is then closed.
type Authenticator interface {
	Authenticate(attempt domain.LoginAttempt, delay time.Duration) <-chan domain.AuthOutcome
}
