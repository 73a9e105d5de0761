package ports

import (
	"context"

	"github.com/only/profile-portal/internal/core/domain"
)

// AttemptRepository persists login attempt records.
type AttemptRepository interface {
	InsertAttempt(ctx context.Context, rec *domain.AttemptRecord) error
}

// AttemptJournal accepts records for asynchronous persistence. Record must not
// block the login path.
type AttemptJournal interface {
	Record(rec domain.AttemptRecord)
}
