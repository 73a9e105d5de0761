package service

import (
	"time"

	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/ports"
)

// AttemptMeta describes where a login attempt came from.
type AttemptMeta struct {
	Source    string
	ClientIP  string
	UserAgent string
}

type journaledAuthenticator struct {
	next    ports.Authenticator
	journal ports.AttemptJournal
	meta    AttemptMeta
	now     func() time.Time
}

// Journaled wraps next so every resolved outcome is also handed to journal.
// The outcome reaches the caller unchanged.
func Journaled(next ports.Authenticator, journal ports.AttemptJournal, meta AttemptMeta) ports.Authenticator {
	return &journaledAuthenticator{next: next, journal: journal, meta: meta, now: time.Now}
}

func (j *journaledAuthenticator) Authenticate(attempt domain.LoginAttempt, delay time.Duration) <-chan domain.AuthOutcome {
	in := j.next.Authenticate(attempt, delay)
	out := make(chan domain.AuthOutcome, 1)

	go func() {
		defer close(out)
		outcome, ok := <-in
		if !ok {
			return
		}

		rec := domain.NewAttemptRecord(outcome, j.meta.Source, j.now())
		rec.ClientIP = j.meta.ClientIP
		rec.UserAgent = j.meta.UserAgent
		j.journal.Record(rec)

		out <- outcome
	}()

	return out
}
