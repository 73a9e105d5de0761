package handler

import (
	"time"

	"github.com/only/profile-portal/internal/api/metrics"
	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/ports"
	"github.com/only/profile-portal/internal/core/service"
)

type instrumentedAuthenticator struct {
	next   ports.Authenticator
	source string
}

// instrument counts every resolved outcome and times it from submission.
func instrument(next ports.Authenticator, source string) ports.Authenticator {
	return &instrumentedAuthenticator{next: next, source: source}
}

func (a *instrumentedAuthenticator) Authenticate(attempt domain.LoginAttempt, delay time.Duration) <-chan domain.AuthOutcome {
	start := time.Now()
	in := a.next.Authenticate(attempt, delay)
	out := make(chan domain.AuthOutcome, 1)

	go func() {
		defer close(out)
		outcome, ok := <-in
		if !ok {
			return
		}
		metrics.AuthDuration.WithLabelValues(a.source).Observe(time.Since(start).Seconds())
		metrics.AuthAttemptsTotal.WithLabelValues(a.source, outcome.Kind.String()).Inc()
		out <- outcome
	}()

	return out
}

// authenticatorFor decorates auth for one request: journaled when a journal
// is configured, always instrumented.
func authenticatorFor(auth ports.Authenticator, journal ports.AttemptJournal, meta service.AttemptMeta) ports.Authenticator {
	if journal != nil {
		auth = service.Journaled(auth, journal, meta)
	}
	return instrument(auth, meta.Source)
}
