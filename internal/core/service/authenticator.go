package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/ports"
)

// Authenticator is the mocked login endpoint: it checks attempts against the
// credential store and answers after an artificial network delay.
type Authenticator struct {
	store ports.CredentialStore
	log   zerolog.Logger
}

func NewAuthenticator(store ports.CredentialStore, log zerolog.Logger) *Authenticator {
	return &Authenticator{
		store: store,
		log:   log.With().Str("component", "authenticator").Logger(),
	}
}

// Authenticate resolves the attempt after delay. The channel is buffered, so
// the timer never blocks on a caller that stopped listening.
func (a *Authenticator) Authenticate(attempt domain.LoginAttempt, delay time.Duration) <-chan domain.AuthOutcome {
	out := make(chan domain.AuthOutcome, 1)
	time.AfterFunc(delay, func() {
		out <- a.Check(attempt)
		close(out)
	})
	return out
}

// Check is the synchronous credential check behind Authenticate.
func (a *Authenticator) Check(attempt domain.LoginAttempt) domain.AuthOutcome {
	var outcome domain.AuthOutcome

	cred, ok := a.store.Lookup(attempt.Identifier)
	switch {
	case !ok:
		outcome = domain.UnknownIdentifier(attempt)
	case !cred.Matches(attempt.Secret):
		outcome = domain.WrongSecret(attempt)
	default:
		outcome = domain.Succeeded(attempt)
	}

	a.log.Debug().
		Str("login", attempt.Identifier).
		Stringer("outcome", outcome.Kind).
		Int("status", outcome.StatusCode()).
		Msg("login attempt checked")

	return outcome
}

// Await blocks until auth answers the attempt.
func Await(auth ports.Authenticator, attempt domain.LoginAttempt, delay time.Duration) domain.AuthOutcome {
	return <-auth.Authenticate(attempt, delay)
}
