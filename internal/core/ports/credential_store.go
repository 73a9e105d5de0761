package ports

import (
	"context"

	"github.com/only/profile-portal/internal/core/domain"
)

// CredentialStore is the read-only set of registered identities consulted on
// every login attempt.
type CredentialStore interface {
	// Lookup returns the credential registered under identifier. Matching is
	// exact and case-sensitive.
	Lookup(identifier string) (domain.Credential, bool)
}

// CredentialRepository is a persistent credential source. It is read once at
// startup to seed the CredentialStore.
type CredentialRepository interface {
	FindAll(ctx context.Context) ([]domain.Credential, error)
	Create(ctx context.Context, cred domain.Credential) error
}
