package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/infrastructure/db/memory"
	mongostore "github.com/only/profile-portal/internal/infrastructure/db/mongo"
)

// loadCredentials returns the registered users. Without MongoDB that is the
// built-in list; with it, the built-in list is seeded into the credentials
// collection and the whole collection is loaded once.
func loadCredentials(ctx context.Context, store *mongostore.Store, cost int, log zerolog.Logger) (*memory.CredentialStore, error) {
	builtin, err := memory.HashSeeds(memory.Registered, cost)
	if err != nil {
		return nil, fmt.Errorf("hash built-in credentials: %w", err)
	}
	if store == nil {
		return memory.NewCredentialStore(builtin), nil
	}

	repo := mongostore.NewCredentialRepository(store.Database())
	inserted, err := mongostore.Seed(ctx, repo, builtin)
	if err != nil {
		return nil, fmt.Errorf("seed credentials: %w", err)
	}

	var creds []domain.Credential
	if creds, err = repo.FindAll(ctx); err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	log.Info().Int("seeded", inserted).Int("total", len(creds)).Msg("credentials loaded from mongodb")

	return memory.NewCredentialStore(creds), nil
}
