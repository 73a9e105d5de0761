package mongo

import (
	"context"
	"errors"

	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/ports"
)

// Seed inserts every credential whose identifier is not registered yet and
// reports how many were added.
func Seed(ctx context.Context, repo ports.CredentialRepository, creds []domain.Credential) (int, error) {
	inserted := 0
	for _, c := range creds {
		err := repo.Create(ctx, c)
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, domain.ErrDuplicateCredential):
		default:
			return inserted, err
		}
	}
	return inserted, nil
}
