package memory

import (
	"github.com/only/profile-portal/internal/core/domain"
)

// Seed is a plain-text registration used to build the store at startup.
type Seed struct {
	Identifier string
	Secret     string
}

// Registered is the built-in user list.
var Registered = []Seed{
	{Identifier: "steve.jobs@example.com", Secret: "password"},
}

// CredentialStore keeps the registered credentials in memory. It is filled
// once by its constructor and read-only afterwards, so lookups need no lock.
type CredentialStore struct {
	creds []domain.Credential
}

// NewCredentialStore copies creds into a new store. When an identifier is
// repeated only its first occurrence is kept.
func NewCredentialStore(creds []domain.Credential) *CredentialStore {
	seen := make(map[string]struct{}, len(creds))
	kept := make([]domain.Credential, 0, len(creds))
	for _, c := range creds {
		if _, dup := seen[c.Identifier]; dup {
			continue
		}
		seen[c.Identifier] = struct{}{}
		kept = append(kept, c)
	}
	return &CredentialStore{creds: kept}
}

// FromSeeds hashes every seed with the given bcrypt cost.
func FromSeeds(seeds []Seed, cost int) (*CredentialStore, error) {
	creds, err := HashSeeds(seeds, cost)
	if err != nil {
		return nil, err
	}
	return NewCredentialStore(creds), nil
}

// HashSeeds turns plain-text seeds into credentials.
func HashSeeds(seeds []Seed, cost int) ([]domain.Credential, error) {
	creds := make([]domain.Credential, 0, len(seeds))
	for _, s := range seeds {
		c, err := domain.NewCredential(s.Identifier, s.Secret, cost)
		if err != nil {
			return nil, err
		}
		creds = append(creds, c)
	}
	return creds, nil
}

// Lookup scans the store for an exact identifier match.
func (s *CredentialStore) Lookup(identifier string) (domain.Credential, bool) {
	for _, c := range s.creds {
		if c.Identifier == identifier {
			return c, true
		}
	}
	return domain.Credential{}, false
}

// Len reports how many credentials are registered.
func (s *CredentialStore) Len() int {
	return len(s.creds)
}
