package domain

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxSecretLen is the longest secret bcrypt hashes without truncating.
const maxSecretLen = 72

// Credential is a registered identity. It is built once at startup and never
// mutated afterwards.
type Credential struct {
	Identifier string
	SecretHash []byte
}

// NewCredential hashes secret with the given bcrypt cost.
func NewCredential(identifier, secret string, cost int) (Credential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return Credential{}, fmt.Errorf("hash secret for %s: %w", identifier, err)
	}
	return Credential{Identifier: identifier, SecretHash: hash}, nil
}

// Matches reports whether secret equals the stored secret.
func (c Credential) Matches(secret string) bool {
	if len(secret) > maxSecretLen {
		return false
	}
	return bcrypt.CompareHashAndPassword(c.SecretHash, []byte(secret)) == nil
}

// LoginAttempt is what a user submits from the login form. It lives for a
// single submission.
type LoginAttempt struct {
	Identifier     string
	Secret         string
	RememberSecret bool
}
