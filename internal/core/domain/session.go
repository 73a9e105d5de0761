package domain

import "time"

// SessionIdentity is what the session coordinator knows about the current
// visitor. The zero value is an anonymous visitor.
type SessionIdentity struct {
	Identifier      string `json:"login"`
	IsAuthenticated bool   `json:"isLogged"`
}

// Authenticated builds the identity handed upward after a successful login.
func Authenticated(identifier string) SessionIdentity {
	return SessionIdentity{Identifier: identifier, IsAuthenticated: true}
}

// Session is an issued login session.
type Session struct {
	ID        string
	Identity  SessionIdentity
	Remember  bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}
