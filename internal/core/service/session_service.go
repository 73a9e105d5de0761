package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/ports"
)

const (
	defaultSessionTTL  = 12 * time.Hour
	defaultRememberTTL = 30 * 24 * time.Hour
)

type sessionClaims struct {
	Login    string `json:"login"`
	Remember bool   `json:"remember,omitempty"`
	jwt.RegisteredClaims
}

// SessionService issues HS256-signed session tokens and checks them against
// an optional revocation list.
type SessionService struct {
	secret      []byte
	ttl         time.Duration
	rememberTTL time.Duration
	revoker     ports.SessionRevoker
	now         func() time.Time
}

// NewSessionService builds a SessionService. revoker may be nil, in which case
// logout only drops the client's cookie.
func NewSessionService(secret string, ttl, rememberTTL time.Duration, revoker ports.SessionRevoker) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if rememberTTL <= 0 {
		rememberTTL = defaultRememberTTL
	}
	return &SessionService{
		secret:      []byte(secret),
		ttl:         ttl,
		rememberTTL: rememberTTL,
		revoker:     revoker,
		now:         time.Now,
	}
}

// Issue signs a session for an authenticated identity. Remembered sessions
// live for rememberTTL, others for ttl.
func (s *SessionService) Issue(identity domain.SessionIdentity, remember bool) (string, *domain.Session, error) {
	if !identity.IsAuthenticated || identity.Identifier == "" {
		return "", nil, domain.ErrInvalidSession
	}

	ttl := s.ttl
	if remember {
		ttl = s.rememberTTL
	}

	now := s.now().UTC().Truncate(time.Second)
	session := &domain.Session{
		ID:        uuid.NewString(),
		Identity:  identity,
		Remember:  remember,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	claims := sessionClaims{
		Login:    identity.Identifier,
		Remember: remember,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   identity.Identifier,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	return token, session, nil
}

// Resolve validates token and returns the session it carries.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSession, err)
	}
	if claims.Login == "" || claims.ID == "" {
		return nil, domain.ErrInvalidSession
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve session: %w", err)
		}
		if revoked {
			return nil, domain.ErrSessionRevoked
		}
	}

	session := &domain.Session{
		ID:       claims.ID,
		Identity: domain.Authenticated(claims.Login),
		Remember: claims.Remember,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	session.ExpiresAt = claims.ExpiresAt.Time
	return session, nil
}

// Revoke blocks the session until its natural expiry.
func (s *SessionService) Revoke(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return domain.ErrSessionNotFound
	}
	if s.revoker == nil {
		return nil
	}

	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, session.ID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsSessionError reports whether err means "no usable session" rather than an
// infrastructure fault.
func IsSessionError(err error) bool {
	return errors.Is(err, domain.ErrSessionNotFound) ||
		errors.Is(err, domain.ErrInvalidSession) ||
		errors.Is(err, domain.ErrSessionRevoked)
}
