package handler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/service"
	"github.com/only/profile-portal/internal/infrastructure/db/memory"
	"github.com/only/profile-portal/internal/web"
)

type stubJournal struct {
	mu      sync.Mutex
	records []domain.AttemptRecord
}

func (j *stubJournal) Record(rec domain.AttemptRecord) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = append(j.records, rec)
}

func (j *stubJournal) all() []domain.AttemptRecord {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]domain.AttemptRecord(nil), j.records...)
}

type stubSessions struct {
	*service.SessionService
	mu      sync.Mutex
	revoked []*domain.Session
}

func (s *stubSessions) Revoke(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked = append(s.revoked, sess)
	return nil
}

func newTestAuthenticator(t *testing.T) *service.Authenticator {
	t.Helper()
	store, err := memory.FromSeeds(memory.Registered, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return service.NewAuthenticator(store, zerolog.Nop())
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	renderer, err := web.NewRenderer(zerolog.Nop())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e := echo.New()
	e.Renderer = renderer
	return e
}

func newTestSessions() *stubSessions {
	return &stubSessions{SessionService: service.NewSessionService("test-secret", time.Hour, 24*time.Hour, nil)}
}
