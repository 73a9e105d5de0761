package service

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"

	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/infrastructure/db/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	store, err := memory.FromSeeds(memory.Registered, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return NewAuthenticator(store, zerolog.Nop())
}

func TestAuthenticator_UnknownIdentifier(t *testing.T) {
	auth := newTestAuthenticator(t)

	for _, secret := range []string{"", "x", "password"} {
		attempt := domain.LoginAttempt{Identifier: "nobody@example.com", Secret: secret}
		out := Await(auth, attempt, 0)

		if out.Kind != domain.OutcomeUnknownIdentifier {
			t.Fatalf("secret %q: expected unknown identifier, got %s", secret, out.Kind)
		}
		if out.StatusCode() != 403 {
			t.Fatalf("expected 403, got %d", out.StatusCode())
		}
		if !strings.Contains(out.ErrorMessage, "nobody@example.com") {
			t.Fatalf("message should reference identifier, got %q", out.ErrorMessage)
		}
		if out.ErrorMessage != "user nobody@example.com does not exist" {
			t.Fatalf("unexpected message: %q", out.ErrorMessage)
		}
	}
}

func TestAuthenticator_WrongSecret(t *testing.T) {
	auth := newTestAuthenticator(t)

	out := Await(auth, domain.LoginAttempt{Identifier: "steve.jobs@example.com", Secret: "passw0rd"}, 0)
	if out.Kind != domain.OutcomeWrongSecret {
		t.Fatalf("expected wrong secret, got %s", out.Kind)
	}
	if out.StatusCode() != 403 {
		t.Fatalf("expected 403, got %d", out.StatusCode())
	}
	if out.ErrorMessage != "incorrect password" {
		t.Fatalf("unexpected message: %q", out.ErrorMessage)
	}
}

func TestAuthenticator_Success(t *testing.T) {
	auth := newTestAuthenticator(t)

	attempt := domain.LoginAttempt{Identifier: "steve.jobs@example.com", Secret: "password", RememberSecret: true}
	out := Await(auth, attempt, 0)

	if out.Kind != domain.OutcomeSuccess {
		t.Fatalf("expected success, got %s", out.Kind)
	}
	if out.StatusCode() != 202 {
		t.Fatalf("expected 202, got %d", out.StatusCode())
	}
	if out.ErrorMessage != "" {
		t.Fatalf("expected no message, got %q", out.ErrorMessage)
	}
	if out.Attempt != attempt {
		t.Fatalf("attempt must be echoed unchanged: %+v", out.Attempt)
	}
}

func TestAuthenticator_OnlyTwoStatusCodes(t *testing.T) {
	auth := newTestAuthenticator(t)

	attempts := []domain.LoginAttempt{
		{Identifier: "", Secret: ""},
		{Identifier: "nobody@example.com", Secret: "x"},
		{Identifier: "steve.jobs@example.com", Secret: ""},
		{Identifier: "steve.jobs@example.com", Secret: "password"},
		{Identifier: "steve.jobs@example.com", Secret: strings.Repeat("p", 100)},
	}
	for _, a := range attempts {
		status := Await(auth, a, 0).StatusCode()
		if status != 202 && status != 403 {
			t.Fatalf("attempt %+v produced status %d", a, status)
		}
	}
}

func TestAuthenticator_WaitsForDelay(t *testing.T) {
	auth := newTestAuthenticator(t)
	const delay = 40 * time.Millisecond

	start := time.Now()
	ch := auth.Authenticate(domain.LoginAttempt{Identifier: "nobody@example.com"}, delay)

	select {
	case out, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed without an outcome")
		}
		if elapsed := time.Since(start); elapsed < delay {
			t.Fatalf("resolved after %s, before the %s delay", elapsed, delay)
		}
		if out.Kind != domain.OutcomeUnknownIdentifier {
			t.Fatalf("unexpected outcome %s", out.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("authenticate never resolved")
	}

	if _, ok := <-ch; ok {
		t.Fatalf("expected exactly one outcome before close")
	}
}

func TestAuthenticator_AbandonedCallDoesNotLeak(t *testing.T) {
	auth := newTestAuthenticator(t)

	_ = auth.Authenticate(domain.LoginAttempt{Identifier: "nobody@example.com"}, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
}
