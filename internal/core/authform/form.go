// Package authform holds the login form's state machine independently of how
// it is drawn. The web handlers and the terminal UI both drive it.
package authform

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/ports"
)

// DefaultDelay is the simulated network latency applied to every submission.
const DefaultDelay = time.Second

var (
	// ErrSubmitting is returned when Submit is called while a previous
	// submission is still waiting for its outcome.
	ErrSubmitting = errors.New("form is already submitting")
	// ErrUnexpectedOutcome is returned for an outcome kind the form does not
	// know how to present.
	ErrUnexpectedOutcome = errors.New("unexpected authentication outcome")
)

// Field names a text field of the form.
type Field string

const (
	FieldLogin    Field = "login"
	FieldPassword Field = "password"
)

// RuleRequired is the only client-side rule.
const RuleRequired = "required"

// Input is what the form collects on submit.
type Input struct {
	Login        string `form:"login"        json:"login"        validate:"required"`
	Password     string `form:"password"     json:"password"     validate:"required"`
	SavePassword bool   `form:"savePassword" json:"savePassword"`
}

var fieldsByStructName = map[string]Field{
	"Login":    FieldLogin,
	"Password": FieldPassword,
}

// ServerError is the form-level notice shown after a rejected attempt.
type ServerError struct {
	Status  bool
	Message string
}

// State is a snapshot of the form.
type State struct {
	Submitting  bool
	FieldErrors map[Field]string
	ServerError ServerError
}

// HasFieldError reports whether field failed validation.
func (s State) HasFieldError(field Field) bool {
	_, ok := s.FieldErrors[field]
	return ok
}

// Notifier receives the authenticated identity after a successful login.
type Notifier func(identity domain.SessionIdentity)

type Option func(*Form)

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(f *Form) { f.delay = d }
}

// WithValidator replaces the shared validator instance.
func WithValidator(v *validator.Validate) Option {
	return func(f *Form) { f.validate = v }
}

var defaultValidator = validator.New(validator.WithRequiredStructEnabled())

// Form is one login form instance. At most one submission is in flight at a
// time.
type Form struct {
	auth     ports.Authenticator
	notify   Notifier
	delay    time.Duration
	validate *validator.Validate

	mu          sync.Mutex
	submitting  bool
	fieldErrors map[Field]string
	serverError ServerError
}

func New(auth ports.Authenticator, notify Notifier, opts ...Option) *Form {
	f := &Form{
		auth:     auth,
		notify:   notify,
		delay:    DefaultDelay,
		validate: defaultValidator,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current snapshot.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

// Submit validates in and, when both text fields are filled, waits for the
// authenticator's answer. Empty fields never reach the authenticator.
func (f *Form) Submit(in Input) (State, error) {
	f.mu.Lock()
	if f.submitting {
		st := f.snapshot()
		f.mu.Unlock()
		return st, ErrSubmitting
	}

	f.fieldErrors = f.check(in)
	if len(f.fieldErrors) > 0 {
		st := f.snapshot()
		f.mu.Unlock()
		return st, nil
	}

	f.submitting = true
	delay := f.delay
	f.mu.Unlock()

	outcome := <-f.auth.Authenticate(domain.LoginAttempt{
		Identifier:     in.Login,
		Secret:         in.Password,
		RememberSecret: in.SavePassword,
	}, delay)

	f.mu.Lock()
	f.submitting = false

	var (
		err      error
		loggedIn bool
	)
	switch outcome.Kind {
	case domain.OutcomeUnknownIdentifier, domain.OutcomeWrongSecret:
		f.serverError = ServerError{Status: true, Message: outcome.ErrorMessage}
	case domain.OutcomeSuccess:
		f.serverError = ServerError{}
		loggedIn = true
	default:
		err = fmt.Errorf("%w: %s (status %d)", ErrUnexpectedOutcome, outcome.Kind, outcome.StatusCode())
	}
	st := f.snapshot()
	f.mu.Unlock()

	if loggedIn && f.notify != nil {
		f.notify(domain.Authenticated(outcome.Attempt.Identifier))
	}
	return st, err
}

func (f *Form) check(in Input) map[Field]string {
	errs := make(map[Field]string)
	if err := f.validate.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return errs
		}
		for _, fe := range ve {
			if field, ok := fieldsByStructName[fe.StructField()]; ok {
				errs[field] = fe.Tag()
			}
		}
	}
	return errs
}

func (f *Form) snapshot() State {
	fe := make(map[Field]string, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		fe[k] = v
	}
	return State{
		Submitting:  f.submitting,
		FieldErrors: fe,
		ServerError: f.serverError,
	}
}
