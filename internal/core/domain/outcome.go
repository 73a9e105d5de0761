package domain

import "fmt"

// Status codes reported with an AuthOutcome. Only these two are ever emitted.
const (
	StatusAccepted  = 202
	StatusForbidden = 403
)

// OutcomeKind tags which branch of the credential check produced an outcome.
type OutcomeKind int

const (
	OutcomeUnknownIdentifier OutcomeKind = iota + 1
	OutcomeWrongSecret
	OutcomeSuccess
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeUnknownIdentifier:
		return "unknown_identifier"
	case OutcomeWrongSecret:
		return "wrong_secret"
	case OutcomeSuccess:
		return "success"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// AuthOutcome is the result of checking one LoginAttempt. Rejections are
// ordinary values, not errors.
type AuthOutcome struct {
	Kind         OutcomeKind
	ErrorMessage string
	Attempt      LoginAttempt
}

func UnknownIdentifier(attempt LoginAttempt) AuthOutcome {
	return AuthOutcome{
		Kind:         OutcomeUnknownIdentifier,
		ErrorMessage: fmt.Sprintf("user %s does not exist", attempt.Identifier),
		Attempt:      attempt,
	}
}

func WrongSecret(attempt LoginAttempt) AuthOutcome {
	return AuthOutcome{
		Kind:         OutcomeWrongSecret,
		ErrorMessage: "incorrect password",
		Attempt:      attempt,
	}
}

func Succeeded(attempt LoginAttempt) AuthOutcome {
	return AuthOutcome{Kind: OutcomeSuccess, Attempt: attempt}
}

// StatusCode maps the outcome onto its HTTP-style status.
func (o AuthOutcome) StatusCode() int {
	if o.Kind == OutcomeSuccess {
		return StatusAccepted
	}
	return StatusForbidden
}
