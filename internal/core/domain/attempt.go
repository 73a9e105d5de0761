package domain

import "time"

// Attempt sources.
const (
	SourceWeb = "web"
	SourceAPI = "api"
	SourceCLI = "cli"
)

// AttemptRecord is the journal entry written for every resolved login
// attempt. The secret is never recorded.
type AttemptRecord struct {
	Identifier     string
	Outcome        OutcomeKind
	Status         int
	RememberSecret bool
	Source         string
	ClientIP       string
	UserAgent      string
	At             time.Time
}

// NewAttemptRecord builds a journal entry from a resolved outcome.
func NewAttemptRecord(outcome AuthOutcome, source string, at time.Time) AttemptRecord {
	return AttemptRecord{
		Identifier:     outcome.Attempt.Identifier,
		Outcome:        outcome.Kind,
		Status:         outcome.StatusCode(),
		RememberSecret: outcome.Attempt.RememberSecret,
		Source:         source,
		At:             at.UTC(),
	}
}
