package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/only/profile-portal/internal/core/domain"
)

// LogRepository writes attempt records to the log. It stands in for MongoDB
// when no database is configured.
type LogRepository struct {
	log zerolog.Logger
}

func NewLogRepository(log zerolog.Logger) *LogRepository {
	return &LogRepository{log: log}
}

func (r *LogRepository) InsertAttempt(_ context.Context, rec *domain.AttemptRecord) error {
	r.log.Info().
		Str("login", rec.Identifier).
		Stringer("outcome", rec.Outcome).
		Int("status", rec.Status).
		Bool("remember", rec.RememberSecret).
		Str("source", rec.Source).
		Str("client_ip", rec.ClientIP).
		Time("attempted_at", rec.At).
		Msg("login attempt")
	return nil
}
