package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/ports"
)

// AttemptRepository implements ports.AttemptRepository on the login_attempts
// collection.
type AttemptRepository struct {
	coll *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) ports.AttemptRepository {
	return &AttemptRepository{coll: db.Collection(attemptCollection)}
}

func attemptDocument(rec *domain.AttemptRecord) bson.M {
	doc := bson.M{
		"identifier":      rec.Identifier,
		"outcome":         rec.Outcome.String(),
		"status":          rec.Status,
		"remember_secret": rec.RememberSecret,
		"source":          rec.Source,
		"attempted_at":    rec.At.UTC(),
	}
	if rec.ClientIP != "" {
		doc["client_ip"] = rec.ClientIP
	}
	if rec.UserAgent != "" {
		doc["user_agent"] = rec.UserAgent
	}
	return doc
}

// InsertAttempt appends rec to the journal.
func (r *AttemptRepository) InsertAttempt(ctx context.Context, rec *domain.AttemptRecord) error {
	if _, err := r.coll.InsertOne(ctx, attemptDocument(rec)); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}
