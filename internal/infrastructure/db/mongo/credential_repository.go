package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/only/profile-portal/internal/core/domain"
)

// CredentialRepository stores registered identities with their bcrypt hashes.
type CredentialRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{coll: db.Collection(credentialCollection), now: time.Now}
}

type credentialDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Identifier string             `bson:"identifier"`
	SecretHash []byte             `bson:"secret_hash"`
	CreatedAt  int64              `bson:"created_at"`
}

func toCredentialDocument(c domain.Credential, createdAt time.Time) credentialDocument {
	return credentialDocument{
		Identifier: c.Identifier,
		SecretHash: c.SecretHash,
		CreatedAt:  createdAt.Unix(),
	}
}

func (d credentialDocument) toDomain() domain.Credential {
	return domain.Credential{Identifier: d.Identifier, SecretHash: d.SecretHash}
}

// Create inserts cred. A duplicate identifier yields domain.ErrDuplicateCredential.
func (r *CredentialRepository) Create(ctx context.Context, cred domain.Credential) error {
	_, err := r.coll.InsertOne(ctx, toCredentialDocument(cred, r.now()))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateCredential
		}
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

// FindAll returns every credential in insertion order.
func (r *CredentialRepository) FindAll(ctx context.Context) ([]domain.Credential, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find credentials: %w", err)
	}
	defer cur.Close(ctx)

	var docs []credentialDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}

	creds := make([]domain.Credential, 0, len(docs))
	for _, d := range docs {
		creds = append(creds, d.toDomain())
	}
	return creds, nil
}
