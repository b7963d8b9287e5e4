package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/launchboard/launchboard-backend/internal/models"
	"github.com/launchboard/launchboard-backend/pkg/utils"
)

// MongoFounderStore is the founders collection, keyed by user id.
type MongoFounderStore struct {
	coll *mongo.Collection
	now  nowFunc
}

func NewFounderStore(db *mongo.Database) *MongoFounderStore {
	return &MongoFounderStore{coll: db.Collection("founders"), now: defaultNow}
}

func (s *MongoFounderStore) Get(ctx context.Context, uid string) (*models.Founder, error) {
	var founder models.Founder
	err := s.coll.FindOne(ctx, bson.M{"_id": uid}).Decode(&founder)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &founder, nil
}

// Upsert reads the existing document, merges partial over it and writes the
// merged result back in full. Not atomic at the store layer; concurrent
// upserts for the same uid are last-write-wins.
func (s *MongoFounderStore) Upsert(ctx context.Context, uid string, partial bson.M) error {
	existing := bson.M{}
	err := s.coll.FindOne(ctx, bson.M{"_id": uid}).Decode(&existing)
	if err != nil && err != mongo.ErrNoDocuments {
		return err
	}

	merged := bson.M{}
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}

	// Email is preserved from the existing document when the update does not
	// carry one; createdAt is set exactly once.
	if e, ok := partial["email"].(string); !ok || e == "" {
		if prev, ok := existing["email"]; ok {
			merged["email"] = prev
		} else {
			delete(merged, "email")
		}
	}
	if prev, ok := existing["createdAt"]; ok {
		merged["createdAt"] = prev
	} else {
		merged["createdAt"] = s.now()
	}
	merged["_id"] = uid

	clean := utils.SanitizeDoc(merged)

	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": uid}, clean, options.Replace().SetUpsert(true))
	return err
}
