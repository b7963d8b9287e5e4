package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/launchboard/launchboard-backend/internal/models"
	"github.com/launchboard/launchboard-backend/pkg/utils"
)

type nowFunc func() time.Time

func defaultNow() time.Time { return time.Now().UTC() }

// MongoStartupStore is the startups collection.
type MongoStartupStore struct {
	coll *mongo.Collection
	now  nowFunc
}

func NewStartupStore(db *mongo.Database) *MongoStartupStore {
	return &MongoStartupStore{coll: db.Collection("startups"), now: defaultNow}
}

func (s *MongoStartupStore) Create(ctx context.Context, startup *models.Startup) (string, error) {
	if startup.ID.IsZero() {
		startup.ID = primitive.NewObjectID()
	}
	now := s.now()
	startup.CreatedAt = now
	startup.UpdatedAt = now

	doc, err := toDoc(startup)
	if err != nil {
		return "", err
	}

	if _, err := s.coll.InsertOne(ctx, utils.SanitizeDoc(doc)); err != nil {
		return "", err
	}
	return startup.ID.Hex(), nil
}

func (s *MongoStartupStore) Update(ctx context.Context, id string, partial bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	clean := utils.SanitizeDoc(partial)
	clean["updatedAt"] = s.now()

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": clean})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Approve and Reject mutate status only. updatedAt is deliberately left
// alone so moderation does not reshuffle the owner's updatedAt-sorted list.

func (s *MongoStartupStore) Approve(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, models.StatusApproved)
}

func (s *MongoStartupStore) Reject(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, models.StatusRejected)
}

func (s *MongoStartupStore) setStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStartupStore) FetchApproved(ctx context.Context, opts ListOptions) ([]models.Startup, error) {
	items, err := s.fetch(ctx,
		bson.M{"status": models.StatusApproved},
		options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	return FilterApproved(items, opts), nil
}

func (s *MongoStartupStore) FetchBySlug(ctx context.Context, slug string) (*models.Startup, error) {
	var startup models.Startup
	err := s.coll.FindOne(ctx, bson.M{"slug": slug, "status": models.StatusApproved}).Decode(&startup)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &startup, nil
}

func (s *MongoStartupStore) FetchByID(ctx context.Context, id string) (*models.Startup, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var startup models.Startup
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&startup)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &startup, nil
}

// FetchPending returns the admin review queue, oldest first.
func (s *MongoStartupStore) FetchPending(ctx context.Context) ([]models.Startup, error) {
	return s.fetch(ctx,
		bson.M{"status": models.StatusPending},
		options.Find().SetSort(bson.M{"createdAt": 1}))
}

// FetchOwned returns uid's startups, most recently touched first.
func (s *MongoStartupStore) FetchOwned(ctx context.Context, uid string) ([]models.Startup, error) {
	return s.fetch(ctx,
		bson.M{"ownerIds": uid},
		options.Find().SetSort(bson.M{"updatedAt": -1}))
}

func (s *MongoStartupStore) fetch(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Startup, error) {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Startup
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Upvote records uid's vote in a single conditional update so concurrent
// votes from distinct users never lose increments and upvotesCount always
// equals len(upvoterIds). A second vote from the same uid does not match the
// filter and is treated as success.
func (s *MongoStartupStore) Upvote(ctx context.Context, id, uid string) (*models.Startup, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var updated models.Startup
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "upvoterIds": bson.M{"$ne": uid}},
		bson.M{
			"$addToSet": bson.M{"upvoterIds": uid},
			"$inc":      bson.M{"upvotesCount": 1},
			"$set":      bson.M{"updatedAt": s.now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// No match: either uid already voted (idempotent no-op) or the startup
	// is gone.
	existing, err := s.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	return existing, nil
}

// SlugInUse probes the two uniqueness scopes concurrently: approved startups
// (public URLs) and startups owned by uid (a single owner's drafts must not
// share a slug either).
func (s *MongoStartupStore) SlugInUse(ctx context.Context, slug, uid string) (bool, error) {
	type probe struct {
		taken bool
		err   error
	}

	results := make(chan probe, 2)
	scopes := []bson.M{
		{"slug": slug, "status": models.StatusApproved},
		{"slug": slug, "ownerIds": uid},
	}
	for _, filter := range scopes {
		go func(filter bson.M) {
			n, err := s.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
			results <- probe{taken: n > 0, err: err}
		}(filter)
	}

	taken := false
	for i := 0; i < len(scopes); i++ {
		p := <-results
		if p.err != nil {
			return false, p.err
		}
		if p.taken {
			taken = true
		}
	}
	return taken, nil
}

func toDoc(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
