package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/launchboard/launchboard-backend/internal/models"
)

// ErrNotFound is returned when an operation targets a document that does not
// exist. Plain reads report absence as (nil, nil) instead; only mutations use
// this sentinel so callers can distinguish "gone" from transient failures.
var ErrNotFound = errors.New("store: document not found")

// ErrSlugExhausted is returned when slug resolution gives up after the
// iteration cap (densely occupied suffix space).
var ErrSlugExhausted = errors.New("store: could not allocate unique slug")

// FounderStore persists founder profile documents, keyed by user id.
type FounderStore interface {
	// Get returns the founder profile for uid, or (nil, nil) when absent.
	Get(ctx context.Context, uid string) (*models.Founder, error)
	// Upsert merges partial over the existing document (if any) and writes
	// the full result back. createdAt is preserved from the existing
	// document, as is email when partial does not supply one. This is a
	// read-modify-write in application code, not an atomic merge.
	Upsert(ctx context.Context, uid string, partial bson.M) error
}

// StartupStore persists startup listing documents and their lifecycle.
type StartupStore interface {
	// Create inserts a new startup and returns its id. The caller is
	// responsible for having set Status to pending; the store only stamps
	// createdAt and updatedAt.
	Create(ctx context.Context, s *models.Startup) (string, error)
	// Update merges partial into the existing document ($set, not replace)
	// and forces updatedAt to now.
	Update(ctx context.Context, id string, partial bson.M) error
	// Approve and Reject mutate status only; no other field changes and
	// updatedAt is left untouched.
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error

	FetchApproved(ctx context.Context, opts ListOptions) ([]models.Startup, error)
	FetchBySlug(ctx context.Context, slug string) (*models.Startup, error)
	FetchByID(ctx context.Context, id string) (*models.Startup, error)
	FetchPending(ctx context.Context) ([]models.Startup, error)
	FetchOwned(ctx context.Context, uid string) ([]models.Startup, error)

	// Upvote atomically records uid's vote and returns the resulting
	// document. Voting twice is a no-op; a missing startup is ErrNotFound.
	Upvote(ctx context.Context, id, uid string) (*models.Startup, error)

	SlugProber
}

// SlugProber answers whether a slug candidate is already taken, either by an
// approved startup or by any startup owned by uid.
type SlugProber interface {
	SlugInUse(ctx context.Context, slug, uid string) (bool, error)
}

// ListOptions narrows FetchApproved results. All filters are applied
// in-memory after the collection fetch; acceptable only while the directory
// is small (avoids multi-field indexes early on).
type ListOptions struct {
	Search   string // case-insensitive substring match on name or oneLiner
	Stage    string
	Country  string // ISO alpha-2 countryCode
	Category string
}

// Stores bundles the Mongo-backed store implementations.
type Stores struct {
	Founders FounderStore
	Startups StartupStore
}

// New constructs the stores against an injected database handle.
func New(db *mongo.Database) *Stores {
	return &Stores{
		Founders: NewFounderStore(db),
		Startups: NewStartupStore(db),
	}
}
