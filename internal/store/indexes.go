package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes configures indexes for the startups collection. Called on
// startup from main after Mongo has connected.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("startups")

	indexes := []mongo.IndexModel{
		{
			// Approved directory listing, sorted by name.
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "name", Value: 1},
			},
			Options: options.Index().SetName("idx_status_name"),
		},
		{
			// Admin review queue, oldest pending first.
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "createdAt", Value: 1},
			},
			Options: options.Index().SetName("idx_status_created"),
		},
		{
			// Owner dashboard, most recently touched first.
			Keys: bson.D{
				{Key: "ownerIds", Value: 1},
				{Key: "updatedAt", Value: -1},
			},
			Options: options.Index().SetName("idx_owners_updated"),
		},
		{
			// Slug lookups and uniqueness probes. Not a unique index: drafts
			// by different owners may legitimately share a slug.
			Keys: bson.D{
				{Key: "slug", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("idx_slug_status"),
		},
	}

	for _, m := range indexes {
		if _, err := col.Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
