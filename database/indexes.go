package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// caseInsensitive compares strings ignoring case and diacritics, so the
// username/email uniqueness invariant holds regardless of casing.
var caseInsensitive = options.Collation{Locale: "en", Strength: 2}

// EnsureIndexes creates the unique indexes the write paths depend on.
// The like and subscription toggles rely on these: a concurrent double
// insert loses with a duplicate-key error instead of producing a second
// row.
func EnsureIndexes(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := OpenCollection(client, "users")
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(&caseInsensitive),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(&caseInsensitive),
		},
	})
	if err != nil {
		log.Fatalf("❌ [EnsureIndexes] users indexes: %v", err)
	}

	likes := OpenCollection(client, "likes")
	_, err = likes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "liked_by", Value: 1},
			{Key: "video", Value: 1},
			{Key: "comment", Value: 1},
			{Key: "tweet", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatalf("❌ [EnsureIndexes] likes index: %v", err)
	}

	subscriptions := OpenCollection(client, "subscriptions")
	_, err = subscriptions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "subscriber", Value: 1},
			{Key: "channel", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatalf("❌ [EnsureIndexes] subscriptions index: %v", err)
	}

	videos := OpenCollection(client, "videos")
	_, err = videos.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
	})
	if err != nil {
		log.Fatalf("❌ [EnsureIndexes] videos indexes: %v", err)
	}

	comments := OpenCollection(client, "comments")
	_, err = comments.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "video", Value: 1}}},
		{Keys: bson.D{{Key: "tweet", Value: 1}}},
	})
	if err != nil {
		log.Fatalf("❌ [EnsureIndexes] comments indexes: %v", err)
	}

	log.Println("✅ [EnsureIndexes] indexes ensured")
}
