package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DatabaseName = "videotube"

var Client *mongo.Client

func InitDB() {
	mongoURI := os.Getenv("MONGODB_URL")
	if mongoURI == "" {
		log.Fatal("❌ [InitDB] MONGODB_URL not found in environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(mongoURI).
		SetServerSelectionTimeout(30 * time.Second).
		SetConnectTimeout(30 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("❌ [InitDB] Error connecting to MongoDB: %v", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		log.Fatalf("❌ [InitDB] MongoDB ping failed: %v", err)
	}

	log.Println("🚀 [InitDB] MongoDB connected successfully")
	Client = client
}

// OpenCollection returns a collection handle from the videotube DB.
func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	if client == nil {
		log.Fatal("❌ [OpenCollection] MongoDB Client is not initialized. Call InitDB() first.")
	}
	return client.Database(DatabaseName).Collection(collectionName)
}
