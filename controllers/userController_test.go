package controllers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	if hashed == "correct horse battery" {
		t.Fatal("password stored in the clear")
	}
	if !VerifyPassword(hashed, "correct horse battery") {
		t.Fatal("expected matching password to verify")
	}
	if VerifyPassword(hashed, "wrong password") {
		t.Fatal("expected mismatch to fail")
	}
}

func TestChannelProfilePipelineSubscribedFlag(t *testing.T) {
	anonymous := channelProfilePipeline("hitesh", primitive.NilObjectID, false)

	match := anonymous[0]["$match"].(bson.M)
	if match["username"] != "hitesh" {
		t.Fatalf("expected username match got %v", match)
	}

	var addFields bson.M
	for _, stage := range anonymous {
		if fields, ok := stage["$addFields"].(bson.M); ok {
			addFields = fields
		}
	}
	if addFields == nil {
		t.Fatal("expected computed fields stage")
	}
	if addFields["is_subscribed"] != false {
		t.Fatalf("anonymous is_subscribed must be constant false, got %v", addFields["is_subscribed"])
	}

	actor := primitive.NewObjectID()
	signed := channelProfilePipeline("hitesh", actor, true)
	for _, stage := range signed {
		if fields, ok := stage["$addFields"].(bson.M); ok {
			addFields = fields
		}
	}
	if _, ok := addFields["is_subscribed"].(bson.M); !ok {
		t.Fatalf("expected $in expression for is_subscribed, got %v", addFields["is_subscribed"])
	}
}

func TestWatchHistoryPipelineKeepsStoredOrder(t *testing.T) {
	pipeline := watchHistoryPipeline(primitive.NewObjectID())

	lookup := pipeline[1]["$lookup"].(bson.M)
	if lookup["let"].(bson.M)["history"] != "$watch_history" {
		t.Fatalf("expected the stored array bound for the join, got %v", lookup["let"])
	}

	inner := lookup["pipeline"].([]bson.M)

	match := inner[0]["$match"].(bson.M)
	expr := match["$expr"].(bson.M)
	if _, ok := expr["$in"]; !ok {
		t.Fatalf("expected membership match over the stored array, got %v", expr)
	}

	var sawIndex, sawSort bool
	for _, stage := range inner {
		if fields, ok := stage["$addFields"].(bson.M); ok {
			if idx, ok := fields["history_index"].(bson.M); ok {
				if _, ok := idx["$indexOfArray"]; ok {
					sawIndex = true
				}
			}
		}
		if sort, ok := stage["$sort"].(bson.M); ok {
			if sort["history_index"] == 1 {
				sawSort = true
			}
		}
	}
	if !sawIndex || !sawSort {
		t.Fatalf("expected rows re-sorted by stored position, got %v", inner)
	}
}
