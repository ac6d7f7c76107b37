package controllers

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCascadeVideoDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("removes comments, likes and references", func(mt *mtest.T) {
		commentcollection = mt.Coll
		likecollection = mt.Coll
		playlistcollection = mt.Coll
		usercollection = mt.Coll

		videoID := primitive.NewObjectID()
		commentID := primitive.NewObjectID()
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: commentID},
				{Key: "owner", Value: primitive.NewObjectID()},
				{Key: "video", Value: videoID},
				{Key: "content", Value: "first"},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		if err := cascadeVideoDelete(context.Background(), videoID); err != nil {
			t.Fatalf("cascade: %v", err)
		}

		want := []string{"find", "delete", "delete", "delete", "update", "update"}
		for i, name := range want {
			ev := mt.GetStartedEvent()
			if ev == nil {
				t.Fatalf("expected %d commands, got %d", len(want), i)
			}
			if ev.CommandName != name {
				t.Fatalf("command %d: expected %s got %s", i, name, ev.CommandName)
			}
			// Comment likes must go before the comment rows themselves.
			if i == 1 {
				q := ev.Command.Lookup("deletes").Array().Index(0).Value().Document().Lookup("q", "comment")
				if q.Validate() != nil {
					t.Fatalf("first delete should target likes by comment, got %s", ev.Command)
				}
			}
		}
	})

	mt.Run("no comments skips the comment cleanup", func(mt *mtest.T) {
		commentcollection = mt.Coll
		likecollection = mt.Coll
		playlistcollection = mt.Coll
		usercollection = mt.Coll

		videoID := primitive.NewObjectID()
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		if err := cascadeVideoDelete(context.Background(), videoID); err != nil {
			t.Fatalf("cascade: %v", err)
		}

		want := []string{"find", "delete", "update", "update"}
		for i, name := range want {
			ev := mt.GetStartedEvent()
			if ev == nil {
				t.Fatalf("expected %d commands, got %d", len(want), i)
			}
			if ev.CommandName != name {
				t.Fatalf("command %d: expected %s got %s", i, name, ev.CommandName)
			}
		}
	})
}

func TestCountView(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success bumps", func(mt *mtest.T) {
		videocollection = mt.Coll
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		if !countView(context.Background(), primitive.NewObjectID()) {
			t.Fatal("expected countView to report success")
		}
	})

	mt.Run("failure is logged, not surfaced", func(mt *mtest.T) {
		videocollection = mt.Coll
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11601,
			Name:    "Interrupted",
			Message: "operation was interrupted",
		}))

		var buf bytes.Buffer
		old := log.Writer()
		log.SetOutput(&buf)
		defer log.SetOutput(old)

		if countView(context.Background(), primitive.NewObjectID()) {
			t.Fatal("expected countView to report failure")
		}
		if !strings.Contains(buf.String(), "view count failed") {
			t.Fatalf("expected the failure in the log, got %q", buf.String())
		}
	})
}
