package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hiteshchoudhary/chai-backend-sub000/database"
	"github.com/hiteshchoudhary/chai-backend-sub000/helpers"
	"github.com/hiteshchoudhary/chai-backend-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var tweetcollection *mongo.Collection

func InitTweetController() {
	tweetcollection = database.OpenCollection(database.Client, "tweets")
}

// CreateTweet posts a tweet for the actor.
func CreateTweet() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		var body struct {
			Content string `json:"content"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Content) == "" {
			helpers.RespondError(c, helpers.ErrInvalidArgument("content is required"))
			return
		}

		now := time.Now()
		tweet := models.Tweet{
			ID:        primitive.NewObjectID(),
			Owner:     actor,
			Content:   strings.TrimSpace(body.Content),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := validate.Struct(tweet); err != nil {
			helpers.RespondError(c, helpers.ErrInvalidArgument("content must be at most 280 characters"))
			return
		}

		if _, err := tweetcollection.InsertOne(ctx, tweet); err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to create tweet", err))
			return
		}

		helpers.RespondJSON(c, http.StatusCreated, tweet, "tweet created successfully")
	}
}

type tweetRow struct {
	models.Tweet `bson:",inline"`
	OwnerInfo    *ownerInfo `bson:"owner_info,omitempty" json:"ownerInfo,omitempty"`
	LikeCount    int64      `bson:"like_count" json:"likeCount"`
	IsLiked      bool       `bson:"is_liked" json:"isLiked"`
}

// userTweetsPipeline pages one user's tweets with owner and like
// aggregates joined, newest first.
func userTweetsPipeline(userID primitive.ObjectID, opts helpers.ListOptions, actor primitive.ObjectID, hasActor bool) []bson.M {
	pipeline := []bson.M{{"$match": bson.M{"owner": userID}}}
	pipeline = append(pipeline, lookupOwnerStages("owner", "owner_info")...)
	pipeline = append(pipeline, likeStages("tweet", actor, hasActor)...)
	pipeline = append(pipeline, pageStages(opts, "created_at")...)
	return pipeline
}

// GetUserTweets lists a user's tweets. A nonexistent user reads as an
// empty list, matching the list-endpoint contract.
func GetUserTweets() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		userID, err := helpers.ParseObjectID(c.Param("userId"), "user id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		opts := helpers.ParseListOptions(c)
		actor, hasActor := actorID(c)

		cursor, err := tweetcollection.Aggregate(ctx, userTweetsPipeline(userID, opts, actor, hasActor))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		tweets := []tweetRow{}
		if err := cursor.All(ctx, &tweets); err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, newPagedResult(tweets, len(tweets), opts), "tweets fetched successfully")
	}
}

func findOwnedTweet(ctx context.Context, tweetID primitive.ObjectID, actor primitive.ObjectID) (*models.Tweet, error) {
	var tweet models.Tweet
	err := tweetcollection.FindOne(ctx, bson.M{"_id": tweetID}).Decode(&tweet)
	if err == mongo.ErrNoDocuments {
		return nil, helpers.ErrNotFound("tweet not found")
	}
	if err != nil {
		return nil, err
	}
	if tweet.Owner != actor {
		return nil, helpers.ErrNotFound("tweet not found")
	}
	return &tweet, nil
}

// UpdateTweet edits an owned tweet's content.
func UpdateTweet() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		tweetID, err := helpers.ParseObjectID(c.Param("tweetId"), "tweet id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		var body struct {
			Content string `json:"content"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Content) == "" {
			helpers.RespondError(c, helpers.ErrInvalidArgument("content is required"))
			return
		}

		if _, err := findOwnedTweet(ctx, tweetID, actor); err != nil {
			helpers.RespondError(c, err)
			return
		}

		var updated models.Tweet
		err = tweetcollection.FindOneAndUpdate(ctx,
			bson.M{"_id": tweetID},
			bson.M{"$set": bson.M{"content": strings.TrimSpace(body.Content), "updated_at": time.Now()}},
			returnUpdated(),
		).Decode(&updated)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, updated, "tweet updated successfully")
	}
}

// DeleteTweet removes an owned tweet and cascades to its comments
// (and their likes) and its likes.
func DeleteTweet() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		tweetID, err := helpers.ParseObjectID(c.Param("tweetId"), "tweet id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		if _, err := findOwnedTweet(ctx, tweetID, actor); err != nil {
			helpers.RespondError(c, err)
			return
		}

		if _, err := tweetcollection.DeleteOne(ctx, bson.M{"_id": tweetID}); err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to delete tweet", err))
			return
		}
		if err := cascadeTweetDelete(ctx, tweetID); err != nil {
			helpers.RespondError(c, helpers.ErrInternal("tweet deleted but cleanup failed", err))
			return
		}

		helpers.RespondJSON(c, http.StatusOK, nil, "tweet deleted successfully")
	}
}

func cascadeTweetDelete(ctx context.Context, tweetID primitive.ObjectID) error {
	cursor, err := commentcollection.Find(ctx, bson.M{"tweet": tweetID})
	if err != nil {
		return err
	}
	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return err
	}

	commentIDs := make([]primitive.ObjectID, 0, len(comments))
	for _, comment := range comments {
		commentIDs = append(commentIDs, comment.ID)
	}
	if len(commentIDs) > 0 {
		if _, err := likecollection.DeleteMany(ctx, bson.M{"comment": bson.M{"$in": commentIDs}}); err != nil {
			return err
		}
		if _, err := commentcollection.DeleteMany(ctx, bson.M{"tweet": tweetID}); err != nil {
			return err
		}
	}

	_, err = likecollection.DeleteMany(ctx, bson.M{"tweet": tweetID})
	return err
}
