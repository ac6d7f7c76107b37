package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hiteshchoudhary/chai-backend-sub000/database"
	"github.com/hiteshchoudhary/chai-backend-sub000/helpers"
	"github.com/hiteshchoudhary/chai-backend-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var likecollection *mongo.Collection

func InitLikeController() {
	likecollection = database.OpenCollection(database.Client, "likes")
}

// toggleLike deletes the like row when present, creates it when absent.
// The unique index on (liked_by, video, comment, tweet) makes the
// create half safe under concurrency: a losing duplicate insert is read
// as "already liked" and turned into the delete, never a second row.
func toggleLike(ctx context.Context, actor primitive.ObjectID, targetField string, targetID primitive.ObjectID) (liked bool, err error) {
	filter := bson.M{"liked_by": actor, targetField: targetID}

	result, err := likecollection.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	if result.DeletedCount > 0 {
		return false, nil
	}

	like := models.Like{
		ID:        primitive.NewObjectID(),
		LikedBy:   actor,
		CreatedAt: time.Now(),
	}
	switch targetField {
	case "video":
		like.Video = &targetID
	case "comment":
		like.Comment = &targetID
	case "tweet":
		like.Tweet = &targetID
	}

	if _, err := likecollection.InsertOne(ctx, like); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost a race against an identical toggle; resolve as the
			// delete half so two concurrent calls still net to one flip.
			_, delErr := likecollection.DeleteOne(ctx, filter)
			return false, delErr
		}
		return false, err
	}
	return true, nil
}

func respondToggle(c *gin.Context, liked bool, err error) {
	if err != nil {
		helpers.RespondError(c, err)
		return
	}
	message := "unliked successfully"
	if liked {
		message = "liked successfully"
	}
	helpers.RespondJSON(c, http.StatusOK, gin.H{"liked": liked}, message)
}

// ToggleVideoLike likes/unlikes a visible video.
func ToggleVideoLike() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		videoID, err := helpers.ParseObjectID(c.Param("videoId"), "video id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		if _, err := visibleVideo(ctx, videoID, actor, true); err != nil {
			helpers.RespondError(c, err)
			return
		}

		liked, err := toggleLike(ctx, actor, "video", videoID)
		respondToggle(c, liked, err)
	}
}

// ToggleCommentLike likes/unlikes a comment.
func ToggleCommentLike() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		commentID, err := helpers.ParseObjectID(c.Param("commentId"), "comment id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		count, err := commentcollection.CountDocuments(ctx, bson.M{"_id": commentID})
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		if count == 0 {
			helpers.RespondError(c, helpers.ErrNotFound("comment not found"))
			return
		}

		liked, err := toggleLike(ctx, actor, "comment", commentID)
		respondToggle(c, liked, err)
	}
}

// ToggleTweetLike likes/unlikes a tweet.
func ToggleTweetLike() gin.HandlerFunc {
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

		count, err := tweetcollection.CountDocuments(ctx, bson.M{"_id": tweetID})
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		if count == 0 {
			helpers.RespondError(c, helpers.ErrNotFound("tweet not found"))
			return
		}

		liked, err := toggleLike(ctx, actor, "tweet", tweetID)
		respondToggle(c, liked, err)
	}
}

// likedVideosPipeline resolves the actor's video likes into the liked
// videos themselves, owner joined. Rows unpublished since the like
// drop out unless the actor owns them.
func likedVideosPipeline(actor primitive.ObjectID, opts helpers.ListOptions) []bson.M {
	videoPipeline := append(
		[]bson.M{{"$match": publishedOrOwned(actor, true)}},
		lookupOwnerStages("owner", "owner_info")...,
	)
	pipeline := []bson.M{
		{"$match": bson.M{"liked_by": actor, "video": bson.M{"$exists": true}}},
		{"$lookup": bson.M{
			"from":         "videos",
			"localField":   "video",
			"foreignField": "_id",
			"as":           "video_doc",
			"pipeline":     videoPipeline,
		}},
		{"$unwind": "$video_doc"},
		{"$replaceRoot": bson.M{"newRoot": "$video_doc"}},
	}
	pipeline = append(pipeline, pageStages(opts, "created_at", "views")...)
	return pipeline
}

// GetLikedVideos lists the videos the actor has liked.
func GetLikedVideos() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		opts := helpers.ParseListOptions(c)
		cursor, err := likecollection.Aggregate(ctx, likedVideosPipeline(actor, opts))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		videos := []videoRow{}
		if err := cursor.All(ctx, &videos); err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, newPagedResult(videos, len(videos), opts), "liked videos fetched successfully")
	}
}
