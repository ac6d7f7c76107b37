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

var commentcollection *mongo.Collection

func InitCommentController() {
	commentcollection = database.OpenCollection(database.Client, "comments")
}

type commentRow struct {
	models.Comment `bson:",inline"`
	OwnerInfo      *ownerInfo `bson:"owner_info,omitempty" json:"ownerInfo,omitempty"`
	LikeCount      int64      `bson:"like_count" json:"likeCount"`
	IsLiked        bool       `bson:"is_liked" json:"isLiked"`
}

// commentListPipeline pages the comments under one parent, newest
// first, each with owner and like aggregates joined.
func commentListPipeline(parentField string, parentID primitive.ObjectID, opts helpers.ListOptions, actor primitive.ObjectID, hasActor bool) []bson.M {
	pipeline := []bson.M{{"$match": bson.M{parentField: parentID}}}
	pipeline = append(pipeline, lookupOwnerStages("owner", "owner_info")...)
	pipeline = append(pipeline, likeStages("comment", actor, hasActor)...)
	pipeline = append(pipeline, pageStages(opts, "created_at")...)
	return pipeline
}

// visibleVideo loads a video and applies the visibility rule for the
// actor, answering 404 when it is absent or private.
func visibleVideo(ctx context.Context, videoID primitive.ObjectID, actor primitive.ObjectID, hasActor bool) (*models.Video, error) {
	var video models.Video
	err := videocollection.FindOne(ctx, bson.M{"_id": videoID}).Decode(&video)
	if err == mongo.ErrNoDocuments {
		return nil, helpers.ErrNotFound("video not found")
	}
	if err != nil {
		return nil, err
	}
	if !canView(video.IsPublished, video.Owner, actor, hasActor) {
		return nil, helpers.ErrNotFound("video not found")
	}
	return &video, nil
}

func listComments(c *gin.Context, parentField string, parentID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := helpers.ParseListOptions(c)
	actor, hasActor := actorID(c)

	cursor, err := commentcollection.Aggregate(ctx,
		commentListPipeline(parentField, parentID, opts, actor, hasActor))
	if err != nil {
		helpers.RespondError(c, err)
		return
	}

	comments := []commentRow{}
	if err := cursor.All(ctx, &comments); err != nil {
		helpers.RespondError(c, err)
		return
	}

	helpers.RespondJSON(c, http.StatusOK, newPagedResult(comments, len(comments), opts), "comments fetched successfully")
}

// GetVideoComments lists the comments of a visible video.
func GetVideoComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		videoID, err := helpers.ParseObjectID(c.Param("videoId"), "video id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		actor, hasActor := actorID(c)
		if _, err := visibleVideo(ctx, videoID, actor, hasActor); err != nil {
			helpers.RespondError(c, err)
			return
		}

		listComments(c, "video", videoID)
	}
}

// GetTweetComments lists the comments under a tweet.
func GetTweetComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

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

		listComments(c, "tweet", tweetID)
	}
}

func addComment(c *gin.Context, parentField string, parentID primitive.ObjectID) {
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
	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		Owner:     actor,
		Content:   strings.TrimSpace(body.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	switch parentField {
	case "video":
		comment.Video = &parentID
	case "tweet":
		comment.Tweet = &parentID
	}

	if _, err := commentcollection.InsertOne(ctx, comment); err != nil {
		helpers.RespondError(c, helpers.ErrInternal("failed to add comment", err))
		return
	}

	helpers.RespondJSON(c, http.StatusCreated, comment, "comment added successfully")
}

// AddVideoComment comments on a visible video.
func AddVideoComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		videoID, err := helpers.ParseObjectID(c.Param("videoId"), "video id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		actor, hasActor := actorID(c)
		if _, err := visibleVideo(ctx, videoID, actor, hasActor); err != nil {
			helpers.RespondError(c, err)
			return
		}

		addComment(c, "video", videoID)
	}
}

// AddTweetComment comments on a tweet.
func AddTweetComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

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

		addComment(c, "tweet", tweetID)
	}
}

// findOwnedComment answers 404 for both missing and not-owned rows.
func findOwnedComment(ctx context.Context, commentID primitive.ObjectID, actor primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := commentcollection.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment)
	if err == mongo.ErrNoDocuments {
		return nil, helpers.ErrNotFound("comment not found")
	}
	if err != nil {
		return nil, err
	}
	if comment.Owner != actor {
		return nil, helpers.ErrNotFound("comment not found")
	}
	return &comment, nil
}

// UpdateComment edits an owned comment's content.
func UpdateComment() gin.HandlerFunc {
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

		var body struct {
			Content string `json:"content"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Content) == "" {
			helpers.RespondError(c, helpers.ErrInvalidArgument("content is required"))
			return
		}

		if _, err := findOwnedComment(ctx, commentID, actor); err != nil {
			helpers.RespondError(c, err)
			return
		}

		var updated models.Comment
		err = commentcollection.FindOneAndUpdate(ctx,
			bson.M{"_id": commentID},
			bson.M{"$set": bson.M{"content": strings.TrimSpace(body.Content), "updated_at": time.Now()}},
			returnUpdated(),
		).Decode(&updated)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, updated, "comment updated successfully")
	}
}

// DeleteComment removes an owned comment and any likes on it.
func DeleteComment() gin.HandlerFunc {
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

		if _, err := findOwnedComment(ctx, commentID, actor); err != nil {
			helpers.RespondError(c, err)
			return
		}

		if _, err := commentcollection.DeleteOne(ctx, bson.M{"_id": commentID}); err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to delete comment", err))
			return
		}
		if _, err := likecollection.DeleteMany(ctx, bson.M{"comment": commentID}); err != nil {
			helpers.RespondError(c, helpers.ErrInternal("comment deleted but cleanup failed", err))
			return
		}

		helpers.RespondJSON(c, http.StatusOK, nil, "comment deleted successfully")
	}
}
