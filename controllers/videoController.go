package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
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

var videocollection *mongo.Collection

func InitVideoController() {
	videocollection = database.OpenCollection(database.Client, "videos")
}

// videoRow is a denormalized video with its joined relations.
type videoRow struct {
	models.Video `bson:",inline"`
	OwnerInfo    *ownerInfo `bson:"owner_info,omitempty" json:"ownerInfo,omitempty"`
	LikeCount    int64      `bson:"like_count" json:"likeCount"`
	IsLiked      bool       `bson:"is_liked" json:"isLiked"`
}

// videoListPipeline builds the published-feed query: visibility filter,
// free-text match on title/description, owner join, deterministic
// pagination. When ownerFilter names the actor themselves, unpublished
// rows stay visible.
func videoListPipeline(opts helpers.ListOptions, ownerFilter *primitive.ObjectID, actor primitive.ObjectID, hasActor bool) []bson.M {
	match := bson.M{"is_published": true}
	if ownerFilter != nil {
		match["owner"] = *ownerFilter
		if hasActor && *ownerFilter == actor {
			delete(match, "is_published")
		}
	}
	if textFilter := opts.TextFilter("title", "description"); textFilter != nil {
		match = bson.M{"$and": []bson.M{match, textFilter}}
	}

	pipeline := []bson.M{{"$match": match}}
	pipeline = append(pipeline, lookupOwnerStages("owner", "owner_info")...)
	pipeline = append(pipeline, pageStages(opts, "created_at", "views", "duration", "title")...)
	return pipeline
}

// GetAllVideos lists published videos with page/limit/sort/query
// parameters, optionally restricted to one uploader via userId.
func GetAllVideos() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := helpers.ParseListOptions(c)
		actor, hasActor := actorID(c)

		var ownerFilter *primitive.ObjectID
		if userID := strings.TrimSpace(c.Query("userId")); userID != "" {
			parsed, err := helpers.ParseObjectID(userID, "user id")
			if err != nil {
				helpers.RespondError(c, err)
				return
			}
			ownerFilter = &parsed
		}

		cursor, err := videocollection.Aggregate(ctx, videoListPipeline(opts, ownerFilter, actor, hasActor))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		videos := []videoRow{}
		if err := cursor.All(ctx, &videos); err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, newPagedResult(videos, len(videos), opts), "videos fetched successfully")
	}
}

// PublishVideo uploads the media pair, probes the real duration off the
// local file, and creates the video document.
func PublishVideo() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		title := strings.TrimSpace(c.PostForm("title"))
		description := strings.TrimSpace(c.PostForm("description"))
		if title == "" || description == "" {
			helpers.RespondError(c, helpers.ErrInvalidArgument("title and description are required"))
			return
		}

		videoHeader, err := c.FormFile("videoFile")
		if err != nil {
			helpers.RespondError(c, helpers.ErrInvalidArgument("videoFile file is required"))
			return
		}
		videoPath, err := saveTempFile(c, videoHeader)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		defer os.Remove(videoPath)

		duration, err := helpers.ProbeDuration(videoPath)
		if err != nil {
			helpers.RespondError(c, helpers.ErrInvalidArgument("videoFile is not a readable media file"))
			return
		}

		videoURL, err := helpers.Storage.UploadLocalFile(c.Request.Context(), videoPath, "videos")
		if err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to upload video", err))
			return
		}

		thumbnailURL, err := uploadFormFile(c, "thumbnail", "thumbnails", true)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		now := time.Now()
		video := models.Video{
			ID:          primitive.NewObjectID(),
			Owner:       actor,
			VideoFile:   videoURL,
			Thumbnail:   thumbnailURL,
			Title:       title,
			Description: description,
			Duration:    duration,
			Views:       0,
			IsPublished: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := videocollection.InsertOne(ctx, video); err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to publish video", err))
			return
		}

		log.Printf("✅ [PublishVideo] video %s published by %s\n", video.ID.Hex(), actor.Hex())
		helpers.RespondJSON(c, http.StatusCreated, video, "video published successfully")
	}
}

// videoByIDPipeline enriches a single video with its owner, like
// aggregates, and the owner's subscriber aggregates.
func videoByIDPipeline(videoID primitive.ObjectID, actor primitive.ObjectID, hasActor bool) []bson.M {
	isSubscribed := interface{}(false)
	if hasActor {
		isSubscribed = bson.M{"$in": []interface{}{actor, "$subscribers.subscriber"}}
	}

	pipeline := []bson.M{{"$match": bson.M{"_id": videoID}}}
	pipeline = append(pipeline, likeStages("video", actor, hasActor)...)
	pipeline = append(pipeline,
		bson.M{"$lookup": bson.M{
			"from":         "subscriptions",
			"localField":   "owner",
			"foreignField": "channel",
			"as":           "subscribers",
		}},
		bson.M{"$addFields": bson.M{
			"subscriber_count": bson.M{"$size": "$subscribers"},
			"is_subscribed":    isSubscribed,
		}},
		bson.M{"$project": bson.M{"subscribers": 0}},
	)
	pipeline = append(pipeline, lookupOwnerStages("owner", "owner_info")...)
	return pipeline
}

type videoDetailRow struct {
	videoRow        `bson:",inline"`
	SubscriberCount int64 `bson:"subscriber_count" json:"subscriberCount"`
	IsSubscribed    bool  `bson:"is_subscribed" json:"isSubscribed"`
}

// GetVideoByID fetches one video. Unpublished videos 404 for everyone
// but their owner. A successful authenticated fetch counts a view and
// lands in the actor's watch history.
func GetVideoByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		videoID, err := helpers.ParseObjectID(c.Param("videoId"), "video id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		actor, hasActor := actorID(c)
		cursor, err := videocollection.Aggregate(ctx, videoByIDPipeline(videoID, actor, hasActor))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		var videos []videoDetailRow
		if err := cursor.All(ctx, &videos); err != nil {
			helpers.RespondError(c, err)
			return
		}
		if len(videos) == 0 {
			helpers.RespondError(c, helpers.ErrNotFound("video not found"))
			return
		}

		video := videos[0]
		if !canView(video.IsPublished, video.Owner, actor, hasActor) {
			helpers.RespondError(c, helpers.ErrNotFound("video not found"))
			return
		}

		if countView(ctx, videoID) {
			video.Views++
		}

		if hasActor {
			_, _ = usercollection.UpdateOne(ctx, bson.M{"_id": actor}, bson.M{
				"$addToSet": bson.M{"watch_history": videoID},
			})
		}

		helpers.RespondJSON(c, http.StatusOK, video, "video fetched successfully")
	}
}

// countView bumps the view counter. A failure is logged, not surfaced:
// the read must not fail because its side effect did.
func countView(ctx context.Context, videoID primitive.ObjectID) bool {
	_, err := videocollection.UpdateOne(ctx, bson.M{"_id": videoID}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		log.Printf("❌ [GetVideoByID] view count failed for %s: %v\n", videoID.Hex(), err)
		return false
	}
	return true
}

// findOwnedVideo loads a video and enforces that actor owns it.
// Missing and not-owned both read as 404.
func findOwnedVideo(ctx context.Context, videoID primitive.ObjectID, actor primitive.ObjectID) (*models.Video, error) {
	var video models.Video
	err := videocollection.FindOne(ctx, bson.M{"_id": videoID}).Decode(&video)
	if err == mongo.ErrNoDocuments {
		return nil, helpers.ErrNotFound("video not found")
	}
	if err != nil {
		return nil, err
	}
	if video.Owner != actor {
		return nil, helpers.ErrNotFound("video not found")
	}
	return &video, nil
}

// UpdateVideo changes title, description and/or thumbnail.
func UpdateVideo() gin.HandlerFunc {
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

		if _, err := findOwnedVideo(ctx, videoID, actor); err != nil {
			helpers.RespondError(c, err)
			return
		}

		updateObj := bson.M{}
		if title := strings.TrimSpace(c.PostForm("title")); title != "" {
			updateObj["title"] = title
		}
		if description := strings.TrimSpace(c.PostForm("description")); description != "" {
			updateObj["description"] = description
		}

		thumbnailURL, err := uploadFormFile(c, "thumbnail", "thumbnails", false)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		if thumbnailURL != "" {
			updateObj["thumbnail"] = thumbnailURL
		}

		if len(updateObj) == 0 {
			helpers.RespondError(c, helpers.ErrInvalidArgument("nothing to update"))
			return
		}
		updateObj["updated_at"] = time.Now()

		var updated models.Video
		err = videocollection.FindOneAndUpdate(ctx,
			bson.M{"_id": videoID},
			bson.M{"$set": updateObj},
			returnUpdated(),
		).Decode(&updated)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, updated, "video updated successfully")
	}
}

// DeleteVideo removes the video and cascades: its comments, likes on
// the video and on those comments, and every playlist reference.
func DeleteVideo() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
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

		if _, err := findOwnedVideo(ctx, videoID, actor); err != nil {
			helpers.RespondError(c, err)
			return
		}

		if _, err := videocollection.DeleteOne(ctx, bson.M{"_id": videoID}); err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to delete video", err))
			return
		}

		if err := cascadeVideoDelete(ctx, videoID); err != nil {
			// Video row is gone; report the cascade failure rather than
			// pretend the references were cleaned up.
			helpers.RespondError(c, helpers.ErrInternal("video deleted but cleanup failed", err))
			return
		}

		log.Printf("✅ [DeleteVideo] video %s deleted by %s\n", videoID.Hex(), actor.Hex())
		helpers.RespondJSON(c, http.StatusOK, nil, "video deleted successfully")
	}
}

// cascadeVideoDelete removes everything referencing a deleted video:
// comment rows (and likes on them), like rows, playlist entries and
// watch-history entries.
func cascadeVideoDelete(ctx context.Context, videoID primitive.ObjectID) error {
	cursor, err := commentcollection.Find(ctx, bson.M{"video": videoID})
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
		if _, err := commentcollection.DeleteMany(ctx, bson.M{"video": videoID}); err != nil {
			return err
		}
	}

	if _, err := likecollection.DeleteMany(ctx, bson.M{"video": videoID}); err != nil {
		return err
	}
	if _, err := playlistcollection.UpdateMany(ctx, bson.M{"videos": videoID},
		bson.M{"$pull": bson.M{"videos": videoID}}); err != nil {
		return err
	}
	if _, err := usercollection.UpdateMany(ctx, bson.M{"watch_history": videoID},
		bson.M{"$pull": bson.M{"watch_history": videoID}}); err != nil {
		return err
	}
	return nil
}

// TogglePublishStatus flips the publish flag on an owned video.
func TogglePublishStatus() gin.HandlerFunc {
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

		video, err := findOwnedVideo(ctx, videoID, actor)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		var updated models.Video
		err = videocollection.FindOneAndUpdate(ctx,
			bson.M{"_id": videoID},
			bson.M{"$set": bson.M{"is_published": !video.IsPublished, "updated_at": time.Now()}},
			returnUpdated(),
		).Decode(&updated)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, updated, "publish status toggled successfully")
	}
}
