package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hiteshchoudhary/chai-backend-sub000/helpers"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// channelStatsPipeline folds a channel's videos into totals, joining
// per-video like counts before summing.
func channelStatsPipeline(channelID primitive.ObjectID) []bson.M {
	return []bson.M{
		{"$match": bson.M{"owner": channelID}},
		{"$lookup": bson.M{
			"from":         "likes",
			"localField":   "_id",
			"foreignField": "video",
			"as":           "likes",
		}},
		{"$group": bson.M{
			"_id":          nil,
			"total_videos": bson.M{"$sum": 1},
			"total_views":  bson.M{"$sum": "$views"},
			"total_likes":  bson.M{"$sum": bson.M{"$size": "$likes"}},
		}},
	}
}

type channelStats struct {
	TotalVideos      int64 `bson:"total_videos" json:"totalVideos"`
	TotalViews       int64 `bson:"total_views" json:"totalViews"`
	TotalLikes       int64 `bson:"total_likes" json:"totalLikes"`
	TotalSubscribers int64 `bson:"-" json:"totalSubscribers"`
}

// GetChannelStats answers the actor's channel totals: videos, views,
// video likes, subscribers. A channel with no videos reports zeros.
func GetChannelStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		cursor, err := videocollection.Aggregate(ctx, channelStatsPipeline(actor))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		var rows []channelStats
		if err := cursor.All(ctx, &rows); err != nil {
			helpers.RespondError(c, err)
			return
		}

		stats := channelStats{}
		if len(rows) > 0 {
			stats = rows[0]
		}

		subscribers, err := subscriptioncollection.CountDocuments(ctx, bson.M{"channel": actor})
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		stats.TotalSubscribers = subscribers

		helpers.RespondJSON(c, http.StatusOK, stats, "channel stats fetched successfully")
	}
}

// GetChannelVideos lists the actor's own videos, unpublished included.
func GetChannelVideos() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		opts := helpers.ParseListOptions(c)

		pipeline := []bson.M{{"$match": bson.M{"owner": actor}}}
		pipeline = append(pipeline, likeStages("video", actor, true)...)
		pipeline = append(pipeline, pageStages(opts, "created_at", "views", "title")...)

		cursor, err := videocollection.Aggregate(ctx, pipeline)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		videos := []videoRow{}
		if err := cursor.All(ctx, &videos); err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, newPagedResult(videos, len(videos), opts), "channel videos fetched successfully")
	}
}
