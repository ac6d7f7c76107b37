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

var subscriptioncollection *mongo.Collection

func InitSubscriptionController() {
	subscriptioncollection = database.OpenCollection(database.Client, "subscriptions")
}

// ToggleSubscription subscribes/unsubscribes the actor to a channel.
// Same race posture as the like toggle: the unique index on
// (subscriber, channel) turns a concurrent duplicate insert into the
// delete half of the toggle.
func ToggleSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		channelID, err := helpers.ParseObjectID(c.Param("channelId"), "channel id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		if channelID == actor {
			helpers.RespondError(c, helpers.ErrInvalidArgument("cannot subscribe to your own channel"))
			return
		}

		count, err := usercollection.CountDocuments(ctx, bson.M{"_id": channelID})
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		if count == 0 {
			helpers.RespondError(c, helpers.ErrNotFound("channel not found"))
			return
		}

		filter := bson.M{"subscriber": actor, "channel": channelID}
		result, err := subscriptioncollection.DeleteOne(ctx, filter)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		if result.DeletedCount > 0 {
			helpers.RespondJSON(c, http.StatusOK, gin.H{"subscribed": false}, "unsubscribed successfully")
			return
		}

		subscription := models.Subscription{
			ID:         primitive.NewObjectID(),
			Subscriber: actor,
			Channel:    channelID,
			CreatedAt:  time.Now(),
		}
		if _, err := subscriptioncollection.InsertOne(ctx, subscription); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				_, delErr := subscriptioncollection.DeleteOne(ctx, filter)
				if delErr != nil {
					helpers.RespondError(c, delErr)
					return
				}
				helpers.RespondJSON(c, http.StatusOK, gin.H{"subscribed": false}, "unsubscribed successfully")
				return
			}
			helpers.RespondError(c, helpers.ErrInternal("failed to subscribe", err))
			return
		}

		helpers.RespondJSON(c, http.StatusOK, gin.H{"subscribed": true}, "subscribed successfully")
	}
}

type subscriberRow struct {
	Subscriber struct {
		ownerInfo           `bson:",inline"`
		SubscriberCount     int64 `bson:"subscriber_count" json:"subscriberCount"`
		SubscribedToChannel bool  `bson:"subscribed_to_channel" json:"subscribedToChannel"`
	} `bson:"subscriber_info" json:"subscriber"`
	SubscribedAt time.Time `bson:"created_at" json:"subscribedAt"`
}

// channelSubscribersPipeline lists who subscribes to a channel. Each
// subscriber is joined with their own subscriber count and whether the
// channel subscribes back.
func channelSubscribersPipeline(channelID primitive.ObjectID, opts helpers.ListOptions) []bson.M {
	subscriberPipeline := []bson.M{
		{"$lookup": bson.M{
			"from":         "subscriptions",
			"localField":   "_id",
			"foreignField": "channel",
			"as":           "their_subscribers",
		}},
		{"$addFields": bson.M{
			"subscriber_count": bson.M{"$size": "$their_subscribers"},
			"subscribed_to_channel": bson.M{
				"$in": []interface{}{channelID, "$their_subscribers.subscriber"},
			},
		}},
		{"$project": bson.M{
			"_id":                   1,
			"username":              1,
			"full_name":             1,
			"avatar":                1,
			"subscriber_count":      1,
			"subscribed_to_channel": 1,
		}},
	}

	pipeline := []bson.M{
		{"$match": bson.M{"channel": channelID}},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "subscriber",
			"foreignField": "_id",
			"as":           "subscriber_info",
			"pipeline":     subscriberPipeline,
		}},
		{"$addFields": bson.M{"subscriber_info": bson.M{"$first": "$subscriber_info"}}},
	}
	pipeline = append(pipeline, pageStages(opts, "created_at")...)
	return pipeline
}

// GetChannelSubscribers lists a channel's subscribers.
func GetChannelSubscribers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := requireActor(c); err != nil {
			helpers.RespondError(c, err)
			return
		}

		channelID, err := helpers.ParseObjectID(c.Param("channelId"), "channel id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		opts := helpers.ParseListOptions(c)
		cursor, err := subscriptioncollection.Aggregate(ctx, channelSubscribersPipeline(channelID, opts))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		subscribers := []subscriberRow{}
		if err := cursor.All(ctx, &subscribers); err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, newPagedResult(subscribers, len(subscribers), opts), "subscribers fetched successfully")
	}
}

type subscribedChannelRow struct {
	Channel      ownerInfo `bson:"channel_info" json:"channel"`
	SubscribedAt time.Time `bson:"created_at" json:"subscribedAt"`
}

// subscribedChannelsPipeline lists the channels a user subscribes to.
func subscribedChannelsPipeline(subscriberID primitive.ObjectID, opts helpers.ListOptions) []bson.M {
	pipeline := []bson.M{
		{"$match": bson.M{"subscriber": subscriberID}},
	}
	pipeline = append(pipeline, lookupOwnerStages("channel", "channel_info")...)
	pipeline = append(pipeline, pageStages(opts, "created_at")...)
	return pipeline
}

// GetSubscribedChannels lists the channels a user follows.
func GetSubscribedChannels() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := requireActor(c); err != nil {
			helpers.RespondError(c, err)
			return
		}

		subscriberID, err := helpers.ParseObjectID(c.Param("subscriberId"), "subscriber id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		opts := helpers.ParseListOptions(c)
		cursor, err := subscriptioncollection.Aggregate(ctx, subscribedChannelsPipeline(subscriberID, opts))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		channels := []subscribedChannelRow{}
		if err := cursor.All(ctx, &channels); err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, newPagedResult(channels, len(channels), opts), "subscribed channels fetched successfully")
	}
}
