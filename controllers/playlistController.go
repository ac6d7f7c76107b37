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

var playlistcollection *mongo.Collection

func InitPlaylistController() {
	playlistcollection = database.OpenCollection(database.Client, "playlists")
}

// CreatePlaylist makes an empty, public-by-default playlist.
func CreatePlaylist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		var body struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			IsPublic    *bool  `json:"isPublic"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Name) == "" {
			helpers.RespondError(c, helpers.ErrInvalidArgument("name is required"))
			return
		}

		isPublic := true
		if body.IsPublic != nil {
			isPublic = *body.IsPublic
		}

		now := time.Now()
		playlist := models.Playlist{
			ID:          primitive.NewObjectID(),
			Owner:       actor,
			Name:        strings.TrimSpace(body.Name),
			Description: strings.TrimSpace(body.Description),
			Videos:      []primitive.ObjectID{},
			IsPublic:    isPublic,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := playlistcollection.InsertOne(ctx, playlist); err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to create playlist", err))
			return
		}

		helpers.RespondJSON(c, http.StatusCreated, playlist, "playlist created successfully")
	}
}

// userPlaylistsPipeline lists a user's playlists with the free-text
// filter applied over name/description. Private rows only show to
// their owner.
func userPlaylistsPipeline(userID primitive.ObjectID, opts helpers.ListOptions, actor primitive.ObjectID, hasActor bool) []bson.M {
	match := bson.M{"owner": userID}
	if !hasActor || actor != userID {
		match["is_public"] = true
	}
	if textFilter := opts.TextFilter("name", "description"); textFilter != nil {
		match = bson.M{"$and": []bson.M{match, textFilter}}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$addFields": bson.M{"total_videos": bson.M{"$size": "$videos"}}},
	}
	pipeline = append(pipeline, lookupOwnerStages("owner", "owner_info")...)
	pipeline = append(pipeline, pageStages(opts, "created_at", "name")...)
	return pipeline
}

type playlistRow struct {
	models.Playlist `bson:",inline"`
	OwnerInfo       *ownerInfo `bson:"owner_info,omitempty" json:"ownerInfo,omitempty"`
	TotalVideos     int64      `bson:"total_videos" json:"totalVideos"`
}

// GetUserPlaylists lists the playlists of a user; private playlists
// appear only when the actor asks for their own.
func GetUserPlaylists() gin.HandlerFunc {
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

		cursor, err := playlistcollection.Aggregate(ctx,
			userPlaylistsPipeline(userID, opts, actor, hasActor))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		playlists := []playlistRow{}
		if err := cursor.All(ctx, &playlists); err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, newPagedResult(playlists, len(playlists), opts), "playlists fetched successfully")
	}
}

// playlistByIDPipeline expands one playlist into its visible videos
// (each with owner joined) plus total video and view aggregates. The
// actor's own unpublished videos stay in, everyone else sees published
// rows only.
func playlistByIDPipeline(playlistID primitive.ObjectID, actor primitive.ObjectID, hasActor bool) []bson.M {
	videoPipeline := append(
		[]bson.M{{"$match": publishedOrOwned(actor, hasActor)}},
		lookupOwnerStages("owner", "owner_info")...,
	)
	return []bson.M{
		{"$match": bson.M{"_id": playlistID}},
		{"$lookup": bson.M{
			"from":         "videos",
			"localField":   "videos",
			"foreignField": "_id",
			"as":           "video_docs",
			"pipeline":     videoPipeline,
		}},
		{"$addFields": bson.M{
			"total_videos": bson.M{"$size": "$video_docs"},
			"total_views":  bson.M{"$sum": "$video_docs.views"},
		}},
	}
}

type playlistDetailRow struct {
	models.Playlist `bson:",inline"`
	VideoDocs       []videoRow `bson:"video_docs" json:"videoDocs"`
	TotalVideos     int64      `bson:"total_videos" json:"totalVideos"`
	TotalViews      int64      `bson:"total_views" json:"totalViews"`
}

// GetPlaylistByID fetches a playlist with its videos resolved. Private
// playlists 404 for everyone but their owner.
func GetPlaylistByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		playlistID, err := helpers.ParseObjectID(c.Param("playlistId"), "playlist id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		actor, hasActor := actorID(c)
		cursor, err := playlistcollection.Aggregate(ctx, playlistByIDPipeline(playlistID, actor, hasActor))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		var playlists []playlistDetailRow
		if err := cursor.All(ctx, &playlists); err != nil {
			helpers.RespondError(c, err)
			return
		}
		if len(playlists) == 0 {
			helpers.RespondError(c, helpers.ErrNotFound("playlist not found"))
			return
		}

		playlist := playlists[0]
		if !canView(playlist.IsPublic, playlist.Owner, actor, hasActor) {
			helpers.RespondError(c, helpers.ErrNotFound("playlist not found"))
			return
		}

		helpers.RespondJSON(c, http.StatusOK, playlist, "playlist fetched successfully")
	}
}

func findOwnedPlaylist(ctx context.Context, playlistID primitive.ObjectID, actor primitive.ObjectID) (*models.Playlist, error) {
	var playlist models.Playlist
	err := playlistcollection.FindOne(ctx, bson.M{"_id": playlistID}).Decode(&playlist)
	if err == mongo.ErrNoDocuments {
		return nil, helpers.ErrNotFound("playlist not found")
	}
	if err != nil {
		return nil, err
	}
	if playlist.Owner != actor {
		return nil, helpers.ErrNotFound("playlist not found")
	}
	return &playlist, nil
}

// UpdatePlaylist edits name, description and/or visibility.
func UpdatePlaylist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		playlistID, err := helpers.ParseObjectID(c.Param("playlistId"), "playlist id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		var body struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			IsPublic    *bool  `json:"isPublic"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			helpers.RespondError(c, helpers.ErrInvalidArgument("invalid request body"))
			return
		}

		if _, err := findOwnedPlaylist(ctx, playlistID, actor); err != nil {
			helpers.RespondError(c, err)
			return
		}

		updateObj := bson.M{}
		if strings.TrimSpace(body.Name) != "" {
			updateObj["name"] = strings.TrimSpace(body.Name)
		}
		if strings.TrimSpace(body.Description) != "" {
			updateObj["description"] = strings.TrimSpace(body.Description)
		}
		if body.IsPublic != nil {
			updateObj["is_public"] = *body.IsPublic
		}
		if len(updateObj) == 0 {
			helpers.RespondError(c, helpers.ErrInvalidArgument("nothing to update"))
			return
		}
		updateObj["updated_at"] = time.Now()

		var updated models.Playlist
		err = playlistcollection.FindOneAndUpdate(ctx,
			bson.M{"_id": playlistID},
			bson.M{"$set": updateObj},
			returnUpdated(),
		).Decode(&updated)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, updated, "playlist updated successfully")
	}
}

// DeletePlaylist removes an owned playlist.
func DeletePlaylist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		playlistID, err := helpers.ParseObjectID(c.Param("playlistId"), "playlist id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		if _, err := findOwnedPlaylist(ctx, playlistID, actor); err != nil {
			helpers.RespondError(c, err)
			return
		}

		if _, err := playlistcollection.DeleteOne(ctx, bson.M{"_id": playlistID}); err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to delete playlist", err))
			return
		}

		helpers.RespondJSON(c, http.StatusOK, nil, "playlist deleted successfully")
	}
}

// AddVideoToPlaylist appends a visible video once; duplicates are a 409.
func AddVideoToPlaylist() gin.HandlerFunc {
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
		playlistID, err := helpers.ParseObjectID(c.Param("playlistId"), "playlist id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		playlist, err := findOwnedPlaylist(ctx, playlistID, actor)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		if _, err := visibleVideo(ctx, videoID, actor, true); err != nil {
			helpers.RespondError(c, err)
			return
		}

		if playlist.HasVideo(videoID) {
			helpers.RespondError(c, helpers.ErrConflict("video already in playlist"))
			return
		}

		var updated models.Playlist
		err = playlistcollection.FindOneAndUpdate(ctx,
			bson.M{"_id": playlistID},
			bson.M{
				"$addToSet": bson.M{"videos": videoID},
				"$set":      bson.M{"updated_at": time.Now()},
			},
			returnUpdated(),
		).Decode(&updated)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, updated, "video added to playlist successfully")
	}
}

// RemoveVideoFromPlaylist pulls a video reference out of the playlist.
func RemoveVideoFromPlaylist() gin.HandlerFunc {
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
		playlistID, err := helpers.ParseObjectID(c.Param("playlistId"), "playlist id")
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		playlist, err := findOwnedPlaylist(ctx, playlistID, actor)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		if !playlist.HasVideo(videoID) {
			helpers.RespondError(c, helpers.ErrNotFound("video not in playlist"))
			return
		}

		var updated models.Playlist
		err = playlistcollection.FindOneAndUpdate(ctx,
			bson.M{"_id": playlistID},
			bson.M{
				"$pull": bson.M{"videos": videoID},
				"$set":  bson.M{"updated_at": time.Now()},
			},
			returnUpdated(),
		).Decode(&updated)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, updated, "video removed from playlist successfully")
	}
}
