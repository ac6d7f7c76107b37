package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/hiteshchoudhary/chai-backend-sub000/database"
	"github.com/hiteshchoudhary/chai-backend-sub000/helpers"
	"github.com/hiteshchoudhary/chai-backend-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var usercollection *mongo.Collection

func InitUserController() {
	usercollection = database.OpenCollection(database.Client, "users")
}

var validate = validator.New()

// caseInsensitive matches the collation of the unique username/email
// indexes, so duplicate checks agree with what an insert would hit.
var caseInsensitive = options.Collation{Locale: "en", Strength: 2}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func VerifyPassword(hashedPassword string, providedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword)) == nil
}

func setAuthCookies(c *gin.Context, accessToken string, refreshToken string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("accessToken", accessToken, int(helpers.AccessTokenTTL.Seconds()), "/", "", true, true)
	c.SetCookie("refreshToken", refreshToken, int(helpers.RefreshTokenTTL.Seconds()), "/", "", true, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", true, true)
	c.SetCookie("refreshToken", "", -1, "/", "", true, true)
}

// RegisterUser creates an account from a multipart form: text fields
// plus a required avatar and optional cover image.
func RegisterUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user := models.User{
			Username: strings.ToLower(strings.TrimSpace(c.PostForm("username"))),
			Email:    strings.ToLower(strings.TrimSpace(c.PostForm("email"))),
			FullName: strings.TrimSpace(c.PostForm("fullName")),
			Password: c.PostForm("password"),
		}

		if err := validate.Struct(user); err != nil {
			helpers.RespondError(c, helpers.ErrInvalidArgument("all fields are required: "+err.Error()))
			return
		}

		count, err := usercollection.CountDocuments(ctx,
			bson.M{"$or": []bson.M{{"username": user.Username}, {"email": user.Email}}},
			options.Count().SetCollation(&caseInsensitive),
		)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		if count > 0 {
			helpers.RespondError(c, helpers.ErrConflict("user with email or username already exists"))
			return
		}

		avatarURL, err := uploadFormFile(c, "avatar", "avatars", true)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		coverImageURL, err := uploadFormFile(c, "coverImage", "covers", false)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		hashedPassword, err := HashPassword(user.Password)
		if err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to create user", err))
			return
		}

		now := time.Now()
		user.ID = primitive.NewObjectID()
		user.Password = hashedPassword
		user.Avatar = avatarURL
		user.CoverImage = coverImageURL
		user.WatchHistory = []primitive.ObjectID{}
		user.CreatedAt = now
		user.UpdatedAt = now

		if _, err := usercollection.InsertOne(ctx, user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				helpers.RespondError(c, helpers.ErrConflict("user with email or username already exists"))
				return
			}
			helpers.RespondError(c, helpers.ErrInternal("failed to create user", err))
			return
		}

		log.Printf("✅ [RegisterUser] user %s registered\n", user.Username)
		helpers.RespondJSON(c, http.StatusCreated, user.Public(), "user registered successfully")
	}
}

// LoginUser accepts username or email plus password and answers with a
// token pair, both in the body and as httpOnly cookies.
func LoginUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var body struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BindJSON(&body); err != nil {
			helpers.RespondError(c, helpers.ErrInvalidArgument("invalid request body"))
			return
		}
		if body.Username == "" && body.Email == "" {
			helpers.RespondError(c, helpers.ErrInvalidArgument("username or email is required"))
			return
		}

		filter := bson.M{"$or": []bson.M{
			{"username": strings.ToLower(body.Username)},
			{"email": strings.ToLower(body.Email)},
		}}

		var user models.User
		err := usercollection.FindOne(ctx, filter,
			options.FindOne().SetCollation(&caseInsensitive)).Decode(&user)
		if err != nil {
			helpers.RespondError(c, helpers.ErrUnauthorized("invalid user credentials"))
			return
		}

		if !VerifyPassword(user.Password, body.Password) {
			helpers.RespondError(c, helpers.ErrUnauthorized("invalid user credentials"))
			return
		}

		accessToken, refreshToken, err := helpers.GenerateAllTokens(user.ID.Hex(), user.Username, user.Email)
		if err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to generate tokens", err))
			return
		}

		if err := helpers.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to persist session", err))
			return
		}

		setAuthCookies(c, accessToken, refreshToken)
		helpers.RespondJSON(c, http.StatusOK, gin.H{
			"user":         user.Public(),
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		}, "user logged in successfully")
	}
}

// LogoutUser drops the stored refresh token and clears cookies.
func LogoutUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		if err := helpers.UpdateRefreshToken(ctx, actor, ""); err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to log out", err))
			return
		}

		clearAuthCookies(c)
		helpers.RespondJSON(c, http.StatusOK, nil, "user logged out successfully")
	}
}

// RefreshAccessToken rotates the token pair. The incoming refresh token
// must match the single live value stored on the user.
func RefreshAccessToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		incoming, _ := c.Cookie("refreshToken")
		if incoming == "" {
			var body struct {
				RefreshToken string `json:"refreshToken"`
			}
			if err := c.ShouldBindJSON(&body); err == nil {
				incoming = body.RefreshToken
			}
		}
		if incoming == "" {
			helpers.RespondError(c, helpers.ErrUnauthorized("unauthorized request"))
			return
		}

		claims, err := helpers.ValidateToken(incoming)
		if err != nil {
			helpers.RespondError(c, helpers.ErrUnauthorized("invalid refresh token"))
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			helpers.RespondError(c, helpers.ErrUnauthorized("invalid refresh token"))
			return
		}

		var user models.User
		if err := usercollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			helpers.RespondError(c, helpers.ErrUnauthorized("invalid refresh token"))
			return
		}

		if user.RefreshToken == "" || user.RefreshToken != incoming {
			helpers.RespondError(c, helpers.ErrUnauthorized("refresh token is expired or used"))
			return
		}

		accessToken, refreshToken, err := helpers.GenerateAllTokens(user.ID.Hex(), user.Username, user.Email)
		if err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to generate tokens", err))
			return
		}
		if err := helpers.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to persist session", err))
			return
		}

		setAuthCookies(c, accessToken, refreshToken)
		helpers.RespondJSON(c, http.StatusOK, gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		}, "access token refreshed")
	}
}

func ChangeCurrentPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		var body struct {
			OldPassword string `json:"oldPassword" binding:"required"`
			NewPassword string `json:"newPassword" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			helpers.RespondError(c, helpers.ErrInvalidArgument("old and new password are required"))
			return
		}

		var user models.User
		if err := usercollection.FindOne(ctx, bson.M{"_id": actor}).Decode(&user); err != nil {
			helpers.RespondError(c, err)
			return
		}

		if !VerifyPassword(user.Password, body.OldPassword) {
			helpers.RespondError(c, helpers.ErrInvalidArgument("invalid old password"))
			return
		}

		hashedPassword, err := HashPassword(body.NewPassword)
		if err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to change password", err))
			return
		}

		_, err = usercollection.UpdateOne(ctx, bson.M{"_id": actor}, bson.M{"$set": bson.M{
			"password":   hashedPassword,
			"updated_at": time.Now(),
		}})
		if err != nil {
			helpers.RespondError(c, helpers.ErrInternal("failed to change password", err))
			return
		}

		helpers.RespondJSON(c, http.StatusOK, nil, "password changed successfully")
	}
}

func GetCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		var user models.User
		if err := usercollection.FindOne(ctx, bson.M{"_id": actor}).Decode(&user); err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, user.Public(), "current user fetched successfully")
	}
}

// UpdateAccountDetails changes full name and/or email.
func UpdateAccountDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		var body struct {
			FullName string `json:"fullName"`
			Email    string `json:"email"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			helpers.RespondError(c, helpers.ErrInvalidArgument("invalid request body"))
			return
		}

		updateObj := bson.M{}
		if body.FullName != "" {
			updateObj["full_name"] = strings.TrimSpace(body.FullName)
		}
		if body.Email != "" {
			email := strings.ToLower(strings.TrimSpace(body.Email))
			count, err := usercollection.CountDocuments(ctx,
				bson.M{"email": email, "_id": bson.M{"$ne": actor}},
				options.Count().SetCollation(&caseInsensitive),
			)
			if err != nil {
				helpers.RespondError(c, err)
				return
			}
			if count > 0 {
				helpers.RespondError(c, helpers.ErrConflict("email already in use"))
				return
			}
			updateObj["email"] = email
		}
		if len(updateObj) == 0 {
			helpers.RespondError(c, helpers.ErrInvalidArgument("nothing to update"))
			return
		}
		updateObj["updated_at"] = time.Now()

		var updated models.User
		err = usercollection.FindOneAndUpdate(ctx,
			bson.M{"_id": actor},
			bson.M{"$set": updateObj},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		helpers.RespondJSON(c, http.StatusOK, updated.Public(), "account details updated successfully")
	}
}

func updateUserImage(c *gin.Context, field string, folder string, bsonField string, what string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	actor, err := requireActor(c)
	if err != nil {
		helpers.RespondError(c, err)
		return
	}

	url, err := uploadFormFile(c, field, folder, true)
	if err != nil {
		helpers.RespondError(c, err)
		return
	}

	var updated models.User
	err = usercollection.FindOneAndUpdate(ctx,
		bson.M{"_id": actor},
		bson.M{"$set": bson.M{bsonField: url, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		helpers.RespondError(c, err)
		return
	}

	helpers.RespondJSON(c, http.StatusOK, updated.Public(), what+" updated successfully")
}

func UpdateUserAvatar() gin.HandlerFunc {
	return func(c *gin.Context) {
		updateUserImage(c, "avatar", "avatars", "avatar", "avatar")
	}
}

func UpdateUserCoverImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		updateUserImage(c, "coverImage", "covers", "cover_image", "cover image")
	}
}

// channelProfileRow is the enriched channel view: the public user plus
// subscription aggregates relative to the requesting actor.
type channelProfileRow struct {
	models.PublicUser         `bson:",inline"`
	SubscriberCount           int64 `bson:"subscriber_count" json:"subscriberCount"`
	ChannelsSubscribedToCount int64 `bson:"channels_subscribed_to_count" json:"channelsSubscribedToCount"`
	IsSubscribed              bool  `bson:"is_subscribed" json:"isSubscribed"`
}

// channelProfilePipeline joins both subscription directions onto the
// matched user and reduces them to counts plus an is-subscribed flag.
func channelProfilePipeline(username string, actor primitive.ObjectID, hasActor bool) []bson.M {
	isSubscribed := interface{}(false)
	if hasActor {
		isSubscribed = bson.M{"$in": []interface{}{actor, "$subscribers.subscriber"}}
	}
	return []bson.M{
		{"$match": bson.M{"username": strings.ToLower(username)}},
		{"$lookup": bson.M{
			"from":         "subscriptions",
			"localField":   "_id",
			"foreignField": "channel",
			"as":           "subscribers",
		}},
		{"$lookup": bson.M{
			"from":         "subscriptions",
			"localField":   "_id",
			"foreignField": "subscriber",
			"as":           "subscribed_to",
		}},
		{"$addFields": bson.M{
			"subscriber_count":             bson.M{"$size": "$subscribers"},
			"channels_subscribed_to_count": bson.M{"$size": "$subscribed_to"},
			"is_subscribed":                isSubscribed,
		}},
		{"$project": bson.M{
			"_id":                          1,
			"username":                     1,
			"email":                        1,
			"full_name":                    1,
			"avatar":                       1,
			"cover_image":                  1,
			"created_at":                   1,
			"subscriber_count":             1,
			"channels_subscribed_to_count": 1,
			"is_subscribed":                1,
		}},
	}
}

// GetUserChannelProfile answers the public channel page for a username.
func GetUserChannelProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		username := strings.TrimSpace(c.Param("username"))
		if username == "" {
			helpers.RespondError(c, helpers.ErrInvalidArgument("username is required"))
			return
		}

		actor, hasActor := actorID(c)
		cursor, err := usercollection.Aggregate(ctx, channelProfilePipeline(username, actor, hasActor))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		var channels []channelProfileRow
		if err := cursor.All(ctx, &channels); err != nil {
			helpers.RespondError(c, err)
			return
		}
		if len(channels) == 0 {
			helpers.RespondError(c, helpers.ErrNotFound("channel does not exist"))
			return
		}

		helpers.RespondJSON(c, http.StatusOK, channels[0], "channel profile fetched successfully")
	}
}

// watchHistoryPipeline resolves the actor's watched videos with each
// video's owner joined in. $lookup does not preserve the order of the
// watch_history array, so rows are re-sorted by their position in it.
func watchHistoryPipeline(actor primitive.ObjectID) []bson.M {
	videoPipeline := []bson.M{
		{"$match": bson.M{"$expr": bson.M{"$in": []interface{}{"$_id", "$$history"}}}},
	}
	videoPipeline = append(videoPipeline, lookupOwnerStages("owner", "owner_info")...)
	videoPipeline = append(videoPipeline,
		bson.M{"$addFields": bson.M{
			"history_index": bson.M{"$indexOfArray": []interface{}{"$$history", "$_id"}},
		}},
		bson.M{"$sort": bson.M{"history_index": 1}},
		bson.M{"$project": bson.M{"history_index": 0}},
	)
	return []bson.M{
		{"$match": bson.M{"_id": actor}},
		{"$lookup": bson.M{
			"from":     "videos",
			"let":      bson.M{"history": "$watch_history"},
			"pipeline": videoPipeline,
			"as":       "watch_history",
		}},
	}
}

// GetWatchHistory lists the videos the actor has previously fetched.
func GetWatchHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		actor, err := requireActor(c)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		cursor, err := usercollection.Aggregate(ctx, watchHistoryPipeline(actor))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		var rows []struct {
			WatchHistory []videoRow `bson:"watch_history" json:"watchHistory"`
		}
		if err := cursor.All(ctx, &rows); err != nil {
			helpers.RespondError(c, err)
			return
		}
		if len(rows) == 0 {
			helpers.RespondJSON(c, http.StatusOK, []videoRow{}, "watch history fetched successfully")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, rows[0].WatchHistory, "watch history fetched successfully")
	}
}
