package controllers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hiteshchoudhary/chai-backend-sub000/helpers"
	"github.com/hiteshchoudhary/chai-backend-sub000/middleware"
)

// returnUpdated makes FindOneAndUpdate hand back the post-update row.
func returnUpdated() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// actorID returns the authenticated actor's id, when the request
// carried valid credentials.
func actorID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(value.(string))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// requireActor is actorID for handlers behind Authentication().
func requireActor(c *gin.Context) (primitive.ObjectID, error) {
	id, ok := actorID(c)
	if !ok {
		return primitive.NilObjectID, helpers.ErrUnauthorized("unauthorized request")
	}
	return id, nil
}

// canView implements the visibility rule: an entity is readable when it
// is published or the actor owns it. Denials surface as 404 so private
// entities cannot be probed for existence.
func canView(isPublished bool, owner primitive.ObjectID, actor primitive.ObjectID, hasActor bool) bool {
	return isPublished || (hasActor && actor == owner)
}

// publishedOrOwned is the row-level form of canView for joined video
// rows: published ones, plus the actor's own unpublished ones.
func publishedOrOwned(actor primitive.ObjectID, hasActor bool) bson.M {
	if !hasActor {
		return bson.M{"is_published": true}
	}
	return bson.M{"$or": []bson.M{{"is_published": true}, {"owner": actor}}}
}

// ownerProjection is the only slice of a user other rows may carry.
var ownerProjection = bson.M{
	"_id":       1,
	"username":  1,
	"full_name": 1,
	"avatar":    1,
}

// ownerInfo is the joined one-to-one owner relation.
type ownerInfo struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	FullName string             `bson:"full_name" json:"fullName"`
	Avatar   string             `bson:"avatar" json:"avatar"`
}

// lookupOwnerStages left-joins the owning user onto each row and
// collapses the match to a single nested object under asField. Rows
// whose owner is gone keep an absent field instead of erroring.
func lookupOwnerStages(localField, asField string) []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   localField,
			"foreignField": "_id",
			"as":           asField,
			"pipeline":     []bson.M{{"$project": ownerProjection}},
		}},
		{"$addFields": bson.M{asField: bson.M{"$first": "$" + asField}}},
	}
}

// likeStages joins likes for the row, collapsing the relation to a
// count plus an is-liked-by-actor flag; the full like set is never
// materialized in the result.
func likeStages(targetField string, actor primitive.ObjectID, hasActor bool) []bson.M {
	isLiked := interface{}(false)
	if hasActor {
		isLiked = bson.M{"$in": []interface{}{actor, "$likes.liked_by"}}
	}
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "likes",
			"localField":   "_id",
			"foreignField": targetField,
			"as":           "likes",
		}},
		{"$addFields": bson.M{
			"like_count": bson.M{"$size": "$likes"},
			"is_liked":   isLiked,
		}},
		{"$project": bson.M{"likes": 0}},
	}
}

// pageStages applies the deterministic order-then-slice contract.
func pageStages(opts helpers.ListOptions, allowedSorts ...string) []bson.M {
	return []bson.M{
		{"$sort": opts.SortSpec(allowedSorts...)},
		{"$skip": opts.Skip()},
		{"$limit": opts.Limit},
	}
}

// pagedResult wraps a page slice with what a caller needs to continue:
// a short page (len < limit) is the last one.
type pagedResult struct {
	Items       interface{} `json:"items"`
	Page        int64       `json:"page"`
	Limit       int64       `json:"limit"`
	HasNextPage bool        `json:"hasNextPage"`
}

func newPagedResult(items interface{}, count int, opts helpers.ListOptions) pagedResult {
	return pagedResult{
		Items:       items,
		Page:        opts.Page,
		Limit:       opts.Limit,
		HasNextPage: int64(count) == opts.Limit,
	}
}
