package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like targets exactly one of a video, a comment or a tweet. A unique
// index on (liked_by, video, comment, tweet) keeps one like per pair
// even under concurrent toggles.
type Like struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	LikedBy   primitive.ObjectID  `bson:"liked_by" json:"likedBy"`
	Video     *primitive.ObjectID `bson:"video,omitempty" json:"video,omitempty"`
	Comment   *primitive.ObjectID `bson:"comment,omitempty" json:"comment,omitempty"`
	Tweet     *primitive.ObjectID `bson:"tweet,omitempty" json:"tweet,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
}
