package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment hangs off exactly one parent: either a video or a tweet.
type Comment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Owner     primitive.ObjectID  `bson:"owner" json:"owner"`
	Video     *primitive.ObjectID `bson:"video,omitempty" json:"video,omitempty"`
	Tweet     *primitive.ObjectID `bson:"tweet,omitempty" json:"tweet,omitempty"`
	Content   string              `bson:"content" json:"content" validate:"required,min=1,max=1000"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updatedAt"`
}
