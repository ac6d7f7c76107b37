package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	VideoFile   string             `bson:"video_file" json:"videoFile" validate:"required"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail" validate:"required"`
	Title       string             `bson:"title" json:"title" validate:"required,min=1,max=100"`
	Description string             `bson:"description" json:"description" validate:"required,max=2000"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"is_published" json:"isPublished"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
