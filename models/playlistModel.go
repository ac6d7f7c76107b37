package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Playlist struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Name        string               `bson:"name" json:"name" validate:"required,min=1,max=100"`
	Description string               `bson:"description" json:"description" validate:"max=500"`
	Videos      []primitive.ObjectID `bson:"videos" json:"videos"`
	IsPublic    bool                 `bson:"is_public" json:"isPublic"`
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updatedAt"`
}

// HasVideo reports whether the playlist already references videoID.
func (p Playlist) HasVideo(videoID primitive.ObjectID) bool {
	for _, id := range p.Videos {
		if id == videoID {
			return true
		}
	}
	return false
}
