package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Username     string               `bson:"username" json:"username" validate:"required,min=3,max=30,lowercase"`
	Email        string               `bson:"email" json:"email" validate:"required,email"`
	FullName     string               `bson:"full_name" json:"fullName" validate:"required,min=2,max=100"`
	Avatar       string               `bson:"avatar" json:"avatar"`
	CoverImage   string               `bson:"cover_image,omitempty" json:"coverImage,omitempty"`
	Password     string               `bson:"password" json:"-" validate:"required,min=6"`
	RefreshToken string               `bson:"refresh_token,omitempty" json:"-"`
	WatchHistory []primitive.ObjectID `bson:"watch_history,omitempty" json:"watchHistory,omitempty"`
	CreatedAt    time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updatedAt"`
}

// PublicUser is the projection of a user that is safe to return to any
// caller: no password hash, no refresh token, no watch history.
type PublicUser struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Username   string             `bson:"username" json:"username"`
	Email      string             `bson:"email" json:"email"`
	FullName   string             `bson:"full_name" json:"fullName"`
	Avatar     string             `bson:"avatar" json:"avatar"`
	CoverImage string             `bson:"cover_image,omitempty" json:"coverImage,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}

// Public shapes a stored user into its public projection.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
	}
}
