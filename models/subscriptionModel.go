package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription records that Subscriber follows Channel (both users).
// A unique index on (subscriber, channel) holds the at-most-one
// invariant; self-subscription is rejected at the handler.
type Subscription struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Subscriber primitive.ObjectID `bson:"subscriber" json:"subscriber"`
	Channel    primitive.ObjectID `bson:"channel" json:"channel"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
