package helpers

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID validates an externally supplied identifier before any
// lookup happens. A malformed id fails with a 400 and no store call.
func ParseObjectID(value string, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(value))
	if err != nil {
		return primitive.NilObjectID, ErrInvalidArgument("invalid " + what)
	}
	return id, nil
}
