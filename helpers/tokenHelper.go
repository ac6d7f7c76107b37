package helpers

import (
	"context"
	"os"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"github.com/hiteshchoudhary/chai-backend-sub000/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 10 * 24 * time.Hour
)

// SignedDetails are the claims carried by an access token.
type SignedDetails struct {
	UserID   string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

var usercollection *mongo.Collection

func InitTokenHelper() {
	usercollection = database.OpenCollection(database.Client, "users")
}

func secretKey() []byte {
	return []byte(os.Getenv("SECRET_KEY"))
}

// GenerateAllTokens creates the access and refresh token pair. The
// refresh token only carries the user id.
func GenerateAllTokens(userID, username, email string) (signedToken string, signedRefreshToken string, err error) {
	now := time.Now()

	claims := &SignedDetails{
		UserID:   userID,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
	}

	refreshClaims := &SignedDetails{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey())
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(secretKey())
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return token, refreshToken, nil
}

// ValidateToken verifies a signed token and returns its claims.
func ValidateToken(signedToken string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return secretKey(), nil
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "the token is invalid")
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, errors.New("the token is invalid")
	}
	return claims, nil
}

// UpdateRefreshToken stores the live refresh token value on the user.
// An empty value logs the user out everywhere a refresh would be tried.
func UpdateRefreshToken(ctx context.Context, userID primitive.ObjectID, refreshToken string) error {
	update := bson.M{"$set": bson.M{
		"refresh_token": refreshToken,
		"updated_at":    time.Now(),
	}}
	if refreshToken == "" {
		update = bson.M{
			"$unset": bson.M{"refresh_token": ""},
			"$set":   bson.M{"updated_at": time.Now()},
		}
	}

	_, err := usercollection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	return errors.Wrap(err, "updating refresh token")
}
