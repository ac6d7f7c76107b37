package helpers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	userID := primitive.NewObjectID().Hex()
	access, refresh, err := GenerateAllTokens(userID, "hitesh", "hitesh@example.com")
	if err != nil {
		t.Fatalf("generating tokens: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected both tokens to be signed")
	}
	if access == refresh {
		t.Fatal("access and refresh tokens must differ")
	}

	claims, err := ValidateToken(access)
	if err != nil {
		t.Fatalf("validating access token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected uid %s got %s", userID, claims.UserID)
	}
	if claims.Username != "hitesh" || claims.Email != "hitesh@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if time.Until(claims.ExpiresAt.Time) > AccessTokenTTL {
		t.Fatal("access token expiry exceeds TTL")
	}

	refreshClaims, err := ValidateToken(refresh)
	if err != nil {
		t.Fatalf("validating refresh token: %v", err)
	}
	if refreshClaims.Username != "" {
		t.Fatal("refresh token must only carry the user id")
	}
	if time.Until(refreshClaims.ExpiresAt.Time) <= AccessTokenTTL {
		t.Fatal("refresh token should outlive the access token")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "first-secret")
	access, _, err := GenerateAllTokens(primitive.NewObjectID().Hex(), "u", "u@example.com")
	if err != nil {
		t.Fatalf("generating tokens: %v", err)
	}

	t.Setenv("SECRET_KEY", "rotated-secret")
	if _, err := ValidateToken(access); err == nil {
		t.Fatal("expected validation to fail after secret rotation")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected validation to fail")
	}
}
