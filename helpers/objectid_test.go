package helpers

import (
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseObjectID(t *testing.T) {
	want := primitive.NewObjectID()
	got, err := ParseObjectID(want.Hex(), "video id")
	if err != nil {
		t.Fatalf("parsing valid id: %v", err)
	}
	if got != want {
		t.Fatalf("expected %s got %s", want.Hex(), got.Hex())
	}
}

func TestParseObjectIDInvalid(t *testing.T) {
	for _, raw := range []string{"", "nope", "64b54c7a7f3e2a1b2c3d4e5"} {
		_, err := ParseObjectID(raw, "video id")
		if err == nil {
			t.Fatalf("expected error for %q", raw)
		}
		apiErr, ok := err.(*ApiError)
		if !ok || apiErr.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 ApiError, got %v", err)
		}
	}
}
