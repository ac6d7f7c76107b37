package helpers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestNewApiResponseSuccessFlag(t *testing.T) {
	cases := []struct {
		statusCode int
		success    bool
	}{
		{http.StatusOK, true},
		{http.StatusCreated, true},
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusInternalServerError, false},
	}

	for _, tc := range cases {
		resp := NewApiResponse(tc.statusCode, nil, "msg")
		if resp.Success != tc.success {
			t.Fatalf("status %d: expected success=%v", tc.statusCode, tc.success)
		}
	}
}

func respondedWith(t *testing.T, err error) (int, ApiResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondError(c, err)

	var body ApiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	return rec.Code, body
}

func TestRespondErrorApiError(t *testing.T) {
	code, body := respondedWith(t, ErrConflict("username already taken"))

	if code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", code)
	}
	if body.Message != "username already taken" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.Success {
		t.Fatal("errors must not be marked successful")
	}
}

func TestRespondErrorWrappedApiError(t *testing.T) {
	wrapped := errors.Wrap(ErrNotFound("video not found"), "loading video")
	code, body := respondedWith(t, wrapped)

	if code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", code)
	}
	if body.Message != "video not found" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestRespondErrorNoDocuments(t *testing.T) {
	code, _ := respondedWith(t, mongo.ErrNoDocuments)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", code)
	}
}

func TestRespondErrorDeadline(t *testing.T) {
	code, _ := respondedWith(t, context.DeadlineExceeded)
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", code)
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	code, body := respondedWith(t, errors.New("connection string leaked"))

	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", code)
	}
	if body.Message != "internal server error" {
		t.Fatalf("internal detail leaked to caller: %q", body.Message)
	}
}
