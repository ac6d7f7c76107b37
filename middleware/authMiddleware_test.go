package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hiteshchoudhary/chai-backend-sub000/helpers"
)

func signedToken(t *testing.T) (string, string) {
	t.Helper()
	userID := primitive.NewObjectID().Hex()
	access, _, err := helpers.GenerateAllTokens(userID, "tester", "tester@example.com")
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return access, userID
}

func authRouter(optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	guard := Authentication()
	if optional {
		guard = OptionalAuthentication()
	}
	router.GET("/probe", guard, func(c *gin.Context) {
		uid, _ := c.Get(ContextUserID)
		c.JSON(http.StatusOK, gin.H{"uid": uid})
	})
	return router
}

func TestAuthenticationMissingToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	rec := httptest.NewRecorder()
	authRouter(false).ServeHTTP(rec, httptest.NewRequest("GET", "/probe", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	var body helpers.ApiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if body.Success || body.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected envelope %+v", body)
	}
}

func TestAuthenticationInvalidToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer bogus")

	rec := httptest.NewRecorder()
	authRouter(false).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthenticationBearerHeader(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	token, userID := signedToken(t)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	authRouter(false).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["uid"] != userID {
		t.Fatalf("expected uid %s got %s", userID, body["uid"])
	}
}

func TestAuthenticationCookie(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	token, userID := signedToken(t)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})

	rec := httptest.NewRecorder()
	authRouter(false).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["uid"] != userID {
		t.Fatalf("expected uid %s got %s", userID, body["uid"])
	}
}

func TestOptionalAuthenticationAnonymous(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	rec := httptest.NewRecorder()
	authRouter(true).ServeHTTP(rec, httptest.NewRequest("GET", "/probe", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous request should pass, got %d", rec.Code)
	}
}

func TestOptionalAuthenticationInvalidTokenStaysAnonymous(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer bogus")

	rec := httptest.NewRecorder()
	authRouter(true).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var body map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["uid"] != nil {
		t.Fatalf("expected no actor, got %v", body["uid"])
	}
}
