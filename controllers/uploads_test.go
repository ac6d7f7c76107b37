package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
)

func multipartContext(t *testing.T, field string, filename string, content []byte) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("building form: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing form: %v", err)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", &body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return c
}

func TestSaveTempFile(t *testing.T) {
	c := multipartContext(t, "thumbnail", "pic.png", []byte("png-bytes"))

	fileHeader, err := c.FormFile("thumbnail")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}

	tmpPath, err := saveTempFile(c, fileHeader)
	if err != nil {
		t.Fatalf("saving: %v", err)
	}
	defer os.Remove(tmpPath)

	if filepath.Ext(tmpPath) != ".png" {
		t.Fatalf("expected original extension kept, got %s", tmpPath)
	}
	stored, err := os.ReadFile(tmpPath)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(stored) != "png-bytes" {
		t.Fatalf("temp file content mismatch: %q", stored)
	}
}

func TestUploadFormFileOptionalAbsent(t *testing.T) {
	c := multipartContext(t, "avatar", "a.jpg", []byte("jpg"))

	url, err := uploadFormFile(c, "coverImage", "covers", false)
	if err != nil {
		t.Fatalf("optional absent field must not error: %v", err)
	}
	if url != "" {
		t.Fatalf("expected empty URL, got %q", url)
	}
}

func TestUploadFormFileRequiredAbsent(t *testing.T) {
	c := multipartContext(t, "avatar", "a.jpg", []byte("jpg"))

	if _, err := uploadFormFile(c, "thumbnail", "thumbnails", true); err == nil {
		t.Fatal("expected an error for a missing required file")
	}
}
