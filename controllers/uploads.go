package controllers

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hiteshchoudhary/chai-backend-sub000/helpers"
)

// saveTempFile writes a multipart upload to a temp path. Callers remove
// the file once the Cloudinary upload (and any probing) is done.
func saveTempFile(c *gin.Context, fileHeader *multipart.FileHeader) (string, error) {
	tmpPath := filepath.Join(os.TempDir(), primitive.NewObjectID().Hex()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		return "", helpers.ErrInternal("failed to store uploaded file", err)
	}
	return tmpPath, nil
}

// uploadFormFile moves a multipart upload through a temp file into
// Cloudinary and returns the stable URL. An absent optional field
// yields an empty URL with no error.
func uploadFormFile(c *gin.Context, field string, folder string, required bool) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if required {
			return "", helpers.ErrInvalidArgument(field + " file is required")
		}
		return "", nil
	}

	tmpPath, err := saveTempFile(c, fileHeader)
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpPath)

	url, err := helpers.Storage.UploadLocalFile(c.Request.Context(), tmpPath, folder)
	if err != nil {
		return "", helpers.ErrInternal("failed to upload "+field, err)
	}
	return url, nil
}
