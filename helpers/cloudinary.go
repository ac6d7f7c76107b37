package helpers

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/pkg/errors"
)

// MediaStorage uploads local files to Cloudinary and hands back stable
// URLs. Constructed once at startup so the SDK configuration is
// explicit instead of process-global.
type MediaStorage struct {
	cld *cloudinary.Cloudinary
}

var Storage *MediaStorage

func InitMediaStorage() {
	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		log.Fatalf("❌ [InitMediaStorage] Cloudinary init error: %v", err)
	}
	Storage = &MediaStorage{cld: cld}
	log.Println("✅ [InitMediaStorage] Cloudinary configured")
}

// UploadLocalFile pushes a file from disk into the given folder and
// returns its secure URL. Cloudinary treats mp4/mp3 as resource type
// "video"; "auto" lets it pick for images too.
func (s *MediaStorage) UploadLocalFile(ctx context.Context, localPath string, folder string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	result, err := s.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", errors.Wrap(err, "cloudinary upload")
	}
	if result.Error.Message != "" {
		return "", errors.New("cloudinary upload: " + result.Error.Message)
	}
	return result.SecureURL, nil
}
