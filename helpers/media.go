package helpers

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeDuration reads the duration in seconds out of a media file on
// disk. Runs before the Cloudinary upload so the stored video document
// carries its real length.
func ProbeDuration(localPath string) (float64, error) {
	probe, err := ffmpeg.Probe(localPath)
	if err != nil {
		return 0, errors.Wrap(err, "ffprobe")
	}

	duration := gjson.Get(probe, "format.duration")
	if !duration.Exists() {
		return 0, errors.New("ffprobe: no duration in media metadata")
	}
	return duration.Float(), nil
}
