// Package imagefile recognises uploaded images and names them in the bucket.
package imagefile

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

var ErrNotImage = errors.New("file is not a supported image")

type Kind struct {
	Extension string
	MIME      string
}

// Detect sniffs the content; the client's filename and content type are not trusted.
func Detect(data []byte) (Kind, error) {
	if len(data) == 0 {
		return Kind{}, ErrNotImage
	}
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return Kind{}, ErrNotImage
	}
	return Kind{Extension: kind.Extension, MIME: kind.MIME.Value}, nil
}

// DataURI inlines the image; used when object storage is unavailable.
func DataURI(kind Kind, data []byte) string {
	return "data:" + kind.MIME + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func HeroKey(kind Kind, at time.Time) string {
	return fmt.Sprintf("hero/hero-%d.%s", at.UnixMilli(), kind.Extension)
}

func SponsorKey(kind Kind, position int, at time.Time) string {
	return fmt.Sprintf("sponsors/sponsor%d-%d.%s", position, at.UnixMilli(), kind.Extension)
}

func ProductKey(kind Kind, at time.Time) string {
	return fmt.Sprintf("products/product-%d-%s.%s", at.UnixMilli(), uuid.NewString()[:8], kind.Extension)
}
