package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// MakeThumbnail decodes an image and re-encodes a width-constrained JPEG
// preview, preserving aspect ratio. Returns an error for non-image bytes;
// callers treat thumbnail generation as best-effort.
func MakeThumbnail(data []byte, width int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Resize(img, width, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
