// imageprocessor.go - Image preprocessing before the vision path

package processor

import (
	"bytes"
	"image/jpeg"
	"image/png"

	"github.com/bosocmputer/document_classifier/configs"
	"github.com/disintegration/imaging"
)

// PrepareImageForVision downscales oversized uploads before they are base64
// encoded into a model request, keeping payloads inside provider limits.
// Only resizing is applied - classification relies on color, logo, and layout
// cues, so no contrast or grayscale passes.
//
// Preprocessing must never fail the pipeline: on any decode or encode error
// the original bytes and media type are returned unchanged.
func PrepareImageForVision(data []byte, mediaType string) ([]byte, string) {
	if !configs.ENABLE_IMAGE_PREPROCESSING {
		return data, mediaType
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data, mediaType
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	maxDimension := configs.MAX_IMAGE_DIMENSION

	if width <= maxDimension && height <= maxDimension {
		return data, mediaType
	}

	if width > height {
		img = imaging.Resize(img, maxDimension, 0, imaging.Lanczos)
	} else {
		img = imaging.Resize(img, 0, maxDimension, imaging.Lanczos)
	}

	// Re-encode in the original format so the reported media type stays true
	var buf bytes.Buffer
	outType := mediaType
	switch mediaType {
	case "image/png":
		err = png.Encode(&buf, img)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
		outType = "image/jpeg"
	}
	if err != nil {
		return data, mediaType
	}

	return buf.Bytes(), outType
}
