package fsutil

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageService provides image processing for track cover art.
//
// Cover art pulled from the site comes in arbitrary formats and sizes;
// before embedding it in ID3 tags it is resized to a bounded square and
// re-encoded as JPEG.
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ResizeJPEG decodes an image, scales it down to fit within maxSize on
// both axes while preserving aspect ratio, and re-encodes it as JPEG.
//
// Images already within bounds are re-encoded without scaling. The
// Catmull-Rom kernel is used for the downscale.
func (s *ImageService) ResizeJPEG(data []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxSize || height > maxSize {
		ratio := float64(width) / float64(height)
		if ratio > 1 {
			width = maxSize
			height = int(float64(maxSize) / ratio)
		} else {
			height = maxSize
			width = int(float64(maxSize) * ratio)
		}
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
