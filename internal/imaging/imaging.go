// Package imaging generates JPEG thumbnails for uploaded product images.
// Decoding supports JPEG, PNG, GIF, and WebP sources.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// DefaultMaxWidth is the maximum thumbnail width in pixels.
	DefaultMaxWidth = 400

	// quality is the JPEG quality for generated thumbnails.
	quality = 80

	// maxPixels caps the decoded image size to prevent memory bombs.
	// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
	maxPixels = 100_000_000
)

// Thumbnailable reports whether a thumbnail can be generated for the given
// MIME type. GIF is excluded to preserve animation; SVG is vector.
func Thumbnailable(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}

// Thumbnail decodes src and returns a JPEG no wider than maxWidth,
// preserving aspect ratio. Images already within maxWidth are re-encoded
// without scaling.
func Thumbnail(src []byte, maxWidth int) ([]byte, error) {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode config: %w", err)
	}
	if cfg.Width*cfg.Height > maxPixels {
		return nil, fmt.Errorf("imaging: image too large (%dx%d)", cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth {
		scaled := maxWidth * height / width
		if scaled < 1 {
			scaled = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, scaled))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}
	return out.Bytes(), nil
}
