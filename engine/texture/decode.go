package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when a texture file does not contain a recognised image format.
var ErrNotImage = errors.New("not an image")

// decodeRGBA sniffs, decodes and optionally downsizes raw file bytes into tightly packed RGBA pixels.
//
// Parameters:
//   - data: the raw file contents
//   - maxSize: the largest allowed width or height in pixels; 0 disables downsizing
//
// Returns:
//   - *image.RGBA: the decoded image with its origin at (0, 0)
//   - error: ErrNotImage for non-image content, or the decoder's error
func decodeRGBA(data []byte, maxSize int) (*image.RGBA, error) {
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("%w: detected %q", ErrNotImage, kind.MIME.Value)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxSize > 0 && (width > maxSize || height > maxSize) {
		scale := float64(maxSize) / float64(max(width, height))
		width = max(int(float64(width)*scale), 1)
		height = max(int(float64(height)*scale), 1)
		return transform.Resize(img, width, height, transform.Linear), nil
	}

	if rgba, ok := img.(*image.RGBA); ok && bounds.Min == (image.Point{}) && rgba.Stride == width*4 {
		return rgba, nil
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba, nil
}
