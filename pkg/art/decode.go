package art

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var errEmptyPayload = errors.New("empty image payload")

// Decoder turns raw bytes into pixels. The zero value decodes without a
// pixel budget.
type Decoder struct {
	// MaxPixels rejects images whose width*height exceeds it (0 = unlimited)
	MaxPixels int64
}

// NewDecoder creates a decoder with the given pixel budget.
func NewDecoder(maxPixels int64) *Decoder {
	return &Decoder{MaxPixels: maxPixels}
}

// Decode sniffs the format and decodes data. It returns the image and the
// registered format name. Every failure is a *DecodeError.
func (d *Decoder) Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", &DecodeError{Stage: StageImage, Cause: errEmptyPayload}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", &DecodeError{Stage: StageImage, Cause: err}
	}

	if d.MaxPixels > 0 {
		pixels := int64(cfg.Width) * int64(cfg.Height)
		if pixels > d.MaxPixels {
			return nil, format, &DecodeError{
				Stage: StageImage,
				Cause: fmt.Errorf("%s image is %dx%d, exceeds %d pixels", format, cfg.Width, cfg.Height, d.MaxPixels),
			}
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, &DecodeError{Stage: StageImage, Cause: fmt.Errorf("%s: %w", format, err)}
	}

	return img, format, nil
}
