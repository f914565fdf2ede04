package art_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"testing"

	"golang.org/x/image/bmp"

	"catascii-hq/catascii/internal/testutil"
	"catascii-hq/catascii/pkg/art"
)

func encode(t *testing.T, fn func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 6, 3))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	if err := fn(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecoder_Formats(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		format string
	}{
		{name: "png", data: testutil.GradientPNG(6, 3), format: "png"},
		{
			name: "jpeg",
			data: encode(t, func(b *bytes.Buffer, img image.Image) error {
				return jpeg.Encode(b, img, nil)
			}),
			format: "jpeg",
		},
		{
			name: "gif",
			data: encode(t, func(b *bytes.Buffer, img image.Image) error {
				return gif.Encode(b, img, nil)
			}),
			format: "gif",
		},
		{
			name: "bmp",
			data: encode(t, func(b *bytes.Buffer, img image.Image) error {
				return bmp.Encode(b, img)
			}),
			format: "bmp",
		},
	}

	dec := art.NewDecoder(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, format, err := dec.Decode(tt.data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if format != tt.format {
				t.Errorf("format = %q, want %q", format, tt.format)
			}
			if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
				t.Errorf("bounds = %v, want 6x3", b)
			}
		})
	}
}

func TestDecoder_Errors(t *testing.T) {
	png := testutil.GradientPNG(10, 10)

	tests := []struct {
		name      string
		maxPixels int64
		data      []byte
	}{
		{name: "empty", data: nil},
		{name: "garbage", data: []byte("definitely not an image")},
		{name: "truncated png", data: png[:len(png)/2]},
		{name: "over pixel budget", maxPixels: 99, data: png},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := art.NewDecoder(tt.maxPixels).Decode(tt.data)

			var decodeErr *art.DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected *DecodeError, got %T: %v", err, err)
			}
			if decodeErr.Stage != art.StageImage {
				t.Errorf("Stage = %q, want %q", decodeErr.Stage, art.StageImage)
			}
		})
	}
}

func TestDecoder_AtPixelBudget(t *testing.T) {
	if _, _, err := art.NewDecoder(100).Decode(testutil.GradientPNG(10, 10)); err != nil {
		t.Errorf("Decode() at exact budget error = %v", err)
	}
}
