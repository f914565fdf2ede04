package art_test

import (
	"context"
	"errors"
	"image"
	"net/http"
	"strings"
	"testing"
	"time"

	"catascii-hq/catascii/internal/testutil"
	"catascii-hq/catascii/pkg/art"
	"catascii-hq/catascii/pkg/ascii"
)

func newPipeline(t *testing.T, fake *testutil.FakeCatAPI) *art.Pipeline {
	t.Helper()
	conv, err := ascii.NewConverter(ascii.DefaultOptions())
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	client := art.NewClient(art.ClientConfig{
		SearchURL:     fake.SearchURL(),
		Timeout:       5 * time.Second,
		MaxImageBytes: 1 << 20,
	}, nil)
	return art.NewPipeline(client, art.NewDecoder(1_000_000), conv)
}

func TestPipeline_Render(t *testing.T) {
	fake := testutil.NewFakeCatAPI()
	defer fake.Close()

	fake.SetSearch(fake.ImageURL("a.jpg"), fake.ImageURL("b.jpg"))
	fake.SetImage("b.jpg", testutil.GradientPNG(16, 8))

	result, err := newPipeline(t, fake).Render(context.Background())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if result.Descriptor.URL != fake.ImageURL("b.jpg") {
		t.Errorf("Descriptor.URL = %q", result.Descriptor.URL)
	}
	if result.Format != "png" || result.Width != 16 || result.Height != 8 {
		t.Errorf("Result = %s %dx%d, want png 16x8", result.Format, result.Width, result.Height)
	}
	if !strings.HasPrefix(result.HTML, "<!DOCTYPE html>") {
		t.Errorf("HTML does not start with doctype: %.40q", result.HTML)
	}

	for _, path := range fake.Requests() {
		if path == "/images/a.jpg" {
			t.Error("first descriptor was fetched")
		}
	}
}

func TestPipeline_StopsAtFirstFailure(t *testing.T) {
	fake := testutil.NewFakeCatAPI()
	defer fake.Close()

	fake.SetResponse(testutil.SearchPath, testutil.MockResponse{StatusCode: http.StatusOK, Body: "[]"})

	_, err := newPipeline(t, fake).Render(context.Background())
	if !errors.Is(err, art.ErrEmptyResult) {
		t.Fatalf("Render() error = %v, want ErrEmptyResult", err)
	}
	if got := fake.Requests(); len(got) != 1 {
		t.Errorf("requests = %v, want only the search call", got)
	}
}

type emptyDecoder struct{}

func (emptyDecoder) Decode([]byte) (image.Image, string, error) {
	return image.NewRGBA(image.Rect(0, 0, 0, 0)), "png", nil
}

func TestPipeline_ConvertError(t *testing.T) {
	conv, err := ascii.NewConverter(ascii.DefaultOptions())
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	_, err = art.NewPipeline(nil, emptyDecoder{}, conv).RenderBytes([]byte("x"))
	if !errors.Is(err, ascii.ErrEmptyImage) {
		t.Fatalf("RenderBytes() error = %v, want ErrEmptyImage", err)
	}
	if art.Kind(err) != art.KindConvert {
		t.Errorf("Kind() = %q, want %q", art.Kind(err), art.KindConvert)
	}
}
