// Package testutil provides a fake cat API and image fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// SearchPath is the path the fake serves search results on.
const SearchPath = "/v1/images/search"

// MockResponse defines a canned response.
type MockResponse struct {
	StatusCode int
	Body       interface{}
	Delay      time.Duration
	Headers    map[string]string
}

// FakeCatAPI is an httptest server that mimics the search endpoint and the
// image host. Unknown paths answer 404.
type FakeCatAPI struct {
	server    *httptest.Server
	responses map[string]MockResponse
	requests  []string
	headers   map[string]http.Header
	mu        sync.Mutex
}

// NewFakeCatAPI starts a fake with no canned responses.
func NewFakeCatAPI() *FakeCatAPI {
	f := &FakeCatAPI{
		responses: make(map[string]MockResponse),
		headers:   make(map[string]http.Header),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handler))
	return f
}

// URL returns the base URL.
func (f *FakeCatAPI) URL() string {
	return f.server.URL
}

// SearchURL returns the full search endpoint URL.
func (f *FakeCatAPI) SearchURL() string {
	return f.server.URL + SearchPath
}

// ImageURL returns the URL an image named name is served on.
func (f *FakeCatAPI) ImageURL(name string) string {
	return f.server.URL + "/images/" + name
}

// Close shuts the server down.
func (f *FakeCatAPI) Close() {
	f.server.Close()
}

// SetResponse sets the response for an exact path.
func (f *FakeCatAPI) SetResponse(path string, response MockResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.responses[path] = response
}

// SetSearch answers the search endpoint with 200 and a descriptor array
// built from urls.
func (f *FakeCatAPI) SetSearch(urls ...string) {
	f.SetResponse(SearchPath, MockResponse{
		StatusCode: http.StatusOK,
		Body:       Descriptors(urls...),
		Headers:    map[string]string{"Content-Type": "application/json"},
	})
}

// SetImage serves data as a PNG under ImageURL(name).
func (f *FakeCatAPI) SetImage(name string, data []byte) {
	f.SetResponse("/images/"+name, MockResponse{
		StatusCode: http.StatusOK,
		Body:       data,
		Headers:    map[string]string{"Content-Type": "image/png"},
	})
}

// Requests returns the paths requested so far, in order.
func (f *FakeCatAPI) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.requests))
	copy(out, f.requests)
	return out
}

// LastHeader returns the headers of the most recent request to path.
func (f *FakeCatAPI) LastHeader(path string) http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.headers[path].Clone()
}

func (f *FakeCatAPI) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL.Path)
	f.headers[r.URL.Path] = r.Header.Clone()
	response, ok := f.responses[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	if response.Delay > 0 {
		select {
		case <-time.After(response.Delay):
		case <-r.Context().Done():
			return
		}
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}

	status := response.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	switch v := response.Body.(type) {
	case nil:
	case string:
		_, _ = w.Write([]byte(v))
	case []byte:
		_, _ = w.Write(v)
	default:
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Descriptors builds a search response body for the given image URLs.
func Descriptors(urls ...string) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(urls))
	for i, u := range urls {
		out = append(out, map[string]interface{}{
			"id":     string(rune('a' + i)),
			"url":    u,
			"width":  8,
			"height": 8,
		})
	}
	return out
}

// GradientPNG encodes a w x h PNG with a horizontal black-to-white ramp and
// a red channel that rises with y.
func GradientPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if w > 1 {
				v = uint8(x * 255 / (w - 1))
			}
			r := v
			if h > 1 {
				r = uint8(y * 255 / (h - 1))
			}
			img.Set(x, y, color.RGBA{R: r, G: v, B: v, A: 0xff})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
