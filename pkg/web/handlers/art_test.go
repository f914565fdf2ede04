package handlers

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	fakeapi "catascii-hq/catascii/internal/testutil"
	"catascii-hq/catascii/pkg/art"
	"catascii-hq/catascii/pkg/ascii"
	"catascii-hq/catascii/pkg/config"
	"catascii-hq/catascii/pkg/telemetry/logging"
	"catascii-hq/catascii/pkg/telemetry/metrics"
	"catascii-hq/catascii/pkg/web"
)

type fixture struct {
	mux     *http.ServeMux
	logs    *bytes.Buffer
	metrics *metrics.Collector
}

func newFixture(t *testing.T, searchURL string) *fixture {
	t.Helper()

	logs := &bytes.Buffer{}
	logger, err := logging.New(logging.Config{Level: "info", Format: "json", Writer: logs})
	if err != nil {
		t.Fatalf("logging.New() error = %v", err)
	}

	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true, Namespace: "test"}, nil)

	conv, err := ascii.NewConverter(ascii.DefaultOptions())
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	client := art.NewClient(art.ClientConfig{
		SearchURL:     searchURL,
		Timeout:       5 * time.Second,
		MaxImageBytes: 1 << 20,
		Observer:      collector,
	}, logger.Slog())

	pipeline := art.NewPipeline(client, art.NewDecoder(1_000_000), conv)
	return &fixture{
		mux:     NewMux(NewArtHandler(pipeline, collector, logger.Slog())),
		logs:    logs,
		metrics: collector,
	}
}

func (f *fixture) get(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func assertGenericError(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusInternalServerError)
	}
	if w.Body.String() != web.ErrorBody {
		t.Errorf("Body = %q, want %q", w.Body.String(), web.ErrorBody)
	}
}

func TestArtHandler_Success(t *testing.T) {
	fake := fakeapi.NewFakeCatAPI()
	defer fake.Close()

	fake.SetSearch(fake.ImageURL("a.jpg"), fake.ImageURL("b.jpg"))
	fake.SetImage("b.jpg", fakeapi.GradientPNG(32, 16))

	f := newFixture(t, fake.SearchURL())
	w := f.get(t, http.MethodGet, "/")

	if w.Code != http.StatusOK {
		t.Fatalf("Status code = %v, want %v; logs: %s", w.Code, http.StatusOK, f.logs.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("empty body")
	}

	want := []string{fakeapi.SearchPath, "/images/b.jpg"}
	got := fake.Requests()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("upstream requests = %v, want %v", got, want)
	}

	if n, err := testutil.GatherAndCount(f.metrics.Registry(), "test_requests_total"); err != nil || n != 1 {
		t.Errorf("requests_total series = %d (err %v), want 1", n, err)
	}
	if n, err := testutil.GatherAndCount(f.metrics.Registry(), "test_upstream_requests_total"); err != nil || n != 2 {
		t.Errorf("upstream_requests_total series = %d (err %v), want 2", n, err)
	}
}

func TestArtHandler_Failures(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(fake *fakeapi.FakeCatAPI)
		wantKind string
	}{
		{
			name: "empty array",
			setup: func(fake *fakeapi.FakeCatAPI) {
				fake.SetResponse(fakeapi.SearchPath, fakeapi.MockResponse{StatusCode: http.StatusOK, Body: "[]"})
			},
			wantKind: art.KindEmptyResult,
		},
		{
			name: "search 4xx",
			setup: func(fake *fakeapi.FakeCatAPI) {
				fake.SetResponse(fakeapi.SearchPath, fakeapi.MockResponse{StatusCode: http.StatusForbidden, Body: "forbidden"})
			},
			wantKind: art.KindUpstream,
		},
		{
			name: "search 5xx",
			setup: func(fake *fakeapi.FakeCatAPI) {
				fake.SetResponse(fakeapi.SearchPath, fakeapi.MockResponse{StatusCode: http.StatusBadGateway})
			},
			wantKind: art.KindUpstream,
		},
		{
			name: "malformed json",
			setup: func(fake *fakeapi.FakeCatAPI) {
				fake.SetResponse(fakeapi.SearchPath, fakeapi.MockResponse{StatusCode: http.StatusOK, Body: `[{"url":`})
			},
			wantKind: art.KindDecode,
		},
		{
			name: "image 404",
			setup: func(fake *fakeapi.FakeCatAPI) {
				fake.SetSearch(fake.ImageURL("missing.jpg"))
			},
			wantKind: art.KindUpstream,
		},
		{
			name: "corrupt image bytes",
			setup: func(fake *fakeapi.FakeCatAPI) {
				fake.SetSearch(fake.ImageURL("corrupt.jpg"))
				fake.SetImage("corrupt.jpg", []byte("\xff\xd8\xff garbage"))
			},
			wantKind: art.KindDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := fakeapi.NewFakeCatAPI()
			defer fake.Close()
			tt.setup(fake)

			f := newFixture(t, fake.SearchURL())
			w := f.get(t, http.MethodGet, "/")

			assertGenericError(t, w)

			var record map[string]interface{}
			if err := json.Unmarshal(f.logs.Bytes(), &record); err != nil {
				t.Fatalf("expected one JSON log record: %v\n%s", err, f.logs.String())
			}
			if record["level"] != "ERROR" {
				t.Errorf("level = %v, want ERROR", record["level"])
			}
			if record["kind"] != tt.wantKind {
				t.Errorf("kind = %v, want %v", record["kind"], tt.wantKind)
			}
			if strings.Contains(w.Body.String(), fake.URL()) {
				t.Error("response leaks upstream details")
			}
		})
	}
}

func TestArtHandler_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	f := newFixture(t, "http://"+addr+"/v1/images/search")
	w := f.get(t, http.MethodGet, "/")

	assertGenericError(t, w)
	if !strings.Contains(f.logs.String(), `"kind":"transport"`) {
		t.Errorf("transport kind not logged: %s", f.logs.String())
	}
}

func TestArtHandler_Routing(t *testing.T) {
	fake := fakeapi.NewFakeCatAPI()
	defer fake.Close()

	f := newFixture(t, fake.SearchURL())

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
	}{
		{name: "other path", method: http.MethodGet, path: "/cats", wantCode: http.StatusNotFound},
		{name: "other method", method: http.MethodPost, path: "/", wantCode: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := f.get(t, tt.method, tt.path); w.Code != tt.wantCode {
				t.Errorf("Status code = %v, want %v", w.Code, tt.wantCode)
			}
		})
	}

	if got := fake.Requests(); len(got) != 0 {
		t.Errorf("unrouted requests reached upstream: %v", got)
	}
}
