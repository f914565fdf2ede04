package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"catascii-hq/catascii/pkg/telemetry/logging"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.GetRequestID(r.Context())
		if seen == "" {
			t.Error("Request ID should not be empty")
		}
		w.WriteHeader(http.StatusOK)
	})

	wrapped := RequestIDMiddleware(handler)

	t.Run("generates request ID when not provided", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		requestID := w.Header().Get(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			t.Errorf("Request ID %q is not a UUID: %v", requestID, err)
		}
		if seen != requestID {
			t.Errorf("context ID = %q, header ID = %q", seen, requestID)
		}
	})

	t.Run("uses provided request ID", func(t *testing.T) {
		customID := "custom-request-id-12345"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, customID)
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got != customID {
			t.Errorf("Request ID = %v, want %v", got, customID)
		}
	})

	t.Run("replaces unusable request ID", func(t *testing.T) {
		for _, bad := range []string{strings.Repeat("a", 200), "has space", "tab\tid"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, bad)
			w := httptest.NewRecorder()

			wrapped.ServeHTTP(w, req)

			if got := w.Header().Get(RequestIDHeader); got == bad {
				t.Errorf("unusable request ID %q was kept", bad)
			}
		}
	})

	t.Run("generates unique IDs for different requests", func(t *testing.T) {
		w1 := httptest.NewRecorder()
		wrapped.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/", nil))

		w2 := httptest.NewRecorder()
		wrapped.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/", nil))

		id1 := w1.Header().Get(RequestIDHeader)
		id2 := w2.Header().Get(RequestIDHeader)
		if id1 == id2 {
			t.Errorf("Request IDs should be unique, got %s for both", id1)
		}
	})
}
