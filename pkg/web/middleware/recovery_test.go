package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catascii-hq/catascii/pkg/web"
)

func TestRecoveryMiddleware(t *testing.T) {
	t.Run("recovers from panic", func(t *testing.T) {
		var buf bytes.Buffer
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("test panic")
		})

		wrapped := RecoveryMiddleware(newTestLogger(t, &buf))(handler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Status code = %v, want %v", w.Code, http.StatusInternalServerError)
		}
		if w.Body.String() != web.ErrorBody {
			t.Errorf("Body = %q, want %q", w.Body.String(), web.ErrorBody)
		}
		if !strings.Contains(buf.String(), "panic in handler") || !strings.Contains(buf.String(), "test panic") {
			t.Errorf("panic not logged: %s", buf.String())
		}
	})

	t.Run("passes through normal requests", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
		})

		wrapped := RecoveryMiddleware(nil)(handler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status code = %v, want %v", w.Code, http.StatusOK)
		}
		if w.Body.String() != "OK" {
			t.Errorf("Body = %v, want OK", w.Body.String())
		}
	})

	t.Run("re-raises abort handler", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		})

		wrapped := RecoveryMiddleware(nil)(handler)

		defer func() {
			if recover() != http.ErrAbortHandler {
				t.Error("expected http.ErrAbortHandler to propagate")
			}
		}()

		wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
