package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	w.Header().Set("Content-Type", "text/html")

	WriteError(w)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusInternalServerError)
	}
	if w.Body.String() != ErrorBody {
		t.Errorf("Body = %q, want %q", w.Body.String(), ErrorBody)
	}
	if got := w.Header().Get("Content-Type"); got != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := w.Header().Get("Content-Length"); got != "20" {
		t.Errorf("Content-Length = %q, want 20", got)
	}
}

func TestWriteHTML(t *testing.T) {
	w := httptest.NewRecorder()

	WriteHTML(w, "<pre>@</pre>")

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Content-Type"); got != HTMLContentType {
		t.Errorf("Content-Type = %q, want %q", got, HTMLContentType)
	}
	if w.Body.String() != "<pre>@</pre>" {
		t.Errorf("Body = %q", w.Body.String())
	}
}
