// Package web holds the public HTTP surface: the art handler, its
// middleware and the shared response helpers.
package web

import (
	"net/http"
	"strconv"
)

// ErrorBody is the only body clients ever see for a failed request.
const ErrorBody = "Something went wrong"

// HTMLContentType is sent with rendered art.
const HTMLContentType = "text/html; charset=utf-8"

// WriteError writes a 500 with ErrorBody. Unlike http.Error it does not
// append a newline.
func WriteError(w http.ResponseWriter) {
	h := w.Header()
	h.Del("Content-Length")
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Content-Length", strconv.Itoa(len(ErrorBody)))
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(ErrorBody))
}

// WriteHTML writes a 200 with body as HTML.
func WriteHTML(w http.ResponseWriter, body string) {
	h := w.Header()
	h.Set("Content-Type", HTMLContentType)
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
