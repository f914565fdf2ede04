package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"catascii-hq/catascii/pkg/telemetry/logging"
)

const (
	// RequestIDHeader is the HTTP header for request ID.
	RequestIDHeader = "X-Request-ID"

	// maxRequestIDLength bounds client-supplied IDs.
	maxRequestIDLength = 128
)

// RequestIDMiddleware reads the X-Request-ID header, or generates a UUID
// when it is absent or unusable, and stores it in the request context and
// the response headers.
//
// Example usage:
//
//	handler = RequestIDMiddleware(handler)
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}

		ctx := logging.WithRequestID(r.Context(), requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validRequestID accepts non-empty printable ASCII up to maxRequestIDLength.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
