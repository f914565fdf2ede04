package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"catascii-hq/catascii/pkg/web"
)

// RecoveryMiddleware recovers from panics in handlers, logs the panic with
// its stack trace and answers with the generic 500 body.
//
// http.ErrAbortHandler is re-raised so the server can abort the connection.
func RecoveryMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}

				logger.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"kind", "internal",
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				web.WriteError(w)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
