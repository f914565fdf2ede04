// Package middleware provides HTTP middleware for the public listener.
//
// # Middleware Chain
//
//	handler = Chain(handler, RecoveryMiddleware(logger), LoggingMiddleware(logger), RequestIDMiddleware)
//
// Order (outermost to innermost):
//  1. RequestID: read X-Request-ID or generate a UUID, store it in the context
//  2. Logging: log method, path, status and latency once the response is done
//  3. Recovery: turn panics into the generic 500
//
// RequestID runs first so the access log and the recovery log both carry
// the request_id attribute.
package middleware
