package art

import (
	"context"
	"errors"
	"fmt"
	"net"

	"catascii-hq/catascii/pkg/ascii"
)

// Upstream call targets.
const (
	TargetSearch = "search"
	TargetImage  = "image"
)

// Decode stages.
const (
	StageDescriptor = "descriptor"
	StageImage      = "image"
)

// Error kinds returned by Kind.
const (
	KindUpstream    = "upstream"
	KindTransport   = "transport"
	KindDecode      = "decode"
	KindEmptyResult = "empty_result"
	KindConvert     = "convert"
	KindInternal    = "internal"
)

// ErrEmptyResult is the sentinel wrapped by EmptyResultError.
var ErrEmptyResult = errors.New("the upstream API returned no images")

// UpstreamError represents a non-success answer from an upstream call.
// It is also used when the response body exceeds the configured size cap.
type UpstreamError struct {
	// Target is the call that failed (TargetSearch or TargetImage)
	Target string

	// URL is the requested URL
	URL string

	// StatusCode is the HTTP status code (0 if the status was fine)
	StatusCode int

	// Message is a short description or a snippet of the response body
	Message string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s request to %s failed (status %d): %s", e.Target, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s request to %s failed: %s", e.Target, e.URL, e.Message)
}

// TransportError represents a network-level failure: DNS, refused
// connections, resets or timeouts.
type TransportError struct {
	// Target is the call that failed (TargetSearch or TargetImage)
	Target string

	// URL is the requested URL
	URL string

	// Cause is the underlying network error
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request to %s: %v", e.Target, e.URL, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the failure was a deadline or timeout.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Cause, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Cause, &netErr) && netErr.Timeout()
}

// DecodeError represents bytes that could not be parsed, either the
// search response (StageDescriptor) or the image itself (StageImage).
type DecodeError struct {
	// Stage is StageDescriptor or StageImage
	Stage string

	// Cause is the underlying parse error
	Cause error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Stage, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// EmptyResultError is returned when the search endpoint answers with an
// empty array.
type EmptyResultError struct {
	// URL is the search URL that was queried
	URL string
}

// Error implements the error interface.
func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%v (%s)", ErrEmptyResult, e.URL)
}

// Unwrap returns ErrEmptyResult.
func (e *EmptyResultError) Unwrap() error {
	return ErrEmptyResult
}

// Kind classifies err into one of the Kind* labels.
func Kind(err error) string {
	var (
		upstreamErr  *UpstreamError
		transportErr *TransportError
		decodeErr    *DecodeError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &upstreamErr):
		return KindUpstream
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.Is(err, ErrEmptyResult):
		return KindEmptyResult
	case errors.Is(err, ascii.ErrEmptyImage):
		return KindConvert
	default:
		return KindInternal
	}
}
