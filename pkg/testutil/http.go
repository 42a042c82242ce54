// Package testutil provides common test utilities for handler tests.
package testutil

import (
	"net/http"

	"primelab/pkg/requestcontext"
)

// WithRequestID adds a request correlation ID to the request context,
// simulating what the request ID middleware does in production.
func WithRequestID(req *http.Request, id string) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), id)
	return req.WithContext(ctx)
}

// WithClientMetadata adds client IP and User-Agent to the request context,
// simulating the metadata middleware.
func WithClientMetadata(req *http.Request, clientIP, userAgent string) *http.Request {
	ctx := requestcontext.WithClientMetadata(req.Context(), clientIP, userAgent)
	return req.WithContext(ctx)
}
