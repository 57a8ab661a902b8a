// Package shared provides helpers common to all API handlers: context
// keys, request decoding and response writing.
package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// ContextKey is a dedicated type for request context keys to avoid
// collisions with keys from other packages.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated user's uuid.UUID.
	UserIDContextKey ContextKey = "userID"

	// AccessTokenContextKey holds the raw bearer token the request
	// authenticated with. Logout reads it to denylist the token.
	AccessTokenContextKey ContextKey = "accessToken"

	// TraceIDKey holds the per-request trace ID.
	TraceIDKey ContextKey = "traceID"
)

// TraceIDLength is the length of generated trace IDs in hex characters.
const TraceIDLength = 16

// SetTraceID returns a context carrying a freshly generated trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID returns the trace ID from the context, or "" if absent.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// GetAccessToken returns the raw bearer token stored by the auth
// middleware, or "" if the request was not authenticated.
func GetAccessToken(ctx context.Context) string {
	token, ok := ctx.Value(AccessTokenContextKey).(string)
	if !ok {
		return ""
	}
	return token
}

// generateTraceID produces a short random hex identifier. If the system
// randomness source fails it falls back to a timestamp-derived value so
// requests are still distinguishable in logs.
func generateTraceID() string {
	buf := make([]byte, TraceIDLength/2)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("t-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
