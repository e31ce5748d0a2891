// Package utils provides general-purpose helpers shared by the server, the
// client and the functions binary: typed context keys, HMAC hashing and url
// signing, JSON response writing, the resty HTTP client, JWT handling, id
// generation and the gRPC JSON codec.
package utils

import (
	"context"
)

// TraceIDHeader carries the trace id of a request between the client and
// the server. The server echoes it back.
const TraceIDHeader = "X-Trace-ID"

type ctxKey int

const (
	userIDKey ctxKey = iota
	traceIDKey
)

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext returns the user id stored by [WithUserID].
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// WithTraceID returns a copy of ctx carrying traceID. Requests made with it
// send the id in [TraceIDHeader].
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext returns the trace id stored by [WithTraceID]. Empty ids
// are reported as missing.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(traceIDKey).(string)
	return traceID, ok && traceID != ""
}
