// Package audit records who changed what through the console. Every write
// that reaches the booking platform leaves one entry.
package audit

import (
	"context"
	"strings"
	"time"

	"flightdeck.io/console/internal/authz"
)

// Entry is one recorded console action.
type Entry struct {
	ID        string
	RequestID string
	ActorID   int64
	ActorRole authz.Role
	Event     string
	Resource  string
	RecordID  int64
	Detail    map[string]any
	CreatedAt time.Time
}

// Recorder persists audit entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

type ctxKey struct{}

// WithRequestID attaches the request identifier used to correlate audit
// entries with access logs.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// RequestIDFromContext extracts the request id if present.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}

// Nop discards entries. Used when no audit database is configured.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error          { return nil }
func (Nop) Recent(context.Context, int) ([]Entry, error) { return nil, nil }
