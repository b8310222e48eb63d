package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRequestLogEntryFields(t *testing.T) {
	r := httptest.NewRequest("GET", "/screens/flights?page=2", nil)
	r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, "req-42"))

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := requestLogEntry(r, 200, start, 37*time.Millisecond)

	require.Equal(t, "request_complete", entry["msg"])
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "GET", entry["method"])
	require.Equal(t, "/screens/flights", entry["path"])
	require.Equal(t, 200, entry["status"])
	require.Equal(t, int64(37), entry["duration_ms"])
	require.Equal(t, "req-42", entry["request_id"])
	require.Equal(t, "2026-03-01T12:00:00Z", entry["ts"])
}
