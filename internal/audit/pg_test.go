package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"flightdeck.io/console/internal/authz"
)

func TestStoreRecordFillsDefaults(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	store := NewStore(db)
	store.now = func() time.Time { return now }

	mock.ExpectExec(`insert into audit_log`).
		WithArgs(sqlmock.AnyArg(), "req-9", int64(12), "ADMIN", "flights.create", "flights", int64(0), []byte(`{"flightNumber":"FD-104"}`), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := WithRequestID(context.Background(), "req-9")
	err = store.Record(ctx, Entry{
		ActorID:   12,
		ActorRole: authz.RoleAdmin,
		Event:     "flights.create",
		Resource:  "flights",
		Detail:    map[string]any{"flightNumber": "FD-104"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRecent(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "actor_id", "actor_role", "event", "resource", "record_id", "detail", "created_at",
	}).AddRow("01X", "req-1", int64(3), "MODERATOR", "tickets.delete", "tickets", int64(44), []byte(`{"confirmed":true}`), created)

	mock.ExpectQuery(`select .+ from audit_log`).WithArgs(10).WillReturnRows(rows)

	got, err := NewStore(db).Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, authz.RoleModerator, got[0].ActorRole)
	require.Equal(t, "tickets.delete", got[0].Event)
	require.Equal(t, int64(44), got[0].RecordID)
	require.Equal(t, map[string]any{"confirmed": true}, got[0].Detail)
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	require.Empty(t, RequestIDFromContext(ctx))

	ctx = WithRequestID(ctx, "  ")
	require.Empty(t, RequestIDFromContext(ctx))

	ctx = WithRequestID(ctx, "req-7")
	require.Equal(t, "req-7", RequestIDFromContext(ctx))
}
