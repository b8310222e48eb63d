package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/ids"
)

// Store persists entries in Postgres.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ Recorder = (*Store)(nil)

// Open connects to the audit database.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return NewStore(db), nil
}

// NewStore wraps an existing connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Close() error { return s.db.Close() }

// DB exposes the pool for readiness probing.
func (s *Store) DB() *sql.DB { return s.db }

// Record inserts one entry. Missing id and timestamp are filled in.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	if e.ID == "" {
		e.ID = ids.NewAt(e.CreatedAt)
	}
	if e.RequestID == "" {
		e.RequestID = RequestIDFromContext(ctx)
	}
	detail := e.Detail
	if detail == nil {
		detail = map[string]any{}
	}
	payload, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		insert into audit_log(id, request_id, actor_id, actor_role, event, resource, record_id, detail, created_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, e.ID, e.RequestID, e.ActorID, string(e.ActorRole), e.Event, e.Resource, e.RecordID, payload, e.CreatedAt)
	return err
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		select id, request_id, actor_id, actor_role, event, resource, record_id, detail, created_at
		from audit_log
		order by created_at desc, id desc
		limit $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var role string
		var payload []byte
		if err := rows.Scan(&e.ID, &e.RequestID, &e.ActorID, &role, &e.Event, &e.Resource, &e.RecordID, &payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.ActorRole = authz.Role(role)
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &e.Detail); err != nil {
				return nil, err
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
