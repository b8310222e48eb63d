// Package listview renders a collection of records with edit and delete
// affordances. It owns a mirror of the caller's records between reloads and
// keeps that mirror consistent with the backing store: optimistic removals
// only happen after the remote delete succeeded.
package listview

import (
	"context"
	"errors"
	"sync"

	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/forms"
	"flightdeck.io/console/internal/travel"
)

// ErrConfirmationRequired is returned when a delete was requested without
// the explicit confirmation step.
var ErrConfirmationRequired = errors.New("listview: delete requires confirmation")

// ErrRecordNotFound is returned when the addressed row is not displayed.
var ErrRecordNotFound = errors.New("listview: record not displayed")

// Config wires one screen's records and callbacks into a List.
type Config[T travel.Record] struct {
	Resource authz.Resource
	Role     authz.Role
	Columns  []string
	Schema   []forms.Field
	Records  []T

	// Submit backs the edit form returned by Edit.
	Submit forms.Submitter
	// Prefill converts a record into form values for edit mode.
	Prefill func(T) forms.Values
	// Remove deletes the record on the resource server.
	Remove func(ctx context.Context, id int64) error
	// Reload re-fetches the collection after a successful delete. Optional;
	// without it the list removes the row in memory.
	Reload func(ctx context.Context) ([]T, error)
}

// List is one mounted instance of the list engine.
type List[T travel.Record] struct {
	mu     sync.Mutex
	cfg    Config[T]
	rows   []T
	closed bool
}

// New mounts a list over the given records. Order is preserved exactly;
// the engine never sorts.
func New[T travel.Record](cfg Config[T]) *List[T] {
	rows := make([]T, len(cfg.Records))
	copy(rows, cfg.Records)
	return &List[T]{cfg: cfg, rows: rows}
}

// Records returns the displayed collection in display order.
func (l *List[T]) Records() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.rows))
	copy(out, l.rows)
	return out
}

// Columns returns the ordered display field names.
func (l *List[T]) Columns() []string { return l.cfg.Columns }

// Len returns the number of displayed rows.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.rows)
}

// Edit opens the form engine in edit mode over the addressed row,
// pre-filled with its current values. The edit capability is checked
// before anything else; a denied action returns a *authz.PermissionError
// and no form.
func (l *List[T]) Edit(id int64) (*forms.Form, error) {
	return l.EditWith(id, l.cfg.Submit)
}

// EditWith is Edit with a caller-supplied submitter; the capability check
// and prefill behavior are identical.
func (l *List[T]) EditWith(id int64, submit forms.Submitter) (*forms.Form, error) {
	if err := authz.Require(l.cfg.Role, l.cfg.Resource, authz.ActionEdit); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, row := range l.rows {
		if row.RecordID() == id {
			var values forms.Values
			if l.cfg.Prefill != nil {
				values = l.cfg.Prefill(row)
			}
			form := forms.New(l.cfg.Schema, submit, forms.WithRecord(id, values))
			form.Open()
			return form, nil
		}
	}
	return nil, ErrRecordNotFound
}

// Delete removes the addressed row. The caller must have passed the
// blocking confirmation prompt (confirmed=true) and hold the delete
// capability; both are checked before any network call. On success the
// displayed collection drops exactly the targeted record (or is reloaded
// when a reloader is configured); on failure it is left untouched and the
// platform error is returned.
func (l *List[T]) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := authz.Require(l.cfg.Role, l.cfg.Resource, authz.ActionDelete); err != nil {
		return err
	}

	l.mu.Lock()
	found := false
	for _, row := range l.rows {
		if row.RecordID() == id {
			found = true
			break
		}
	}
	l.mu.Unlock()
	if !found {
		return ErrRecordNotFound
	}

	if err := l.cfg.Remove(ctx, id); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	if l.cfg.Reload != nil {
		if rows, err := l.cfg.Reload(ctx); err == nil {
			l.rows = rows
			return nil
		}
		// A failed reload after a confirmed remote delete falls back to the
		// in-memory removal so the display matches the backing store.
	}
	kept := l.rows[:0]
	for _, row := range l.rows {
		if row.RecordID() != id {
			kept = append(kept, row)
		}
	}
	l.rows = kept
	return nil
}

// Close unmounts the list; late completions no longer touch the rows.
func (l *List[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}
