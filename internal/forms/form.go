package forms

import (
	"context"
	"sync"
	"time"

	"flightdeck.io/console/internal/ids"
	"flightdeck.io/console/internal/travel"
)

const (
	defaultCloseDelay = 1500 * time.Millisecond
	savedMessage      = "Saved successfully"
)

// Submitter carries the caller-supplied persistence callbacks. Create is
// used when the form has no record id, Update otherwise.
type Submitter struct {
	Create func(ctx context.Context, fields travel.Fields) error
	Update func(ctx context.Context, id int64, fields travel.Fields) error
}

// Form is one open instance of the form engine: field schema, current
// values, validation errors and submit state. It is created when a screen
// opens a record (fresh or pre-filled) and discarded on close. All state is
// guarded so late asynchronous completions are dropped instead of writing
// into a dismissed form.
type Form struct {
	mu      sync.Mutex
	id      string
	fields  []Field
	values  Values
	errors  map[string]string
	options map[string][]Option

	editingID *int64
	submit    Submitter

	saving  bool
	message string
	closed  bool

	ctx        context.Context
	cancel     context.CancelFunc
	opened     bool
	closeDelay time.Duration
	schedule   func(d time.Duration, fn func()) // injectable for tests
}

// FormOption configures a new form instance.
type FormOption func(*Form)

// WithRecord pre-fills the form from an existing record, putting it in edit
// mode. A form is in edit mode iff a record id was supplied.
func WithRecord(id int64, values Values) FormOption {
	return func(f *Form) {
		f.editingID = &id
		f.values = values.clone()
	}
}

// WithInitialValues seeds a create-mode form (defaults, copied records).
func WithInitialValues(values Values) FormOption {
	return func(f *Form) {
		if f.editingID == nil {
			f.values = values.clone()
		}
	}
}

// WithCloseDelay overrides the pause between a successful save and the
// automatic close.
func WithCloseDelay(d time.Duration) FormOption {
	return func(f *Form) {
		if d >= 0 {
			f.closeDelay = d
		}
	}
}

// WithScheduler overrides the close timer, for tests.
func WithScheduler(fn func(d time.Duration, fn func())) FormOption {
	return func(f *Form) {
		if fn != nil {
			f.schedule = fn
		}
	}
}

// New opens a form over the given schema. The schema slice is treated as
// immutable and shared between instances.
func New(fields []Field, submit Submitter, opts ...FormOption) *Form {
	ctx, cancel := context.WithCancel(context.Background())
	f := &Form{
		id:         ids.New(),
		fields:     fields,
		values:     Values{},
		errors:     map[string]string{},
		options:    map[string][]Option{},
		submit:     submit,
		ctx:        ctx,
		cancel:     cancel,
		closeDelay: defaultCloseDelay,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ID returns the form's instance id, distinguishing open instances in
// logs and audit detail.
func (f *Form) ID() string { return f.id }

// EditingID returns the record id when the form is in edit mode.
func (f *Form) EditingID() (int64, bool) {
	if f.editingID == nil {
		return 0, false
	}
	return *f.editingID, true
}

// EditMode reports whether the form was opened over an existing record.
func (f *Form) EditMode() bool { return f.editingID != nil }

// Section is a named group of fields rendered as one tab.
type Section struct {
	Name   string
	Fields []Field
}

// Sections partitions the schema by declared section name, preserving
// declaration order. A schema with no section names yields one unnamed
// section; more than one distinct name means the form renders as tabs.
func (f *Form) Sections() []Section {
	var order []string
	grouped := map[string][]Field{}
	for _, field := range f.fields {
		if _, seen := grouped[field.Section]; !seen {
			order = append(order, field.Section)
		}
		grouped[field.Section] = append(grouped[field.Section], field)
	}
	sections := make([]Section, 0, len(order))
	for _, name := range order {
		sections = append(sections, Section{Name: name, Fields: grouped[name]})
	}
	return sections
}

// Tabbed reports whether the form renders as selectable tabs.
func (f *Form) Tabbed() bool { return len(f.Sections()) > 1 }

// Open starts the asynchronous option producers. It is a no-op after the
// first call; producers run at most once per form instance and their
// results are dropped if the form closes first.
func (f *Form) Open() {
	f.mu.Lock()
	if f.opened || f.closed {
		f.mu.Unlock()
		return
	}
	f.opened = true
	ctx := f.ctx
	var producers []Field
	for _, field := range f.fields {
		if field.Kind == KindSelect && field.LoadOptions != nil {
			producers = append(producers, field)
		}
	}
	f.mu.Unlock()

	for _, field := range producers {
		field := field
		go func() {
			opts, err := field.LoadOptions(ctx)
			if err != nil {
				return
			}
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.closed {
				return
			}
			f.options[field.Name] = opts
		}()
	}
}

// Options returns the selectable options for a field: statically declared
// ones, or whatever the producer has delivered so far.
func (f *Form) Options(name string) []Option {
	f.mu.Lock()
	defer f.mu.Unlock()
	if opts, ok := f.options[name]; ok {
		return opts
	}
	for _, field := range f.fields {
		if field.Name == name {
			return field.Options
		}
	}
	return nil
}

// SetValue records the operator's input for one field and clears its error.
func (f *Form) SetValue(name string, v Value) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.values[name] = v
	delete(f.errors, name)
}

// Value returns the current value of a field.
func (f *Form) Value(name string) Value {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

// Values returns a snapshot of the current values.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.clone()
}

// Validate checks every field: a required empty field yields
// "<label> is required"; otherwise a declared validator runs on the
// non-empty value and its message is stored verbatim. It returns true when
// the form is clean.
func (f *Form) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() bool {
	f.errors = map[string]string{}
	for _, field := range f.fields {
		v := f.values[field.Name]
		if field.Required && v.IsZero() {
			f.errors[field.Name] = field.Label + " is required"
			continue
		}
		if field.Validate != nil && !v.IsZero() {
			if msg := field.Validate(v); msg != "" {
				f.errors[field.Name] = msg
			}
		}
	}
	return len(f.errors) == 0
}

// Errors returns a copy of the current field error map.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Submit validates and, when clean, invokes the create or update callback
// chosen by the form mode. On success a transient message is shown and the
// form closes after the configured delay; on failure the message carries
// the error and the form stays open with its values intact. Callback
// failures never escape to the caller — the return value only reports
// whether the save went through.
func (f *Form) Submit(ctx context.Context) bool {
	f.mu.Lock()
	if f.closed || f.saving {
		f.mu.Unlock()
		return false
	}
	if !f.validateLocked() {
		f.mu.Unlock()
		return false
	}
	f.saving = true
	f.message = ""
	fields := f.values.Fields()
	editing := f.editingID
	f.mu.Unlock()

	var err error
	switch {
	case editing != nil && f.submit.Update != nil:
		err = f.submit.Update(ctx, *editing, fields)
	case editing == nil && f.submit.Create != nil:
		err = f.submit.Create(ctx, fields)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		// The form was dismissed while the call was in flight; drop the
		// result rather than resurrecting discarded state.
		return false
	}
	f.saving = false
	if err != nil {
		f.message = err.Error()
		return false
	}
	f.message = savedMessage
	f.schedule(f.closeDelay, f.Close)
	return true
}

// Saving reports whether a submission is in flight.
func (f *Form) Saving() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saving
}

// Message returns the transient submit message.
func (f *Form) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Close dismisses the form, cancels any outstanding option producers and
// resets its state. It is idempotent.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.cancel()
	f.values = Values{}
	f.errors = map[string]string{}
	f.options = map[string][]Option{}
	f.message = ""
	f.saving = false
}

// Closed reports whether the form has been dismissed.
func (f *Form) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
