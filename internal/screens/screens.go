// Package screens declares the console's resource screens: one field
// schema, column list and CRUD binding per resource the booking platform
// exposes. Screens are declarative; the form and list engines do the work.
package screens

import (
	"context"
	"encoding/json"
	"strconv"

	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/forms"
	"flightdeck.io/console/internal/travel"
	"flightdeck.io/console/internal/travel/remote"
)

// Screen describes one resource management screen.
type Screen struct {
	Resource authz.Resource
	Title    string
	Columns  []string
	Fields   []forms.Field
}

// Row is a type-erased displayed record.
type Row struct {
	ID     int64 `json:"id"`
	Record any   `json:"record"`
}

// RecordID satisfies the record contract so rows can back a list view.
func (r Row) RecordID() int64 { return r.ID }

// Binding is a Screen with its CRUD operations erased to a uniform shape so
// the HTTP surface can treat all screens alike.
type Binding struct {
	Screen
	List   func(ctx context.Context) ([]Row, error)
	Create func(ctx context.Context, fields travel.Fields) (Row, error)
	Update func(ctx context.Context, id int64, fields travel.Fields) (Row, error)
	Delete func(ctx context.Context, id int64) error
}

// Prefill converts a displayed record back into typed form values for edit
// mode, matching each schema field by its wire name.
func (b Binding) Prefill(row Row) forms.Values {
	raw, err := json.Marshal(row.Record)
	if err != nil {
		return forms.Values{}
	}
	var flat map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		return forms.Values{}
	}
	values := forms.Values{}
	for _, field := range b.Fields {
		v, ok := flat[field.Name]
		if !ok || v == nil {
			continue
		}
		switch typed := v.(type) {
		case float64:
			values[field.Name] = forms.Number(typed)
		case bool:
			values[field.Name] = forms.Bool(typed)
		case string:
			if parsed, err := forms.ParseValue(field.Kind, typed); err == nil {
				values[field.Name] = parsed
			} else {
				values[field.Name] = forms.Text(typed)
			}
		}
	}
	return values
}

func bind[T travel.Record](s Screen, col travel.Collection[T]) Binding {
	return Binding{
		Screen: s,
		List: func(ctx context.Context) ([]Row, error) {
			records, err := col.List(ctx)
			if err != nil {
				return nil, err
			}
			rows := make([]Row, len(records))
			for i, rec := range records {
				rows[i] = Row{ID: rec.RecordID(), Record: rec}
			}
			return rows, nil
		},
		Create: func(ctx context.Context, fields travel.Fields) (Row, error) {
			rec, err := col.Create(ctx, fields)
			if err != nil {
				return Row{}, err
			}
			return Row{ID: rec.RecordID(), Record: rec}, nil
		},
		Update: func(ctx context.Context, id int64, fields travel.Fields) (Row, error) {
			rec, err := col.Update(ctx, id, fields)
			if err != nil {
				return Row{}, err
			}
			return Row{ID: rec.RecordID(), Record: rec}, nil
		},
		Delete: col.Delete,
	}
}

// selectOptions builds an option producer over another collection, labeling
// each record with the given function.
func selectOptions[T travel.Record](col travel.Collection[T], label func(T) string) forms.OptionProducer {
	return func(ctx context.Context) ([]forms.Option, error) {
		records, err := col.List(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]forms.Option, len(records))
		for i, rec := range records {
			opts[i] = forms.Option{Label: label(rec), Value: formatID(rec.RecordID())}
		}
		return opts, nil
	}
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

// Registry holds every console screen bound to the platform client.
type Registry struct {
	bindings []Binding
	byName   map[authz.Resource]Binding
}

// NewRegistry declares all screens over client.
func NewRegistry(client *remote.Client) *Registry {
	bindings := []Binding{
		flightsScreen(client),
		aircraftScreen(client),
		airportsScreen(client),
		aircraftTypesScreen(client),
		flightTypesScreen(client),
		employeeCategoriesScreen(client),
		flightCrewsScreen(client),
		passengersScreen(client),
		employeesScreen(client),
		ticketsScreen(client),
		bookingsScreen(client),
	}
	byName := make(map[authz.Resource]Binding, len(bindings))
	for _, b := range bindings {
		byName[b.Resource] = b
	}
	return &Registry{bindings: bindings, byName: byName}
}

// All returns every screen in navigation order.
func (r *Registry) All() []Binding { return r.bindings }

// Lookup finds a screen by resource name.
func (r *Registry) Lookup(resource string) (Binding, bool) {
	b, ok := r.byName[authz.Resource(resource)]
	return b, ok
}
