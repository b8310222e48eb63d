package screens

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flightdeck.io/console/internal/forms"
	"flightdeck.io/console/internal/travel"
	"flightdeck.io/console/internal/travel/remote"
)

func testRegistry(t *testing.T, handler http.HandlerFunc) *Registry {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRegistry(remote.NewClient(srv.URL))
}

func TestRegistryCoversEveryResource(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	want := []string{
		"flights", "aircraft", "airports", "aircraft_types", "flight_types",
		"employee_categories", "flight_crews", "passengers", "employees",
		"tickets", "bookings",
	}
	all := reg.All()
	require.Len(t, all, len(want))
	for i, b := range all {
		require.Equal(t, want[i], string(b.Resource))
		require.NotEmpty(t, b.Title)
		require.NotEmpty(t, b.Columns)
		require.NotEmpty(t, b.Fields)
		require.NotNil(t, b.List)
		require.NotNil(t, b.Create)
		require.NotNil(t, b.Update)
		require.NotNil(t, b.Delete)
	}

	_, ok := reg.Lookup("flights")
	require.True(t, ok)
	_, ok = reg.Lookup("loyalty_points")
	require.False(t, ok)
}

func TestBindingListErasesRecords(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/airports" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":7,"code":"ALA","name":"Almaty","city":"Almaty","country":"KZ"}]`))
	})

	binding, ok := reg.Lookup("airports")
	require.True(t, ok)

	rows, err := binding.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(7), rows[0].ID)
	require.Equal(t, travel.Airport{ID: 7, Code: "ALA", Name: "Almaty", City: "Almaty", Country: "KZ"}, rows[0].Record)
}

func TestSelectOptionsLoadFromSiblingCollections(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/airports" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"code":"ALA","name":"Almaty"},
			{"id":2,"code":"NQZ","name":"Astana"}
		]`))
	})

	binding, ok := reg.Lookup("flights")
	require.True(t, ok)

	var origin forms.Field
	for _, f := range binding.Fields {
		if f.Name == "originAirportId" {
			origin = f
		}
	}
	require.NotNil(t, origin.LoadOptions)

	opts, err := origin.LoadOptions(context.Background())
	require.NoError(t, err)
	require.Equal(t, []forms.Option{
		{Label: "ALA (Almaty)", Value: "1"},
		{Label: "NQZ (Astana)", Value: "2"},
	}, opts)
}

func TestPrefillMatchesSchemaFields(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	binding, ok := reg.Lookup("flights")
	require.True(t, ok)

	dep := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	row := Row{ID: 31, Record: travel.Flight{
		ID:           31,
		Number:       "FD-104",
		OriginID:     1,
		DestID:       2,
		AircraftID:   5,
		FlightTypeID: 3,
		Departure:    dep,
		Arrival:      dep.Add(2 * time.Hour),
		BasePrice:    149.5,
	}}

	values := binding.Prefill(row)
	require.Equal(t, "FD-104", values["flightNumber"].String())
	require.Equal(t, forms.Number(1), values["originAirportId"])
	require.Equal(t, forms.Number(149.5), values["basePrice"])

	parsedDep, ok := values["departureTime"].Time()
	require.True(t, ok)
	require.True(t, parsedDep.Equal(dep))

	// The record id never round-trips through the form schema.
	_, present := values["id"]
	require.False(t, present)
}
