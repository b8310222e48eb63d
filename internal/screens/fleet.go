package screens

import (
	"fmt"

	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/forms"
	"flightdeck.io/console/internal/travel"
	"flightdeck.io/console/internal/travel/remote"
)

func aircraftScreen(c *remote.Client) Binding {
	return bind(Screen{
		Resource: authz.ResourceAircraft,
		Title:    "Aircraft",
		Columns:  []string{"registration", "aircraftTypeId", "seatCount", "manufactureYear"},
		Fields: []forms.Field{
			{Name: "registration", Label: "Registration", Kind: forms.KindText, Required: true, Validate: forms.MaxLen(10)},
			{Name: "aircraftTypeId", Label: "Aircraft type", Kind: forms.KindSelect, Required: true,
				LoadOptions: selectOptions(c.AircraftTypes(), func(t travel.AircraftType) string {
					return fmt.Sprintf("%s %s", t.Manufacturer, t.Model)
				})},
			{Name: "seatCount", Label: "Seat count", Kind: forms.KindNumber, Required: true, Validate: forms.Min(1)},
			{Name: "manufactureYear", Label: "Manufacture year", Kind: forms.KindNumber, Validate: forms.Min(1950)},
		},
	}, c.Aircraft())
}

func aircraftTypesScreen(c *remote.Client) Binding {
	return bind(Screen{
		Resource: authz.ResourceAircraftTypes,
		Title:    "Aircraft types",
		Columns:  []string{"manufacturer", "model", "description"},
		Fields: []forms.Field{
			{Name: "manufacturer", Label: "Manufacturer", Kind: forms.KindText, Required: true},
			{Name: "model", Label: "Model", Kind: forms.KindText, Required: true},
			{Name: "description", Label: "Description", Kind: forms.KindText, Validate: forms.MaxLen(200)},
		},
	}, c.AircraftTypes())
}

func airportsScreen(c *remote.Client) Binding {
	return bind(Screen{
		Resource: authz.ResourceAirports,
		Title:    "Airports",
		Columns:  []string{"code", "name", "city", "country"},
		Fields: []forms.Field{
			{Name: "code", Label: "IATA code", Kind: forms.KindText, Required: true, Validate: forms.Length(3)},
			{Name: "name", Label: "Name", Kind: forms.KindText, Required: true},
			{Name: "city", Label: "City", Kind: forms.KindText, Required: true},
			{Name: "country", Label: "Country", Kind: forms.KindText, Required: true},
		},
	}, c.Airports())
}
