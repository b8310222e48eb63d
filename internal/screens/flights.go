package screens

import (
	"fmt"

	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/forms"
	"flightdeck.io/console/internal/travel"
	"flightdeck.io/console/internal/travel/remote"
)

func flightsScreen(c *remote.Client) Binding {
	return bind(Screen{
		Resource: authz.ResourceFlights,
		Title:    "Flights",
		Columns:  []string{"flightNumber", "originAirportId", "destinationAirportId", "departureTime", "arrivalTime", "basePrice"},
		Fields: []forms.Field{
			{Name: "flightNumber", Label: "Flight number", Kind: forms.KindText, Required: true, Section: "Schedule", Validate: forms.MaxLen(8)},
			{Name: "departureTime", Label: "Departure", Kind: forms.KindDatetimeLocal, Required: true, Section: "Schedule"},
			{Name: "arrivalTime", Label: "Arrival", Kind: forms.KindDatetimeLocal, Required: true, Section: "Schedule"},
			{Name: "originAirportId", Label: "Origin airport", Kind: forms.KindSelect, Required: true, Section: "Route",
				LoadOptions: selectOptions(c.Airports(), airportLabel)},
			{Name: "destinationAirportId", Label: "Destination airport", Kind: forms.KindSelect, Required: true, Section: "Route",
				LoadOptions: selectOptions(c.Airports(), airportLabel)},
			{Name: "aircraftId", Label: "Aircraft", Kind: forms.KindSelect, Required: true, Section: "Equipment",
				LoadOptions: selectOptions(c.Aircraft(), func(a travel.Aircraft) string { return a.Registration })},
			{Name: "flightTypeId", Label: "Flight type", Kind: forms.KindSelect, Required: true, Section: "Equipment",
				LoadOptions: selectOptions(c.FlightTypes(), func(t travel.FlightType) string { return t.Name })},
			{Name: "basePrice", Label: "Base price", Kind: forms.KindNumber, Required: true, Section: "Pricing", Validate: forms.Min(0)},
		},
	}, c.Flights())
}

func flightTypesScreen(c *remote.Client) Binding {
	return bind(Screen{
		Resource: authz.ResourceFlightTypes,
		Title:    "Flight types",
		Columns:  []string{"name", "description"},
		Fields: []forms.Field{
			{Name: "name", Label: "Name", Kind: forms.KindText, Required: true},
			{Name: "description", Label: "Description", Kind: forms.KindText, Validate: forms.MaxLen(200)},
		},
	}, c.FlightTypes())
}

func airportLabel(a travel.Airport) string {
	return fmt.Sprintf("%s (%s)", a.Code, a.Name)
}
