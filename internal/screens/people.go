package screens

import (
	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/forms"
	"flightdeck.io/console/internal/travel"
	"flightdeck.io/console/internal/travel/remote"
)

func employeeCategoriesScreen(c *remote.Client) Binding {
	return bind(Screen{
		Resource: authz.ResourceEmployeeCategories,
		Title:    "Employee categories",
		Columns:  []string{"name", "description"},
		Fields: []forms.Field{
			{Name: "name", Label: "Name", Kind: forms.KindText, Required: true},
			{Name: "description", Label: "Description", Kind: forms.KindText, Validate: forms.MaxLen(200)},
		},
	}, c.EmployeeCategories())
}

func flightCrewsScreen(c *remote.Client) Binding {
	return bind(Screen{
		Resource: authz.ResourceFlightCrews,
		Title:    "Flight crews",
		Columns:  []string{"name", "flightId"},
		Fields: []forms.Field{
			{Name: "name", Label: "Crew name", Kind: forms.KindText, Required: true},
			{Name: "flightId", Label: "Flight", Kind: forms.KindSelect, Required: true,
				LoadOptions: selectOptions(c.Flights(), func(f travel.Flight) string { return f.Number })},
		},
	}, c.FlightCrews())
}

func passengersScreen(c *remote.Client) Binding {
	return bind(Screen{
		Resource: authz.ResourcePassengers,
		Title:    "Passengers",
		Columns:  []string{"firstName", "lastName", "email", "nationalId"},
		Fields: []forms.Field{
			{Name: "firstName", Label: "First name", Kind: forms.KindText, Required: true, Section: "Identity"},
			{Name: "lastName", Label: "Last name", Kind: forms.KindText, Required: true, Section: "Identity"},
			{Name: "nationalId", Label: "National ID", Kind: forms.KindText, Required: true, Section: "Identity", Validate: forms.MaxLen(20)},
			{Name: "birthDate", Label: "Birth date", Kind: forms.KindDate, Section: "Identity"},
			{Name: "email", Label: "Email", Kind: forms.KindEmail, Required: true, Section: "Contact", Validate: forms.Email()},
		},
	}, c.Passengers())
}

func employeesScreen(c *remote.Client) Binding {
	return bind(Screen{
		Resource: authz.ResourceEmployees,
		Title:    "Employees",
		Columns:  []string{"firstName", "lastName", "email", "employeeCategoryId"},
		Fields: []forms.Field{
			{Name: "firstName", Label: "First name", Kind: forms.KindText, Required: true, Section: "Identity"},
			{Name: "lastName", Label: "Last name", Kind: forms.KindText, Required: true, Section: "Identity"},
			{Name: "email", Label: "Email", Kind: forms.KindEmail, Required: true, Section: "Identity", Validate: forms.Email()},
			{Name: "employeeCategoryId", Label: "Category", Kind: forms.KindSelect, Required: true, Section: "Assignment",
				LoadOptions: selectOptions(c.EmployeeCategories(), func(ec travel.EmployeeCategory) string { return ec.Name })},
			{Name: "flightCrewId", Label: "Flight crew", Kind: forms.KindSelect, Section: "Assignment",
				LoadOptions: selectOptions(c.FlightCrews(), func(fc travel.FlightCrew) string { return fc.Name })},
			{Name: "salary", Label: "Salary", Kind: forms.KindNumber, Section: "Assignment", Validate: forms.Min(0)},
		},
	}, c.Employees())
}
