package screens

import (
	"fmt"

	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/forms"
	"flightdeck.io/console/internal/travel"
	"flightdeck.io/console/internal/travel/remote"
)

func ticketsScreen(c *remote.Client) Binding {
	return bind(Screen{
		Resource: authz.ResourceTickets,
		Title:    "Tickets",
		Columns:  []string{"flightId", "passengerId", "seatNumber", "price"},
		Fields: []forms.Field{
			{Name: "flightId", Label: "Flight", Kind: forms.KindSelect, Required: true, Section: "Assignment",
				LoadOptions: selectOptions(c.Flights(), func(f travel.Flight) string { return f.Number })},
			{Name: "passengerId", Label: "Passenger", Kind: forms.KindSelect, Required: true, Section: "Assignment",
				LoadOptions: selectOptions(c.Passengers(), passengerLabel)},
			{Name: "bookingId", Label: "Booking", Kind: forms.KindNumber, Section: "Assignment"},
			{Name: "seatNumber", Label: "Seat", Kind: forms.KindText, Required: true, Section: "Seat", Validate: forms.MaxLen(4)},
			{Name: "price", Label: "Price", Kind: forms.KindNumber, Required: true, Section: "Seat", Validate: forms.Min(0)},
		},
	}, c.Tickets())
}

func bookingsScreen(c *remote.Client) Binding {
	return bind(Screen{
		Resource: authz.ResourceBookings,
		Title:    "Bookings",
		Columns:  []string{"passengerId", "status", "bookedAt", "totalPrice"},
		Fields: []forms.Field{
			{Name: "passengerId", Label: "Passenger", Kind: forms.KindSelect, Required: true,
				LoadOptions: selectOptions(c.Passengers(), passengerLabel)},
			{Name: "status", Label: "Status", Kind: forms.KindSelect, Required: true,
				Options: []forms.Option{
					{Label: "Pending", Value: "PENDING"},
					{Label: "Confirmed", Value: "CONFIRMED"},
					{Label: "Cancelled", Value: "CANCELLED"},
				}},
			{Name: "bookedAt", Label: "Booked at", Kind: forms.KindDatetimeLocal, Required: true},
			{Name: "totalPrice", Label: "Total price", Kind: forms.KindNumber, Required: true, Validate: forms.Min(0)},
		},
	}, c.Bookings())
}

func passengerLabel(p travel.Passenger) string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}
