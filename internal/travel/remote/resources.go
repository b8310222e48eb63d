package remote

import (
	"context"
	"fmt"
	"net/http"

	"flightdeck.io/console/internal/travel"
)

// collection binds one resource path to the generic CRUD contract.
type collection[T travel.Record] struct {
	c    *Client
	path string
	name string
}

func (r collection[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, http.MethodGet, r.path, nil, &out, r.name+".list"); err != nil {
		return nil, err
	}
	return out, nil
}

func (r collection[T]) Create(ctx context.Context, fields travel.Fields) (T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPost, r.path, fields, &out, r.name+".create"); err != nil {
		return out, err
	}
	return out, nil
}

func (r collection[T]) Update(ctx context.Context, id int64, fields travel.Fields) (T, error) {
	var out T
	path := fmt.Sprintf("%s/%d", r.path, id)
	if err := r.c.do(ctx, http.MethodPut, path, fields, &out, r.name+".update"); err != nil {
		return out, err
	}
	return out, nil
}

func (r collection[T]) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/%d", r.path, id)
	return r.c.do(ctx, http.MethodDelete, path, nil, nil, r.name+".delete")
}

func (c *Client) Flights() travel.Collection[travel.Flight] {
	return collection[travel.Flight]{c: c, path: "/flights", name: "flights"}
}

func (c *Client) Aircraft() travel.Collection[travel.Aircraft] {
	return collection[travel.Aircraft]{c: c, path: "/aircraft", name: "aircraft"}
}

func (c *Client) Airports() travel.Collection[travel.Airport] {
	return collection[travel.Airport]{c: c, path: "/airports", name: "airports"}
}

func (c *Client) AircraftTypes() travel.Collection[travel.AircraftType] {
	return collection[travel.AircraftType]{c: c, path: "/aircraft-types", name: "aircraft_types"}
}

func (c *Client) FlightTypes() travel.Collection[travel.FlightType] {
	return collection[travel.FlightType]{c: c, path: "/flight-types", name: "flight_types"}
}

func (c *Client) EmployeeCategories() travel.Collection[travel.EmployeeCategory] {
	return collection[travel.EmployeeCategory]{c: c, path: "/employee-categories", name: "employee_categories"}
}

func (c *Client) FlightCrews() travel.Collection[travel.FlightCrew] {
	return collection[travel.FlightCrew]{c: c, path: "/flight-crews", name: "flight_crews"}
}

func (c *Client) Passengers() travel.Collection[travel.Passenger] {
	return collection[travel.Passenger]{c: c, path: "/passengers", name: "passengers"}
}

func (c *Client) Employees() travel.Collection[travel.Employee] {
	return collection[travel.Employee]{c: c, path: "/employees", name: "employees"}
}

func (c *Client) Tickets() travel.Collection[travel.Ticket] {
	return collection[travel.Ticket]{c: c, path: "/tickets", name: "tickets"}
}

func (c *Client) Bookings() travel.Collection[travel.Booking] {
	return collection[travel.Booking]{c: c, path: "/bookings", name: "bookings"}
}
