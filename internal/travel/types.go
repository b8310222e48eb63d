package travel

import "time"

// Account is the identity returned by the booking platform's auth endpoints.
type Account struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// AuthPayload carries the token pair and identity issued on login/register.
type AuthPayload struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	User         Account `json:"user"`
}

// RegisterRequest is the payload for creating a new identity.
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Username   string `json:"username"`
	NationalID string `json:"nationalId"`
}

// Flight is a scheduled flight between two airports.
type Flight struct {
	ID           int64     `json:"id"`
	Number       string    `json:"flightNumber"`
	OriginID     int64     `json:"originAirportId"`
	DestID       int64     `json:"destinationAirportId"`
	AircraftID   int64     `json:"aircraftId"`
	FlightTypeID int64     `json:"flightTypeId"`
	Departure    time.Time `json:"departureTime"`
	Arrival      time.Time `json:"arrivalTime"`
	BasePrice    float64   `json:"basePrice"`
}

// Aircraft is one airframe in the fleet.
type Aircraft struct {
	ID             int64  `json:"id"`
	Registration   string `json:"registration"`
	AircraftTypeID int64  `json:"aircraftTypeId"`
	SeatCount      int    `json:"seatCount"`
	ManufactureYr  int    `json:"manufactureYear"`
}

// Airport is a served airport.
type Airport struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// AircraftType is a manufacturer model (e.g. narrow-body, wide-body).
type AircraftType struct {
	ID           int64  `json:"id"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Description  string `json:"description"`
}

// FlightType classifies flights (domestic, international, charter).
type FlightType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EmployeeCategory groups employees by function.
type EmployeeCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FlightCrew is a named crew assigned to flights.
type FlightCrew struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FlightID int64  `json:"flightId"`
}

// Passenger is a traveling customer.
type Passenger struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	NationalID string `json:"nationalId"`
	BirthDate  string `json:"birthDate"`
}

// Employee is a platform staff member.
type Employee struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	CategoryID int64  `json:"employeeCategoryId"`
	CrewID     int64  `json:"flightCrewId"`
	Salary     float64 `json:"salary"`
}

// Ticket is a seat on a flight sold to a passenger.
type Ticket struct {
	ID          int64   `json:"id"`
	FlightID    int64   `json:"flightId"`
	PassengerID int64   `json:"passengerId"`
	BookingID   int64   `json:"bookingId"`
	SeatNumber  string  `json:"seatNumber"`
	Price       float64 `json:"price"`
}

// Booking groups tickets purchased together.
type Booking struct {
	ID          int64     `json:"id"`
	PassengerID int64     `json:"passengerId"`
	Status      string    `json:"status"`
	BookedAt    time.Time `json:"bookedAt"`
	Total       float64   `json:"totalPrice"`
}

func (f Flight) RecordID() int64           { return f.ID }
func (a Aircraft) RecordID() int64         { return a.ID }
func (a Airport) RecordID() int64          { return a.ID }
func (a AircraftType) RecordID() int64     { return a.ID }
func (f FlightType) RecordID() int64       { return f.ID }
func (e EmployeeCategory) RecordID() int64 { return e.ID }
func (f FlightCrew) RecordID() int64       { return f.ID }
func (p Passenger) RecordID() int64        { return p.ID }
func (e Employee) RecordID() int64         { return e.ID }
func (t Ticket) RecordID() int64           { return t.ID }
func (b Booking) RecordID() int64          { return b.ID }
