package domain

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusFailed    BookingStatus = "failed"
)

// ContactInfo always mirrors the primary passenger's email and phone.
type ContactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingData is the aggregate of everything collected during one booking
// attempt. It is owned exclusively by a single workflow instance; the
// passenger count is fixed at creation.
type BookingData struct {
	Passengers      []Passenger    `json:"passengers"`
	Contact         ContactInfo    `json:"contact"`
	Payment         PaymentDetails `json:"payment"`
	SpecialRequests string         `json:"specialRequests,omitempty"`
}

// FlightDetails is the confirmation summary for the canonical flight of the
// booked offer (first segment of the first itinerary).
type FlightDetails struct {
	FlightNumber  string `json:"flightNumber"`
	Airline       string `json:"airline"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	From          string `json:"from"`
	To            string `json:"to"`
}

// BookingConfirmation is created exactly once per workflow instance, on
// successful submission, and is never mutated afterwards.
type BookingConfirmation struct {
	BookingReference   string        `json:"bookingReference"`
	ConfirmationNumber string        `json:"confirmationNumber"`
	BookingDate        string        `json:"bookingDate"`
	TotalAmount        string        `json:"totalAmount"`
	Status             BookingStatus `json:"status"`
	Passengers         []Passenger   `json:"passengers"`
	FlightDetails      FlightDetails `json:"flightDetails"`
}
