package domain

// FlightOffer is the priced itinerary proposal returned by the flight-search
// provider. It is read-only input for the booking workflow.
type FlightOffer struct {
	ID          string      `json:"id"`
	Itineraries []Itinerary `json:"itineraries"`
	Price       Price       `json:"price"`
}

type Itinerary struct {
	Duration string    `json:"duration,omitempty"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	CarrierCode string       `json:"carrierCode"`
	Number      string       `json:"number"`
	Departure   SegmentPoint `json:"departure"`
	Arrival     SegmentPoint `json:"arrival"`
}

// SegmentPoint is one end of a segment: IATA airport code plus an ISO-8601
// local timestamp.
type SegmentPoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

// Price amounts are kept as numeric strings, as delivered by the provider.
type Price struct {
	Currency string `json:"currency,omitempty"`
	Base     string `json:"base"`
	Total    string `json:"total"`
}

// SearchRequest describes an offer search. Dates are YYYY-MM-DD.
type SearchRequest struct {
	Origin        string `json:"origin" form:"origin"`
	Destination   string `json:"destination" form:"destination"`
	DepartureDate string `json:"departureDate" form:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty" form:"returnDate"`
	Passengers    int    `json:"passengers" form:"passengers"`
}
