package domain

// Flight is a directly-entered flight record, used where a full offer is not
// available (manual entry, fixtures).
type Flight struct {
	FlightNumber  string  `json:"flightNumber"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Price         float64 `json:"price"`
}
