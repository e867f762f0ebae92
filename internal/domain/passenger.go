package domain

type PassengerTitle string

const (
	TitleMr  PassengerTitle = "Mr"
	TitleMrs PassengerTitle = "Mrs"
	TitleMs  PassengerTitle = "Ms"
	TitleDr  PassengerTitle = "Dr"
)

type TravelerType string

const (
	TravelerAdult  TravelerType = "adult"
	TravelerChild  TravelerType = "child"
	TravelerInfant TravelerType = "infant"
)

// Passenger is one traveler slot in a booking. Contact fields are only
// populated on the primary passenger (slot 0).
type Passenger struct {
	ID           string         `json:"id"`
	Title        PassengerTitle `json:"title"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	DateOfBirth  string         `json:"dateOfBirth"`
	TravelerType TravelerType   `json:"travelerType"`
	Email        string         `json:"email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
}
