package confirm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Domenick1991/bookingflow/internal/domain"
)

// staticTokenSource returns canned tokens so outputs can be asserted exactly.
type staticTokenSource struct {
	tokens []string
	next   int
}

func (s *staticTokenSource) Token(length int) string {
	token := s.tokens[s.next%len(s.tokens)]
	s.next++
	return token
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testOffer() domain.FlightOffer {
	return domain.FlightOffer{
		ID: "offer-1",
		Itineraries: []domain.Itinerary{{
			Segments: []domain.Segment{{
				CarrierCode: "AA",
				Number:      "123",
				Departure:   domain.SegmentPoint{IataCode: "JFK", At: "2025-01-15T10:00:00Z"},
				Arrival:     domain.SegmentPoint{IataCode: "LAX", At: "2025-01-15T14:00:00Z"},
			}},
		}},
		Price: domain.Price{Currency: "USD", Base: "380.00", Total: "450.00"},
	}
}

func testBookingData() domain.BookingData {
	return domain.BookingData{
		Passengers: []domain.Passenger{{
			ID: "p-1", FirstName: "John", LastName: "Doe",
			DateOfBirth: "1990-01-01", Email: "john@x.com", Phone: "+1-555-123-4567",
		}},
		Contact: domain.ContactInfo{Email: "john@x.com", Phone: "+1-555-123-4567"},
	}
}

func TestGenerator_Submit(t *testing.T) {
	bookedAt := time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)
	gen := NewGenerator(
		WithTokenSource(&staticTokenSource{tokens: []string{"REF45678", "CNF123"}}),
		WithClock(fixedClock(bookedAt)),
	)

	conf, err := gen.Submit(context.Background(), testBookingData(), testOffer())

	assert.NoError(t, err)
	assert.Equal(t, "REF45678", conf.BookingReference)
	assert.Equal(t, "AACNF123", conf.ConfirmationNumber)
	assert.Equal(t, "2025-01-10T09:30:00Z", conf.BookingDate)
	assert.Equal(t, "450.00", conf.TotalAmount)
	assert.Equal(t, domain.BookingStatusConfirmed, conf.Status)
	assert.Equal(t, "AA123", conf.FlightDetails.FlightNumber)
	assert.Equal(t, "American Airlines", conf.FlightDetails.Airline)
	assert.Equal(t, "10:00", conf.FlightDetails.DepartureTime)
	assert.Equal(t, "14:00", conf.FlightDetails.ArrivalTime)
	assert.Equal(t, "JFK", conf.FlightDetails.From)
	assert.Equal(t, "LAX", conf.FlightDetails.To)
	assert.Len(t, conf.Passengers, 1)
	assert.Equal(t, "John", conf.Passengers[0].FirstName)
}

// The passenger list on the confirmation is a copy; later edits to the
// aggregate must not reach it.
func TestGenerator_Submit_CopiesPassengers(t *testing.T) {
	gen := NewGenerator(WithTokenSource(&staticTokenSource{tokens: []string{"A"}}))
	data := testBookingData()

	conf, err := gen.Submit(context.Background(), data, testOffer())
	assert.NoError(t, err)

	data.Passengers[0].FirstName = "Changed"
	assert.Equal(t, "John", conf.Passengers[0].FirstName)
}

func TestGenerator_Submit_NoSegments(t *testing.T) {
	gen := NewGenerator()

	conf, err := gen.Submit(context.Background(), testBookingData(), domain.FlightOffer{})

	assert.Nil(t, conf)
	assert.ErrorIs(t, err, ErrNoSegments)
}

func TestGenerator_Submit_BadSegmentTimestamp(t *testing.T) {
	gen := NewGenerator()
	offer := testOffer()
	offer.Itineraries[0].Segments[0].Departure.At = "garbage"

	conf, err := gen.Submit(context.Background(), testBookingData(), offer)

	assert.Nil(t, conf)
	assert.Error(t, err)
}

func TestGenerator_Submit_FailureRate(t *testing.T) {
	gen := NewGenerator(WithFailureRate(1))

	conf, err := gen.Submit(context.Background(), testBookingData(), testOffer())

	assert.Nil(t, conf)
	assert.Error(t, err)
}

func TestGenerator_Submit_CanceledDuringDelay(t *testing.T) {
	gen := NewGenerator(WithDelay(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conf, err := gen.Submit(ctx, testBookingData(), testOffer())

	assert.Nil(t, conf)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerator_Submit_UniqueReferences(t *testing.T) {
	gen := NewGenerator()

	first, err := gen.Submit(context.Background(), testBookingData(), testOffer())
	assert.NoError(t, err)
	second, err := gen.Submit(context.Background(), testBookingData(), testOffer())
	assert.NoError(t, err)

	assert.NotEqual(t, first.BookingReference, second.BookingReference)
	assert.Len(t, first.BookingReference, 8)
}

func TestAirlineName(t *testing.T) {
	assert.Equal(t, "American Airlines", AirlineName("AA"))
	assert.Equal(t, "Carrier ZZ", AirlineName("ZZ"))
}
