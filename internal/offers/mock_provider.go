package offers

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/Domenick1991/bookingflow/internal/domain"
)

var mockCarriers = []string{"AA", "DL", "UA", "B6", "AS"}

// MockProvider generates plausible offers for any searched route. Results
// are deterministic per request, so repeated searches (and cache refills)
// agree with each other.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Search(_ context.Context, req domain.SearchRequest) ([]domain.FlightOffer, error) {
	rng := rand.New(rand.NewPCG(routeSeed(req), 0))

	count := 3 + rng.IntN(3)
	offers := make([]domain.FlightOffer, 0, count)
	for i := 0; i < count; i++ {
		carrier := mockCarriers[rng.IntN(len(mockCarriers))]
		number := fmt.Sprintf("%d", 100+rng.IntN(900))
		departHour := 6 + rng.IntN(14)
		durationHours := 2 + rng.IntN(9)

		base := float64(80 + rng.IntN(400) + i*25)
		total := base * 1.18

		offers = append(offers, domain.FlightOffer{
			ID: fmt.Sprintf("%s-%s-%s-%d", req.Origin, req.Destination, req.DepartureDate, i+1),
			Itineraries: []domain.Itinerary{{
				Duration: fmt.Sprintf("PT%dH", durationHours),
				Segments: []domain.Segment{{
					CarrierCode: carrier,
					Number:      number,
					Departure: domain.SegmentPoint{
						IataCode: req.Origin,
						At:       fmt.Sprintf("%sT%02d:00:00Z", req.DepartureDate, departHour),
					},
					Arrival: domain.SegmentPoint{
						IataCode: req.Destination,
						At:       fmt.Sprintf("%sT%02d:00:00Z", req.DepartureDate, (departHour+durationHours)%24),
					},
				}},
			}},
			Price: domain.Price{
				Currency: "USD",
				Base:     fmt.Sprintf("%.2f", base),
				Total:    fmt.Sprintf("%.2f", total),
			},
		})
	}
	return offers, nil
}

func routeSeed(req domain.SearchRequest) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s", req.Origin, req.Destination, req.DepartureDate)
	return h.Sum64()
}

var _ Provider = (*MockProvider)(nil)
