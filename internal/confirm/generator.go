// Package confirm turns a validated booking aggregate plus a flight offer
// into a BookingConfirmation. Submission models the carrier round-trip: it
// has configurable latency and can be tuned to fail, and every collaborator
// with nondeterministic output (tokens, clock) is injectable.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Domenick1991/bookingflow/internal/domain"
)

// TokenSource produces the random uppercase-alphanumeric tokens used for
// booking references and confirmation numbers.
type TokenSource interface {
	Token(length int) string
}

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type randomTokenSource struct{}

func (randomTokenSource) Token(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = tokenAlphabet[rand.IntN(len(tokenAlphabet))]
	}
	return string(b)
}

var ErrNoSegments = errors.New("offer has no flight segments")

type Generator struct {
	tokens      TokenSource
	now         func() time.Time
	delay       time.Duration
	failureRate float64
	chance      func() float64
}

type GeneratorOption func(*Generator)

// WithTokenSource replaces the random token source, letting tests pin exact
// reference values.
func WithTokenSource(src TokenSource) GeneratorOption {
	return func(g *Generator) {
		g.tokens = src
	}
}

// WithClock replaces the booking-date clock.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// WithDelay sets the simulated submission latency. Zero means no wait.
func WithDelay(d time.Duration) GeneratorOption {
	return func(g *Generator) {
		g.delay = d
	}
}

// WithFailureRate makes a fraction of submissions fail, for exercising the
// retry path. Rate is clamped to [0, 1].
func WithFailureRate(rate float64) GeneratorOption {
	return func(g *Generator) {
		g.failureRate = min(max(rate, 0), 1)
	}
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		tokens: randomTokenSource{},
		now:    time.Now,
		chance: rand.Float64,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Submit finalizes the booking. On any error no confirmation is created; the
// caller keeps the aggregate untouched and may retry.
func (g *Generator) Submit(ctx context.Context, data domain.BookingData, offer domain.FlightOffer) (*domain.BookingConfirmation, error) {
	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return nil, ErrNoSegments
	}

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if g.failureRate > 0 && g.chance() < g.failureRate {
		return nil, errors.New("carrier rejected the booking, please try again")
	}

	// The first segment of the first itinerary is the canonical flight for
	// the confirmation summary.
	seg := offer.Itineraries[0].Segments[0]

	departure, err := time.Parse(time.RFC3339, seg.Departure.At)
	if err != nil {
		return nil, fmt.Errorf("parse segment departure time: %w", err)
	}
	arrival, err := time.Parse(time.RFC3339, seg.Arrival.At)
	if err != nil {
		return nil, fmt.Errorf("parse segment arrival time: %w", err)
	}

	passengers := make([]domain.Passenger, len(data.Passengers))
	copy(passengers, data.Passengers)

	return &domain.BookingConfirmation{
		BookingReference:   g.tokens.Token(8),
		ConfirmationNumber: seg.CarrierCode + g.tokens.Token(6),
		BookingDate:        g.now().UTC().Format(time.RFC3339),
		TotalAmount:        offer.Price.Total,
		Status:             domain.BookingStatusConfirmed,
		Passengers:         passengers,
		FlightDetails: domain.FlightDetails{
			FlightNumber:  seg.CarrierCode + seg.Number,
			Airline:       AirlineName(seg.CarrierCode),
			DepartureTime: departure.Format("15:04"),
			ArrivalTime:   arrival.Format("15:04"),
			From:          seg.Departure.IataCode,
			To:            seg.Arrival.IataCode,
		},
	}, nil
}
