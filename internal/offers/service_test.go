package offers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/bookingflow/internal/domain"
	"github.com/Domenick1991/bookingflow/internal/validate"
)

type MockSearchProvider struct {
	mock.Mock
}

func (m *MockSearchProvider) Search(ctx context.Context, req domain.SearchRequest) ([]domain.FlightOffer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightOffer), args.Error(1)
}

type MockOfferCache struct {
	mock.Mock
}

func (m *MockOfferCache) GetOffers(ctx context.Context, key string) ([]domain.FlightOffer, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightOffer), args.Error(1)
}

func (m *MockOfferCache) SetOffers(ctx context.Context, key string, offers []domain.FlightOffer) error {
	args := m.Called(ctx, key, offers)
	return args.Error(0)
}

func searchReq() domain.SearchRequest {
	return domain.SearchRequest{
		Origin:        "JFK",
		Destination:   "LAX",
		DepartureDate: "2099-09-01",
		Passengers:    1,
	}
}

func TestService_Search_CacheMiss(t *testing.T) {
	provider := &MockSearchProvider{}
	cache := &MockOfferCache{}
	service := NewService(provider, cache, nil)

	ctx := context.Background()
	req := searchReq()
	found := []domain.FlightOffer{{ID: "offer-1"}}

	cache.On("GetOffers", ctx, "JFK:LAX:2099-09-01::1").Return(nil, nil).Once()
	provider.On("Search", ctx, req).Return(found, nil).Once()
	cache.On("SetOffers", ctx, "JFK:LAX:2099-09-01::1", found).Return(nil).Once()

	got, err := service.Search(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, found, got)
	provider.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Search_CacheHitSkipsProvider(t *testing.T) {
	provider := &MockSearchProvider{}
	cache := &MockOfferCache{}
	service := NewService(provider, cache, nil)

	ctx := context.Background()
	cached := []domain.FlightOffer{{ID: "cached-1"}}
	cache.On("GetOffers", ctx, mock.Anything).Return(cached, nil).Once()

	got, err := service.Search(ctx, searchReq())

	assert.NoError(t, err)
	assert.Equal(t, cached, got)
	provider.AssertNotCalled(t, "Search")
	cache.AssertExpectations(t)
}

func TestService_Search_InvalidRequest(t *testing.T) {
	provider := &MockSearchProvider{}
	service := NewService(provider, nil, nil)

	_, err := service.Search(context.Background(), domain.SearchRequest{
		Origin:      "JFK",
		Destination: "JFK",
		Passengers:  0,
	})

	var verr *validate.Error
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "origin and destination cannot be the same")
	provider.AssertNotCalled(t, "Search")
}

func TestService_Search_ProviderError(t *testing.T) {
	provider := &MockSearchProvider{}
	service := NewService(provider, nil, nil)

	provider.On("Search", mock.Anything, mock.Anything).
		Return(nil, errors.New("upstream down")).Once()

	_, err := service.Search(context.Background(), searchReq())

	assert.ErrorContains(t, err, "upstream down")
	provider.AssertExpectations(t)
}

func TestService_Search_NilCacheTolerated(t *testing.T) {
	provider := &MockSearchProvider{}
	service := NewService(provider, nil, nil)

	found := []domain.FlightOffer{{ID: "offer-1"}}
	provider.On("Search", mock.Anything, mock.Anything).Return(found, nil).Once()

	got, err := service.Search(context.Background(), searchReq())

	assert.NoError(t, err)
	assert.Equal(t, found, got)
}

func TestMockProvider_Deterministic(t *testing.T) {
	provider := NewMockProvider()
	ctx := context.Background()

	first, err := provider.Search(ctx, searchReq())
	assert.NoError(t, err)
	second, err := provider.Search(ctx, searchReq())
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, len(first), 3)
	for _, offer := range first {
		assert.NotEmpty(t, offer.Itineraries)
		assert.NotEmpty(t, offer.Itineraries[0].Segments)
		assert.Equal(t, "JFK", offer.Itineraries[0].Segments[0].Departure.IataCode)
		assert.Equal(t, "LAX", offer.Itineraries[0].Segments[0].Arrival.IataCode)
		assert.NotEmpty(t, offer.Price.Total)
	}
}
