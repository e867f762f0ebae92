// Package offers fronts the external flight-search collaborator: a provider
// interface, a cache-aside service over it, and a mock provider for running
// without a real search backend.
package offers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Domenick1991/bookingflow/internal/domain"
	"github.com/Domenick1991/bookingflow/internal/validate"
)

type SearchUseCase interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.FlightOffer, error)
}

// Provider is the upstream offer source.
type Provider interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.FlightOffer, error)
}

// Cache stores search results by key. Nil caches are tolerated.
type Cache interface {
	GetOffers(ctx context.Context, key string) ([]domain.FlightOffer, error)
	SetOffers(ctx context.Context, key string, offers []domain.FlightOffer) error
}

type Service struct {
	provider Provider
	cache    Cache
	logger   *zap.Logger
}

func NewService(provider Provider, cache Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, cache: cache, logger: logger}
}

// Search validates the request, then serves offers cache-aside. A validation
// failure returns a *validate.Error carrying the full message list.
func (s *Service) Search(ctx context.Context, req domain.SearchRequest) ([]domain.FlightOffer, error) {
	if err := validate.SearchRequest(req).Err(); err != nil {
		return nil, err
	}

	key := searchKey(req)
	if s.cache != nil {
		if cached, err := s.cache.GetOffers(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	found, err := s.provider.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search offers: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.SetOffers(ctx, key, found); err != nil {
			s.logger.Warn("failed to cache offers", zap.String("key", key), zap.Error(err))
		}
	}
	return found, nil
}

func searchKey(req domain.SearchRequest) string {
	return fmt.Sprintf("%s:%s:%s:%s:%d", req.Origin, req.Destination, req.DepartureDate, req.ReturnDate, req.Passengers)
}

var _ SearchUseCase = (*Service)(nil)
