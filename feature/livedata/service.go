package livedata

import (
	"context"

	"park-pulse/feature/livedata/canonical"
	"park-pulse/feature/livedata/models"
	"park-pulse/feature/livedata/parks"

	"go.uber.org/zap"
)

// Service is the application-facing surface of the live data feature.
// All park reads go through the caching facade; only sync health is read
// straight from the repository.
type Service struct {
	cache    *LiveDataCache
	repo     *Repository
	registry *parks.Registry
	logger   *zap.Logger
}

// NewService creates a new live data service.
func NewService(cache *LiveDataCache, repo *Repository, registry *parks.Registry, logger *zap.Logger) *Service {
	return &Service{cache: cache, repo: repo, registry: registry, logger: logger}
}

// KnownPark reports whether the park ID resolves in the mapping registry.
func (s *Service) KnownPark(parkID string) bool {
	_, ok := s.registry.Lookup(parkID)
	return ok
}

// GetPark returns the park's live record, degraded to default hours when no
// data is available.
func (s *Service) GetPark(ctx context.Context, parkID string) *canonical.Park {
	return s.cache.GetPark(ctx, parkID)
}

// GetWaitTimes returns current attraction wait times, empty when degraded.
func (s *Service) GetWaitTimes(ctx context.Context, parkID string) []canonical.Attraction {
	return s.cache.GetWaitTimes(ctx, parkID)
}

// GetEntertainment returns the show schedule, empty when degraded.
func (s *Service) GetEntertainment(ctx context.Context, parkID string) []canonical.Entertainment {
	return s.cache.GetEntertainment(ctx, parkID)
}

// GetCrowdPredictions returns crowd predictions for the date range. This is
// the one read that can fail.
func (s *Service) GetCrowdPredictions(ctx context.Context, parkID, start, end string) ([]canonical.CrowdPrediction, error) {
	return s.cache.GetCrowdPredictions(ctx, parkID, start, end)
}

// GetParkForDate returns the park record paired with one day's prediction.
func (s *Service) GetParkForDate(ctx context.Context, parkID, date string) ParkForDate {
	return s.cache.GetParkForDate(ctx, parkID, date)
}

// GetSyncStatus returns per-source sync health.
func (s *Service) GetSyncStatus(ctx context.Context) ([]models.SyncStatus, error) {
	return s.repo.GetSyncStatus(ctx)
}
