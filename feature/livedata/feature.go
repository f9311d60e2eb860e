package livedata

import (
	"park-pulse/feature/livedata/parks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the live data feature over an already-wired cache,
// repository and registry.
func NewFeature(cache *LiveDataCache, repo *Repository, registry *parks.Registry, logger *zap.Logger) *Feature {
	svc := NewService(cache, repo, registry, logger)
	h := NewHandler(svc, logger)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "livedata"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
