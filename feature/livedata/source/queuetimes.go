package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"park-pulse/feature/livedata/parks"

	"go.uber.org/zap"
)

// SourceQueueTimes is the service name recorded in sync status rows.
const SourceQueueTimes = "queue-times"

// forecastTTL is the response cache TTL for crowd forecast data.
const forecastTTL = 24 * time.Hour

// Forecast is the wire shape of the crowd forecast endpoint.
type Forecast struct {
	Forecast []ForecastDay `json:"forecast"`
}

// ForecastDay is one day of predicted crowd level.
type ForecastDay struct {
	Date             string `json:"date"`
	CrowdLevel       int    `json:"crowd_level"`
	CrowdLevelString string `json:"crowd_level_string"`
}

// QueueTimesClient fetches multi-day crowd forecasts from the queue service.
type QueueTimesClient struct {
	baseURL  string
	hc       *http.Client
	cache    *respCache
	registry *parks.Registry
	logger   *zap.Logger
}

// NewQueueTimesClient creates a crowd forecast adapter.
func NewQueueTimesClient(baseURL string, registry *parks.Registry, logger *zap.Logger) *QueueTimesClient {
	return &QueueTimesClient{
		baseURL:  baseURL,
		hc:       &http.Client{Timeout: requestTimeout},
		cache:    newRespCache(),
		registry: registry,
		logger:   logger,
	}
}

// FetchForecast returns the crowd level forecast for the park plus the raw
// payload. The park ID must resolve in the mapping registry.
func (c *QueueTimesClient) FetchForecast(ctx context.Context, parkID string) (*Forecast, []byte, error) {
	m, ok := c.registry.Lookup(parkID)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", parkID, parks.ErrUnknown)
	}

	url := fmt.Sprintf("%s/parks/%d/queue_times.json", c.baseURL, m.QueueTimesID)
	body, err := fetchCached(ctx, c.hc, c.cache, SourceQueueTimes, url, forecastTTL)
	if err != nil {
		return nil, nil, err
	}

	var f Forecast
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, nil, newParseError(SourceQueueTimes, err)
	}
	if f.Forecast == nil {
		return nil, nil, newParseError(SourceQueueTimes, fmt.Errorf("missing forecast array"))
	}

	c.logger.Debug("fetched crowd forecast",
		zap.String("park", parkID),
		zap.Int("days", len(f.Forecast)))

	return &f, body, nil
}
