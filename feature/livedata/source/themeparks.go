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

// SourceThemeParks is the service name recorded in sync status rows.
const SourceThemeParks = "themeparks"

// liveTTL is the response cache TTL for near-real-time wait time data.
const liveTTL = 5 * time.Minute

// LiveResponse is the wire shape of the live-data endpoint.
type LiveResponse struct {
	LiveData []LiveEntity `json:"liveData"`
}

// LiveEntity is one entity (park, attraction or show) in a live response.
type LiveEntity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	EntityType string `json:"entityType"`
	Status     struct {
		Status string `json:"status"`
	} `json:"status"`
	Queue *struct {
		StandBy *struct {
			WaitTime any `json:"waitTime"`
		} `json:"standBy"`
		FastLane *struct {
			Available  bool   `json:"available"`
			ReturnTime string `json:"returnTime"`
		} `json:"fastLane"`
		SingleRider *struct {
			Available bool `json:"available"`
			WaitTime  any  `json:"waitTime"`
		} `json:"singleRider"`
	} `json:"queue"`
	Showtimes []struct {
		StartTime string `json:"startTime"`
		Type      string `json:"type"`
	} `json:"showtimes"`
	OperatingHours []OperatingPeriod `json:"operatingHours"`
}

// OperatingPeriod is one operating-hours window on a live entity.
// Type is one of OPERATING, EXTRA_HOURS or PRIVATE; other types are ignored.
type OperatingPeriod struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
}

// ThemeParksClient fetches live park data (wait times, hours, showtimes) from
// the theme-park live data API.
type ThemeParksClient struct {
	baseURL  string
	hc       *http.Client
	cache    *respCache
	registry *parks.Registry
	logger   *zap.Logger
}

// NewThemeParksClient creates a live-data adapter.
func NewThemeParksClient(baseURL string, registry *parks.Registry, logger *zap.Logger) *ThemeParksClient {
	return &ThemeParksClient{
		baseURL:  baseURL,
		hc:       &http.Client{Timeout: requestTimeout},
		cache:    newRespCache(),
		registry: registry,
		logger:   logger,
	}
}

// FetchLive returns every live entity for the park plus the raw payload.
// The park ID must resolve in the mapping registry; a miss fails fast with
// parks.ErrUnknown.
func (c *ThemeParksClient) FetchLive(ctx context.Context, parkID string) (*LiveResponse, []byte, error) {
	m, ok := c.registry.Lookup(parkID)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", parkID, parks.ErrUnknown)
	}

	url := fmt.Sprintf("%s/entity/%s/live", c.baseURL, m.WikiEntityID)
	body, err := fetchCached(ctx, c.hc, c.cache, SourceThemeParks, url, liveTTL)
	if err != nil {
		return nil, nil, err
	}

	var resp LiveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, newParseError(SourceThemeParks, err)
	}
	if resp.LiveData == nil {
		return nil, nil, newParseError(SourceThemeParks, fmt.Errorf("missing liveData array"))
	}

	c.logger.Debug("fetched live data",
		zap.String("park", parkID),
		zap.Int("entities", len(resp.LiveData)))

	return &resp, body, nil
}

// FetchWaitTimes is the narrower call returning only attraction entities.
func (c *ThemeParksClient) FetchWaitTimes(ctx context.Context, parkID string) ([]LiveEntity, error) {
	resp, _, err := c.FetchLive(ctx, parkID)
	if err != nil {
		return nil, err
	}

	var attractions []LiveEntity
	for _, e := range resp.LiveData {
		if e.EntityType == "ATTRACTION" {
			attractions = append(attractions, e)
		}
	}
	return attractions, nil
}
