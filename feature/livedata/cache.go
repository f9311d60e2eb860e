package livedata

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"park-pulse/feature/livedata/canonical"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Per-category cache TTLs.
const (
	waitTimesTTL     = 5 * time.Minute
	hoursTTL         = time.Hour
	entertainmentTTL = 30 * time.Minute
	crowdTTL         = 24 * time.Hour
)

// Auto-refresh cadences for subscribed parks.
const (
	waitTimesRefreshEvery = "@every 5m"
	hoursRefreshEvery     = "@every 1h"
)

// CacheEntry is a perishable view of a repository value. It expires purely by
// wall-clock comparison at read time; there is no background sweep.
type CacheEntry struct {
	value      any
	capturedAt time.Time
	ttl        time.Duration
}

func (e CacheEntry) expired(now time.Time) bool {
	return now.Sub(e.capturedAt) >= e.ttl
}

// LiveDataCache is the only read path exposed to the rest of the application.
// Every read applies the same precedence: fresh in-memory entry, then the
// repository (populating the cache on success), then a conservative fallback.
// Synthesized fallbacks are never written into the cache, so a later
// repository write is picked up on the next read.
type LiveDataCache struct {
	repo   *Repository
	cfg    Config
	logger *zap.Logger

	mu      sync.RWMutex
	entries map[string]CacheEntry
	sf      singleflight.Group

	cron   *cron.Cron
	subsMu sync.Mutex
	subs   map[string][]cron.EntryID

	// now is injectable for TTL tests.
	now func() time.Time
}

// NewLiveDataCache creates the caching facade and starts its refresh
// scheduler.
func NewLiveDataCache(repo *Repository, cfg Config, logger *zap.Logger) *LiveDataCache {
	c := &LiveDataCache{
		repo:    repo,
		cfg:     cfg,
		logger:  logger,
		entries: make(map[string]CacheEntry),
		cron:    cron.New(),
		subs:    make(map[string][]cron.EntryID),
		now:     time.Now,
	}
	c.cron.Start()
	return c
}

// Close stops the auto-refresh scheduler. In-flight refreshes complete.
func (c *LiveDataCache) Close() {
	c.cron.Stop()
}

func (c *LiveDataCache) cached(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || entry.expired(c.now()) {
		return nil, false
	}
	return entry.value, true
}

func (c *LiveDataCache) store(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = CacheEntry{value: value, capturedAt: c.now(), ttl: ttl}
	c.mu.Unlock()
}

// readThrough resolves key via the repository under singleflight, so
// concurrent misses for the same key produce one repository query.
// A load error leaves the cache untouched.
func (c *LiveDataCache) readThrough(key string, ttl time.Duration, load func() (any, error)) (any, error) {
	if v, ok := c.cached(key); ok {
		return v, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		if v, ok := c.cached(key); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		c.store(key, v, ttl)
		return v, nil
	})
	return v, err
}

// GetPark returns the park's canonical record. It never fails: on a
// repository miss or error it degrades to a synthesized default-hours record,
// which is not cached.
func (c *LiveDataCache) GetPark(ctx context.Context, parkID string) *canonical.Park {
	if !c.cfg.HoursEnabled {
		return c.defaultPark(parkID)
	}

	v, err := c.readThrough("park:"+parkID, hoursTTL, func() (any, error) {
		return c.repo.GetPark(ctx, parkID)
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("park read degraded to default hours",
				zap.String("park", parkID), zap.Error(err))
		}
		return c.defaultPark(parkID)
	}
	return v.(*canonical.Park)
}

// GetWaitTimes returns the park's attraction wait times. It never fails: any
// repository error degrades to an empty list.
func (c *LiveDataCache) GetWaitTimes(ctx context.Context, parkID string) []canonical.Attraction {
	if !c.cfg.WaitTimesEnabled {
		return []canonical.Attraction{}
	}

	v, err := c.readThrough("waittimes:"+parkID, waitTimesTTL, func() (any, error) {
		return c.repo.GetAttractionWaitTimes(ctx, parkID)
	})
	if err != nil {
		c.logger.Warn("wait time read degraded to empty",
			zap.String("park", parkID), zap.Error(err))
		return []canonical.Attraction{}
	}
	return v.([]canonical.Attraction)
}

// GetEntertainment returns the park's show schedule. It never fails: any
// repository error degrades to an empty list.
func (c *LiveDataCache) GetEntertainment(ctx context.Context, parkID string) []canonical.Entertainment {
	if !c.cfg.EntertainmentEnabled {
		return []canonical.Entertainment{}
	}

	v, err := c.readThrough("entertainment:"+parkID, entertainmentTTL, func() (any, error) {
		return c.repo.GetEntertainment(ctx, parkID)
	})
	if err != nil {
		c.logger.Warn("entertainment read degraded to empty",
			zap.String("park", parkID), zap.Error(err))
		return []canonical.Entertainment{}
	}
	return v.([]canonical.Entertainment)
}

// GetCrowdPredictions returns predictions for [start, end]. This is the one
// read that surfaces errors: unless the flat-crowd fallback is explicitly
// enabled, a repository failure propagates to the caller.
func (c *LiveDataCache) GetCrowdPredictions(ctx context.Context, parkID, start, end string) ([]canonical.CrowdPrediction, error) {
	if !c.cfg.CrowdsEnabled {
		return []canonical.CrowdPrediction{}, nil
	}

	key := fmt.Sprintf("crowds:%s:%s:%s", parkID, start, end)
	v, err := c.readThrough(key, crowdTTL, func() (any, error) {
		return c.repo.GetCrowdPredictionsForRange(ctx, parkID, start, end)
	})
	if err != nil {
		if c.cfg.CrowdFallbackEnabled {
			c.logger.Warn("crowd read degraded to flat moderate levels",
				zap.String("park", parkID), zap.Error(err))
			return c.flatCrowdLevels(parkID, start, end), nil
		}
		return nil, err
	}
	return v.([]canonical.CrowdPrediction), nil
}

// ParkForDate pairs a park's current record with one day's crowd prediction.
type ParkForDate struct {
	Park       *canonical.Park            `json:"park"`
	Prediction *canonical.CrowdPrediction `json:"prediction,omitempty"`
}

// GetParkForDate composes GetPark with the prediction for one date. A failed
// prediction read leaves Prediction nil rather than failing the call.
func (c *LiveDataCache) GetParkForDate(ctx context.Context, parkID, date string) ParkForDate {
	out := ParkForDate{Park: c.GetPark(ctx, parkID)}

	predictions, err := c.GetCrowdPredictions(ctx, parkID, date, date)
	if err == nil && len(predictions) > 0 {
		out.Prediction = &predictions[0]
	}
	return out
}

// ClearCache invalidates entries whose key contains match. An empty match
// clears everything. Category prefixes ("waittimes:", "crowds:") and park IDs
// both work as matches.
func (c *LiveDataCache) ClearCache(match string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if match == "" {
		n := len(c.entries)
		c.entries = make(map[string]CacheEntry)
		return n
	}

	n := 0
	for key := range c.entries {
		if strings.Contains(key, match) {
			delete(c.entries, key)
			n++
		}
	}
	return n
}

// SubscribePark arms two independent refresh timers for the park, one on the
// wait-times cadence and one on the hours cadence. Callback failures are
// logged and never stop the timers. Subscribing twice is a no-op.
func (c *LiveDataCache) SubscribePark(parkID string) error {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	if _, exists := c.subs[parkID]; exists {
		return nil
	}

	waitID, err := c.cron.AddFunc(waitTimesRefreshEvery, func() {
		c.refresh(parkID, "waittimes:"+parkID, func(ctx context.Context) {
			c.GetWaitTimes(ctx, parkID)
		})
	})
	if err != nil {
		return fmt.Errorf("arming wait time refresh: %w", err)
	}

	hoursID, err := c.cron.AddFunc(hoursRefreshEvery, func() {
		c.refresh(parkID, "park:"+parkID, func(ctx context.Context) {
			c.GetPark(ctx, parkID)
		})
	})
	if err != nil {
		c.cron.Remove(waitID)
		return fmt.Errorf("arming hours refresh: %w", err)
	}

	c.subs[parkID] = []cron.EntryID{waitID, hoursID}
	c.logger.Info("park subscribed for auto-refresh", zap.String("park", parkID))
	return nil
}

// UnsubscribePark disarms the park's refresh timers.
func (c *LiveDataCache) UnsubscribePark(parkID string) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	for _, id := range c.subs[parkID] {
		c.cron.Remove(id)
	}
	delete(c.subs, parkID)
}

// refresh drops the stale entry and re-reads through the normal path.
// Panics are contained so a bad refresh can never kill the timer.
func (c *LiveDataCache) refresh(parkID, key string, read func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("auto-refresh panicked",
				zap.String("park", parkID), zap.Any("panic", r))
		}
	}()

	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	read(ctx)
}

// defaultPark synthesizes a conservative default-hours record for degraded
// reads. Typical 9-to-21 local hours, closed status, nothing else.
func (c *LiveDataCache) defaultPark(parkID string) *canonical.Park {
	now := c.now()
	open := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
	close := time.Date(now.Year(), now.Month(), now.Day(), 21, 0, 0, 0, now.Location())

	return &canonical.Park{
		ID:     parkID,
		Status: canonical.ParkClosed,
		Hours: canonical.Hours{
			RegularOpen:  open,
			RegularClose: close,
		},
		LastUpdated:   now,
		Attractions:   []canonical.Attraction{},
		Entertainment: []canonical.Entertainment{},
	}
}

// flatCrowdLevels synthesizes a moderate (level 5) prediction for every day
// in the range. Used only when the crowd fallback flag is on.
func (c *LiveDataCache) flatCrowdLevels(parkID, start, end string) []canonical.CrowdPrediction {
	startDay, err := time.Parse("2006-01-02", start)
	if err != nil {
		return []canonical.CrowdPrediction{}
	}
	endDay, err := time.Parse("2006-01-02", end)
	if err != nil || endDay.Before(startDay) {
		return []canonical.CrowdPrediction{}
	}

	now := c.now()
	var out []canonical.CrowdPrediction
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		out = append(out, canonical.CrowdPrediction{
			ParkID:      parkID,
			Date:        d.Format("2006-01-02"),
			CrowdLevel:  5,
			Description: "Average",
			DataSource:  "synthesized",
			LastUpdated: now,
		})
	}
	return out
}
