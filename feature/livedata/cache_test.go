package livedata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func allFlagsOn() Config {
	return Config{
		WaitTimesEnabled:     true,
		HoursEnabled:         true,
		EntertainmentEnabled: true,
		CrowdsEnabled:        true,
	}
}

func newTestCache(t *testing.T, cfg Config) (*LiveDataCache, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	cache := NewLiveDataCache(NewRepository(db, zap.NewNop()), cfg, zap.NewNop())
	t.Cleanup(cache.Close)
	return cache, mock
}

func attractionMockRows() *sqlmock.Rows {
	updated := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "park_id", "external_id", "name", "wait_time", "status",
		"lightning_lane_available", "lightning_lane_return",
		"single_rider_available", "single_rider_wait", "last_updated",
	}).AddRow(1, "epcot", "a1", "Test Track", 60, "operating",
		false, nil, false, nil, updated)
}

func TestGetWaitTimesCachesResult(t *testing.T) {
	cache, mock := newTestCache(t, allFlagsOn())

	mock.ExpectQuery("SELECT \\* FROM `live_attractions`").
		WillReturnRows(attractionMockRows())

	first := cache.GetWaitTimes(context.Background(), "epcot")
	require.Len(t, first, 1)
	assert.Equal(t, 60, first[0].WaitTimeMinutes)

	// Second read inside the TTL must be served from memory: the mock would
	// fail on an unexpected second query.
	second := cache.GetWaitTimes(context.Background(), "epcot")
	require.Len(t, second, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWaitTimesTTLExpiry(t *testing.T) {
	cache, mock := newTestCache(t, allFlagsOn())

	clock := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }

	mock.ExpectQuery("SELECT \\* FROM `live_attractions`").
		WillReturnRows(attractionMockRows())
	cache.GetWaitTimes(context.Background(), "epcot")

	// Past the wait-times TTL the entry is stale and the repository is hit
	// again.
	clock = clock.Add(waitTimesTTL)
	mock.ExpectQuery("SELECT \\* FROM `live_attractions`").
		WillReturnRows(attractionMockRows())
	cache.GetWaitTimes(context.Background(), "epcot")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWaitTimesDegradesToEmpty(t *testing.T) {
	cache, mock := newTestCache(t, allFlagsOn())

	mock.ExpectQuery("SELECT \\* FROM `live_attractions`").
		WillReturnError(errors.New("connection refused"))

	out := cache.GetWaitTimes(context.Background(), "epcot")
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestGetWaitTimesDisabled(t *testing.T) {
	cfg := allFlagsOn()
	cfg.WaitTimesEnabled = false
	cache, mock := newTestCache(t, cfg)

	// Disabled category: no repository access at all.
	out := cache.GetWaitTimes(context.Background(), "epcot")
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetParkFallbackIsNotCached(t *testing.T) {
	cache, mock := newTestCache(t, allFlagsOn())

	// Two misses mean two queries: the synthesized default park must never be
	// written into the cache.
	mock.ExpectQuery("SELECT \\* FROM `live_parks`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT \\* FROM `live_parks`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	clock := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }

	park := cache.GetPark(context.Background(), "epcot")
	require.NotNil(t, park)
	assert.Equal(t, "epcot", park.ID)
	assert.Equal(t, 9, park.Hours.RegularOpen.Hour())
	assert.Equal(t, 21, park.Hours.RegularClose.Hour())

	cache.GetPark(context.Background(), "epcot")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetParkRepositoryHit(t *testing.T) {
	cache, mock := newTestCache(t, allFlagsOn())

	updated := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	parkRows := sqlmock.NewRows([]string{
		"id", "park_id", "external_id", "name", "status",
		"regular_open", "regular_close", "early_entry_open", "extended_evening_close",
		"crowd_level", "last_updated",
	}).AddRow(1, "epcot", "abc", "EPCOT", "operating", nil, nil, nil, nil, nil, updated)

	mock.ExpectQuery("SELECT \\* FROM `live_parks`").WillReturnRows(parkRows)
	mock.ExpectQuery("SELECT \\* FROM `live_attractions`").
		WillReturnRows(attractionMockRows())
	mock.ExpectQuery("SELECT \\* FROM `live_entertainment`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	park := cache.GetPark(context.Background(), "epcot")
	require.NotNil(t, park)
	assert.Equal(t, "EPCOT", park.Name)
	require.Len(t, park.Attractions, 1)
}

func TestGetCrowdPredictionsErrorPropagates(t *testing.T) {
	cache, mock := newTestCache(t, allFlagsOn())

	mock.ExpectQuery("SELECT \\* FROM `park_crowd_predictions`").
		WillReturnError(gorm.ErrInvalidDB)

	_, err := cache.GetCrowdPredictions(context.Background(), "epcot", "2024-03-15", "2024-03-16")
	assert.Error(t, err)
}

func TestGetCrowdPredictionsFallback(t *testing.T) {
	cfg := allFlagsOn()
	cfg.CrowdFallbackEnabled = true
	cache, mock := newTestCache(t, cfg)

	mock.ExpectQuery("SELECT \\* FROM `park_crowd_predictions`").
		WillReturnError(gorm.ErrInvalidDB)

	out, err := cache.GetCrowdPredictions(context.Background(), "epcot", "2024-03-15", "2024-03-17")
	require.NoError(t, err)
	require.Len(t, out, 3)
	for _, p := range out {
		assert.Equal(t, 5, p.CrowdLevel)
		assert.Equal(t, "synthesized", p.DataSource)
	}
}

func TestClearCache(t *testing.T) {
	cache, _ := newTestCache(t, allFlagsOn())

	cache.store("waittimes:epcot", nil, time.Minute)
	cache.store("waittimes:magic-kingdom", nil, time.Minute)
	cache.store("park:epcot", nil, time.Minute)

	assert.Equal(t, 2, cache.ClearCache("epcot"))
	assert.Equal(t, 1, cache.ClearCache(""))
	assert.Equal(t, 0, cache.ClearCache("anything"))
}

func TestSubscribeParkIsIdempotent(t *testing.T) {
	cache, _ := newTestCache(t, allFlagsOn())

	require.NoError(t, cache.SubscribePark("epcot"))
	require.NoError(t, cache.SubscribePark("epcot"))

	cache.subsMu.Lock()
	ids := cache.subs["epcot"]
	cache.subsMu.Unlock()
	assert.Len(t, ids, 2)

	cache.UnsubscribePark("epcot")
	cache.subsMu.Lock()
	_, exists := cache.subs["epcot"]
	cache.subsMu.Unlock()
	assert.False(t, exists)
}

func TestGetParkForDate(t *testing.T) {
	cache, mock := newTestCache(t, allFlagsOn())

	mock.ExpectQuery("SELECT \\* FROM `live_parks`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	synced := time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC)
	predictionRows := sqlmock.NewRows([]string{
		"id", "park_id", "prediction_date", "crowd_level", "description",
		"recommendation", "data_source", "confidence_score", "synced_at",
	}).AddRow(1, "epcot", "2024-03-15", 8, "Higher", "", "queue-times", 0.9, synced)
	mock.ExpectQuery("SELECT \\* FROM `park_crowd_predictions`").
		WillReturnRows(predictionRows)

	out := cache.GetParkForDate(context.Background(), "epcot", "2024-03-15")
	require.NotNil(t, out.Park)
	require.NotNil(t, out.Prediction)
	assert.Equal(t, 8, out.Prediction.CrowdLevel)
}
