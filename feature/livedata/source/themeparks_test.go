package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"park-pulse/feature/livedata/parks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRegistry() *parks.Registry {
	return parks.NewRegistryWith([]parks.Mapping{
		{
			ID:           "test-park",
			Name:         "Test Park",
			WikiEntityID: "abc-123",
			QueueTimesID: 42,
			ScrapeSlug:   "test-park",
		},
	})
}

const liveFixture = `{
	"liveData": [
		{
			"id": "e1",
			"name": "Space Coaster",
			"entityType": "ATTRACTION",
			"status": {"status": "OPERATING"},
			"queue": {"standBy": {"waitTime": 45}}
		},
		{
			"id": "e2",
			"name": "Evening Parade",
			"entityType": "SHOW",
			"status": {"status": "OPERATING"},
			"showtimes": [{"startTime": "2024-03-15T20:00:00-04:00", "type": "Performance"}]
		}
	]
}`

func TestFetchLive(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/entity/abc-123/live", r.URL.Path)
		w.Write([]byte(liveFixture))
	}))
	defer srv.Close()

	c := NewThemeParksClient(srv.URL, testRegistry(), zap.NewNop())

	resp, raw, err := c.FetchLive(context.Background(), "test-park")
	require.NoError(t, err)
	assert.Len(t, resp.LiveData, 2)
	assert.Equal(t, "Space Coaster", resp.LiveData[0].Name)
	assert.NotEmpty(t, raw)

	// Second fetch within the TTL must be served from the response cache.
	_, _, err = c.FetchLive(context.Background(), "test-park")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchLiveUnknownPark(t *testing.T) {
	c := NewThemeParksClient("http://unused", testRegistry(), zap.NewNop())

	_, _, err := c.FetchLive(context.Background(), "narnia")
	assert.ErrorIs(t, err, parks.ErrUnknown)
	assert.False(t, IsRetryable(err))
}

func TestFetchLiveStatusClassification(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		wantKind   Kind
		retryable  bool
	}{
		{"server error", http.StatusInternalServerError, KindAPI, true},
		{"not found", http.StatusNotFound, KindAPI, true},
		{"rate limited", http.StatusTooManyRequests, KindRateLimited, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			c := NewThemeParksClient(srv.URL, testRegistry(), zap.NewNop())
			_, _, err := c.FetchLive(context.Background(), "test-park")
			require.Error(t, err)

			var se *SourceError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tc.wantKind, se.Kind)
			assert.Equal(t, tc.status, se.StatusCode)
			assert.Equal(t, SourceThemeParks, se.Source)
			assert.Equal(t, tc.retryable, IsRetryable(err))
		})
	}
}

func TestFetchLiveNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Connection refused from here on.

	c := NewThemeParksClient(srv.URL, testRegistry(), zap.NewNop())
	_, _, err := c.FetchLive(context.Background(), "test-park")
	require.Error(t, err)

	var se *SourceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, KindNetwork, se.Kind)
	assert.True(t, IsRetryable(err))
}

func TestFetchLiveParseError(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"liveData": [`},
		{"missing liveData", `{"other": true}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewThemeParksClient(srv.URL, testRegistry(), zap.NewNop())
			_, _, err := c.FetchLive(context.Background(), "test-park")
			require.Error(t, err)

			var se *SourceError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, KindParse, se.Kind)
			assert.False(t, IsRetryable(err))
		})
	}
}

func TestFetchWaitTimesFiltersAttractions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(liveFixture))
	}))
	defer srv.Close()

	c := NewThemeParksClient(srv.URL, testRegistry(), zap.NewNop())
	attractions, err := c.FetchWaitTimes(context.Background(), "test-park")
	require.NoError(t, err)
	require.Len(t, attractions, 1)
	assert.Equal(t, "Space Coaster", attractions[0].Name)
}
