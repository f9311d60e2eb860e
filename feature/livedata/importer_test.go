package livedata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"park-pulse/feature/livedata/parks"
	"park-pulse/feature/livedata/source"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImportYear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/bad-park/") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`
			<td data-date="2024-03-15" data-wait="27">15</td>
			<td data-date="2024-03-16" data-wait="41">16</td>`))
	}))
	defer srv.Close()

	registry := parks.NewRegistryWith([]parks.Mapping{
		{ID: "good-park", Name: "Good Park", ScrapeSlug: "good-park"},
		{ID: "bad-park", Name: "Bad Park", ScrapeSlug: "bad-park"},
	})

	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `park_crowd_predictions`").
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	logger := zap.NewNop()
	calendar := source.NewCrowdCalendarClient(srv.URL, registry, logger)
	repo := NewRepository(db, logger)
	importer := NewCrowdImporter(registry, calendar, repo, Config{ImportDelayMs: 1}, logger)

	var events []ImportProgress
	result, err := importer.ImportYear(context.Background(), 2024, func(p ImportProgress) {
		events = append(events, p)
	})
	require.NoError(t, err)

	// One park succeeded, one failed; the batch still completes.
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.RecordsImported)
	assert.Equal(t, 2, result.ParksCompleted)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "bad-park")

	// Before and after reports for each park, in registry order.
	require.Len(t, events, 4)
	assert.Equal(t, ImportProgress{
		CurrentPark: "good-park", ParksCompleted: 0, TotalParks: 2,
		RecordsImported: 0, Status: "importing",
	}, events[0])
	assert.Equal(t, "done", events[1].Status)
	assert.Equal(t, 2, events[1].RecordsImported)
	assert.Equal(t, "importing", events[2].Status)
	assert.Equal(t, ImportProgress{
		CurrentPark: "bad-park", ParksCompleted: 2, TotalParks: 2,
		RecordsImported: 2, Status: "failed",
	}, events[3])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportYearCancelledMidBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<td data-date="2024-03-15" data-wait="27">15</td>`))
	}))
	defer srv.Close()

	registry := parks.NewRegistryWith([]parks.Mapping{
		{ID: "first-park", Name: "First Park", ScrapeSlug: "first-park"},
		{ID: "second-park", Name: "Second Park", ScrapeSlug: "second-park"},
	})

	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `park_crowd_predictions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	logger := zap.NewNop()
	calendar := source.NewCrowdCalendarClient(srv.URL, registry, logger)
	repo := NewRepository(db, logger)
	importer := NewCrowdImporter(registry, calendar, repo, Config{ImportDelayMs: 50}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	result, err := importer.ImportYear(ctx, 2024, func(p ImportProgress) {
		if p.Status == "done" {
			cancel()
		}
	})

	// Cancellation surfaces as an error carrying the partial progress.
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.ParksCompleted)
	assert.Equal(t, 1, result.RecordsImported)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[len(result.Errors)-1], "context canceled")
}

func TestImportYearEmptyCalendars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>nothing here</body></html>`))
	}))
	defer srv.Close()

	registry := parks.NewRegistryWith([]parks.Mapping{
		{ID: "good-park", Name: "Good Park", ScrapeSlug: "good-park"},
	})

	db, _ := setupMockDB(t)
	logger := zap.NewNop()
	calendar := source.NewCrowdCalendarClient(srv.URL, registry, logger)
	importer := NewCrowdImporter(registry, calendar, NewRepository(db, logger), Config{ImportDelayMs: 1}, logger)

	result, err := importer.ImportYear(context.Background(), 2024, nil)
	require.NoError(t, err)

	// No extracted entries is not an error, but it is not success either.
	assert.False(t, result.Success)
	assert.Zero(t, result.RecordsImported)
	assert.Empty(t, result.Errors)
}
