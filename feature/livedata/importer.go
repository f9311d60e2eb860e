package livedata

import (
	"context"
	"fmt"
	"time"

	"park-pulse/feature/livedata/canonical"
	"park-pulse/feature/livedata/parks"
	"park-pulse/feature/livedata/source"

	"go.uber.org/zap"
)

// ImportProgress is reported through the caller's callback after every park.
type ImportProgress struct {
	CurrentPark     string `json:"currentPark"`
	ParksCompleted  int    `json:"parksCompleted"`
	TotalParks      int    `json:"totalParks"`
	RecordsImported int    `json:"recordsImported"`
	Status          string `json:"status"`
}

// ImportResult summarizes a finished bulk import.
// Success is true iff at least one park yielded at least one record.
type ImportResult struct {
	Success         bool          `json:"success"`
	RecordsImported int           `json:"recordsImported"`
	ParksCompleted  int           `json:"parksCompleted"`
	Errors          []string      `json:"errors,omitempty"`
	Took            time.Duration `json:"took"`
}

// CrowdImporter walks every supported park for a historical year, scrapes its
// crowd calendar and bulk-upserts the predictions. It bypasses the caching
// facade entirely.
type CrowdImporter struct {
	registry *parks.Registry
	calendar *source.CrowdCalendarClient
	repo     *Repository
	logger   *zap.Logger
	// delay is the pause between parks; the scrape target is not ours to
	// hammer.
	delay time.Duration
}

// NewCrowdImporter wires a bulk importer.
func NewCrowdImporter(registry *parks.Registry, calendar *source.CrowdCalendarClient, repo *Repository, cfg Config, logger *zap.Logger) *CrowdImporter {
	return &CrowdImporter{
		registry: registry,
		calendar: calendar,
		repo:     repo,
		logger:   logger,
		delay:    cfg.ImportDelay(),
	}
}

// ImportYear runs the import for one calendar year. Parks are processed
// sequentially; a failing park is recorded and skipped, never aborting the
// batch. progress may be nil.
func (i *CrowdImporter) ImportYear(ctx context.Context, year int, progress func(ImportProgress)) (*ImportResult, error) {
	all := i.registry.All()
	started := time.Now()
	result := &ImportResult{}

	report := func(p ImportProgress) {
		if progress != nil {
			progress(p)
		}
	}

	for idx, m := range all {
		report(ImportProgress{
			CurrentPark:     m.ID,
			ParksCompleted:  idx,
			TotalParks:      len(all),
			RecordsImported: result.RecordsImported,
			Status:          "importing",
		})

		imported, err := i.importPark(ctx, m, year)
		status := "done"
		if err != nil {
			status = "failed"
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", m.ID, err))
			i.logger.Error("park import failed",
				zap.String("park", m.ID), zap.Int("year", year), zap.Error(err))
		}
		result.RecordsImported += imported
		result.ParksCompleted = idx + 1

		report(ImportProgress{
			CurrentPark:     m.ID,
			ParksCompleted:  idx + 1,
			TotalParks:      len(all),
			RecordsImported: result.RecordsImported,
			Status:          status,
		})

		if idx < len(all)-1 {
			select {
			case <-ctx.Done():
				result.Errors = append(result.Errors, ctx.Err().Error())
				result.Took = time.Since(started)
				return result, ctx.Err()
			case <-time.After(i.delay):
			}
		}
	}

	result.Success = result.RecordsImported > 0
	result.Took = time.Since(started)

	i.logger.Info("bulk import finished",
		zap.Int("year", year),
		zap.Int("records", result.RecordsImported),
		zap.Int("failures", len(result.Errors)))
	return result, nil
}

func (i *CrowdImporter) importPark(ctx context.Context, m parks.Mapping, year int) (int, error) {
	entries, _, err := i.calendar.FetchYear(ctx, m.ID, year)
	if err != nil {
		return 0, err
	}
	// An empty calendar is "no data for this period", not a failure.
	if len(entries) == 0 {
		return 0, nil
	}

	predictions := canonical.PredictionsFromCalendar(m.ID, entries, time.Now())
	if err := i.repo.UpsertCrowdPredictions(ctx, predictions); err != nil {
		return 0, err
	}
	return len(predictions), nil
}
