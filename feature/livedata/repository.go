package livedata

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"park-pulse/feature/livedata/canonical"
	"park-pulse/feature/livedata/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound marks the absence of a record. It is a normal outcome, not a
// failure, and callers must distinguish it from transport errors.
var ErrNotFound = errors.New("not found")

// parkRetention is how long park rows survive without a refresh.
const parkRetention = 7 * 24 * time.Hour

// Repository owns all persisted live data state. All writes are upserts keyed
// by natural business keys, so re-applying a batch is idempotent and changes
// nothing but last_updated.
type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRepository creates a repository over the given connection.
func NewRepository(db *gorm.DB, logger *zap.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// AutoMigrate creates or updates the live data tables.
func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&models.LivePark{},
		&models.LiveAttraction{},
		&models.LiveEntertainment{},
		&models.ParkCrowdPrediction{},
		&models.SyncStatus{},
	)
}

// UpsertPark stores a canonical park record, keyed by park_id. The crowd
// level column is owned by the crowd sync and is deliberately not part of the
// update set, so a live pass never wipes it.
func (r *Repository) UpsertPark(ctx context.Context, p canonical.Park, externalID string) error {
	row := parkToRow(p, externalID)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "park_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"external_id", "name", "status",
			"regular_open", "regular_close", "early_entry_open", "extended_evening_close",
			"last_updated",
		}),
	}).Create(&row).Error
}

// UpdateParkCrowdLevel stamps today's crowd level onto an existing park row.
// A park the live source has not written yet is a no-op, not an error.
func (r *Repository) UpdateParkCrowdLevel(ctx context.Context, parkID string, level int) error {
	return r.db.WithContext(ctx).
		Model(&models.LivePark{}).
		Where("park_id = ?", parkID).
		Update("crowd_level", level).Error
}

// UpsertAttractions stores a batch of attractions for one park, keyed by
// (park_id, external_id).
func (r *Repository) UpsertAttractions(ctx context.Context, parkID string, attractions []canonical.Attraction) error {
	if len(attractions) == 0 {
		return nil
	}
	rows := make([]models.LiveAttraction, 0, len(attractions))
	for _, a := range attractions {
		rows = append(rows, attractionToRow(parkID, a))
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "park_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "wait_time", "status",
			"lightning_lane_available", "lightning_lane_return",
			"single_rider_available", "single_rider_wait", "last_updated",
		}),
	}).Create(&rows).Error
}

// UpsertEntertainment stores a batch of shows for one park, keyed by
// (park_id, external_id).
func (r *Repository) UpsertEntertainment(ctx context.Context, parkID string, shows []canonical.Entertainment) error {
	if len(shows) == 0 {
		return nil
	}
	rows := make([]models.LiveEntertainment, 0, len(shows))
	for _, e := range shows {
		rows = append(rows, entertainmentToRow(parkID, e))
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "park_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "show_times", "status", "next_show_time", "last_updated",
		}),
	}).Create(&rows).Error
}

// UpsertCrowdPredictions stores predictions keyed by (park_id, prediction_date).
func (r *Repository) UpsertCrowdPredictions(ctx context.Context, predictions []canonical.CrowdPrediction) error {
	if len(predictions) == 0 {
		return nil
	}
	rows := make([]models.ParkCrowdPrediction, 0, len(predictions))
	for _, p := range predictions {
		rows = append(rows, predictionToRow(p))
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "park_id"}, {Name: "prediction_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"crowd_level", "description", "recommendation",
			"data_source", "confidence_score", "synced_at",
		}),
	}).Create(&rows).Error
}

// GetPark loads the canonical park record with its attractions and shows.
// A missing park returns ErrNotFound.
func (r *Repository) GetPark(ctx context.Context, parkID string) (*canonical.Park, error) {
	var row models.LivePark
	err := r.db.WithContext(ctx).Where("park_id = ?", parkID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	park := parkFromRow(row)

	if park.Attractions, err = r.GetAttractionWaitTimes(ctx, parkID); err != nil {
		return nil, err
	}
	if park.Entertainment, err = r.GetEntertainment(ctx, parkID); err != nil {
		return nil, err
	}
	return &park, nil
}

// GetAttractionWaitTimes loads all attraction rows for a park.
// No rows is a valid, empty result.
func (r *Repository) GetAttractionWaitTimes(ctx context.Context, parkID string) ([]canonical.Attraction, error) {
	var rows []models.LiveAttraction
	if err := r.db.WithContext(ctx).Where("park_id = ?", parkID).Order("external_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]canonical.Attraction, 0, len(rows))
	for _, row := range rows {
		out = append(out, attractionFromRow(row))
	}
	return out, nil
}

// GetEntertainment loads all show rows for a park.
func (r *Repository) GetEntertainment(ctx context.Context, parkID string) ([]canonical.Entertainment, error) {
	var rows []models.LiveEntertainment
	if err := r.db.WithContext(ctx).Where("park_id = ?", parkID).Order("external_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]canonical.Entertainment, 0, len(rows))
	for _, row := range rows {
		out = append(out, entertainmentFromRow(row))
	}
	return out, nil
}

// GetCrowdPredictionsForRange loads predictions for [start, end] inclusive,
// dates in YYYY-MM-DD form.
func (r *Repository) GetCrowdPredictionsForRange(ctx context.Context, parkID, start, end string) ([]canonical.CrowdPrediction, error) {
	var rows []models.ParkCrowdPrediction
	err := r.db.WithContext(ctx).
		Where("park_id = ? AND prediction_date >= ? AND prediction_date <= ?", parkID, start, end).
		Order("prediction_date").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]canonical.CrowdPrediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionFromRow(row))
	}
	return out, nil
}

// GetSyncStatus returns the health row for every source.
func (r *Repository) GetSyncStatus(ctx context.Context) ([]models.SyncStatus, error) {
	var rows []models.SyncStatus
	if err := r.db.WithContext(ctx).Order("service_name").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// RecordSync updates the per-source health row exactly once per pass.
// The orchestrator is the only writer per source, so a read-modify-write
// transaction is sufficient.
func (r *Repository) RecordSync(ctx context.Context, serviceName string, success bool, errMsg string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.SyncStatus
		err := tx.Where("service_name = ?", serviceName).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = models.SyncStatus{ServiceName: serviceName}
		} else if err != nil {
			return err
		}

		row.LastSyncAt = now
		row.TotalSyncs++
		if success {
			row.SuccessfulSyncs++
			row.LastSuccessAt = &now
			row.LastError = nil
		} else {
			row.FailedSyncs++
			row.LastError = &errMsg
		}
		return tx.Save(&row).Error
	})
}

// CleanOldData purges stale rows: attractions and entertainment older than
// maxAge, parks older than a week.
func (r *Repository) CleanOldData(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)
	if err := r.db.WithContext(ctx).Where("last_updated < ?", cutoff).Delete(&models.LiveAttraction{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("last_updated < ?", cutoff).Delete(&models.LiveEntertainment{}).Error; err != nil {
		return err
	}
	parkCutoff := time.Now().Add(-parkRetention)
	return r.db.WithContext(ctx).Where("last_updated < ?", parkCutoff).Delete(&models.LivePark{}).Error
}

// CleanPastPredictions purges crowd predictions for dates before today and
// returns how many rows were removed.
func (r *Repository) CleanPastPredictions(ctx context.Context) (int64, error) {
	today := time.Now().Format("2006-01-02")
	res := r.db.WithContext(ctx).Where("prediction_date < ?", today).Delete(&models.ParkCrowdPrediction{})
	return res.RowsAffected, res.Error
}

// --- row mapping ---

func parkToRow(p canonical.Park, externalID string) models.LivePark {
	row := models.LivePark{
		ParkID:      p.ID,
		ExternalID:  externalID,
		Name:        p.Name,
		Status:      string(p.Status),
		CrowdLevel:  p.CrowdLevel,
		LastUpdated: p.LastUpdated,
	}
	if !p.Hours.RegularOpen.IsZero() {
		t := p.Hours.RegularOpen
		row.RegularOpen = &t
	}
	if !p.Hours.RegularClose.IsZero() {
		t := p.Hours.RegularClose
		row.RegularClose = &t
	}
	row.EarlyEntryOpen = p.Hours.EarlyEntryOpen
	row.ExtendedEveningClose = p.Hours.ExtendedEveningClose
	return row
}

func parkFromRow(row models.LivePark) canonical.Park {
	p := canonical.Park{
		ID:          row.ParkID,
		Name:        row.Name,
		Status:      canonical.ParkStatus(row.Status),
		CrowdLevel:  row.CrowdLevel,
		LastUpdated: row.LastUpdated,
	}
	if row.RegularOpen != nil {
		p.Hours.RegularOpen = *row.RegularOpen
	}
	if row.RegularClose != nil {
		p.Hours.RegularClose = *row.RegularClose
	}
	p.Hours.EarlyEntryOpen = row.EarlyEntryOpen
	p.Hours.ExtendedEveningClose = row.ExtendedEveningClose
	return p
}

func attractionToRow(parkID string, a canonical.Attraction) models.LiveAttraction {
	row := models.LiveAttraction{
		ParkID:      parkID,
		ExternalID:  a.ExternalID,
		Name:        a.Name,
		WaitTime:    a.WaitTimeMinutes,
		Status:      string(a.Status),
		LastUpdated: a.LastUpdated,
	}
	if a.LightningLane != nil {
		row.LightningLaneAvailable = a.LightningLane.Available
		row.LightningLaneReturn = a.LightningLane.ReturnTime
	}
	if a.SingleRider != nil {
		row.SingleRiderAvailable = a.SingleRider.Available
		row.SingleRiderWait = a.SingleRider.WaitTime
	}
	return row
}

func attractionFromRow(row models.LiveAttraction) canonical.Attraction {
	a := canonical.Attraction{
		ExternalID:      row.ExternalID,
		Name:            row.Name,
		WaitTimeMinutes: row.WaitTime,
		Status:          canonical.AttractionStatus(row.Status),
		LastUpdated:     row.LastUpdated,
	}
	if row.LightningLaneAvailable || row.LightningLaneReturn != nil {
		a.LightningLane = &canonical.LightningLane{
			Available:  row.LightningLaneAvailable,
			ReturnTime: row.LightningLaneReturn,
		}
	}
	if row.SingleRiderAvailable || row.SingleRiderWait != nil {
		a.SingleRider = &canonical.SingleRider{
			Available: row.SingleRiderAvailable,
			WaitTime:  row.SingleRiderWait,
		}
	}
	return a
}

func entertainmentToRow(parkID string, e canonical.Entertainment) models.LiveEntertainment {
	showTimes, _ := json.Marshal(e.ShowTimes)
	return models.LiveEntertainment{
		ParkID:       parkID,
		ExternalID:   e.ExternalID,
		Name:         e.Name,
		ShowTimes:    string(showTimes),
		Status:       string(e.Status),
		NextShowTime: e.NextShowTime,
		LastUpdated:  e.LastUpdated,
	}
}

func entertainmentFromRow(row models.LiveEntertainment) canonical.Entertainment {
	e := canonical.Entertainment{
		ExternalID:   row.ExternalID,
		Name:         row.Name,
		Status:       canonical.EntertainmentStatus(row.Status),
		NextShowTime: row.NextShowTime,
		LastUpdated:  row.LastUpdated,
	}
	if row.ShowTimes != "" {
		_ = json.Unmarshal([]byte(row.ShowTimes), &e.ShowTimes)
	}
	return e
}

func predictionToRow(p canonical.CrowdPrediction) models.ParkCrowdPrediction {
	return models.ParkCrowdPrediction{
		ParkID:          p.ParkID,
		PredictionDate:  p.Date,
		CrowdLevel:      p.CrowdLevel,
		Description:     p.Description,
		Recommendation:  p.Recommendation,
		DataSource:      p.DataSource,
		ConfidenceScore: p.ConfidenceScore,
		SyncedAt:        p.LastUpdated,
	}
}

func predictionFromRow(row models.ParkCrowdPrediction) canonical.CrowdPrediction {
	return canonical.CrowdPrediction{
		ParkID:          row.ParkID,
		Date:            row.PredictionDate,
		CrowdLevel:      row.CrowdLevel,
		Description:     row.Description,
		Recommendation:  row.Recommendation,
		DataSource:      row.DataSource,
		ConfidenceScore: row.ConfidenceScore,
		LastUpdated:     row.SyncedAt,
	}
}
