package models

import "time"

// LivePark is the persisted canonical park record, one row per park.
type LivePark struct {
	ID                   uint       `gorm:"primaryKey"`
	ParkID               string     `gorm:"column:park_id;size:64;uniqueIndex"`
	ExternalID           string     `gorm:"column:external_id;size:64"`
	Name                 string     `gorm:"size:128"`
	Status               string     `gorm:"size:32"`
	RegularOpen          *time.Time `gorm:"column:regular_open"`
	RegularClose         *time.Time `gorm:"column:regular_close"`
	EarlyEntryOpen       *time.Time `gorm:"column:early_entry_open"`
	ExtendedEveningClose *time.Time `gorm:"column:extended_evening_close"`
	CrowdLevel           *int       `gorm:"column:crowd_level"`
	LastUpdated          time.Time  `gorm:"column:last_updated"`
}

// TableName sets the table name for LivePark.
func (LivePark) TableName() string { return "live_parks" }

// LiveAttraction is a persisted attraction row, unique per (park, external id).
type LiveAttraction struct {
	ID                     uint       `gorm:"primaryKey"`
	ParkID                 string     `gorm:"column:park_id;size:64;uniqueIndex:idx_attraction_park_external"`
	ExternalID             string     `gorm:"column:external_id;size:64;uniqueIndex:idx_attraction_park_external"`
	Name                   string     `gorm:"size:128"`
	WaitTime               int        `gorm:"column:wait_time"`
	Status                 string     `gorm:"size:32"`
	LightningLaneAvailable bool       `gorm:"column:lightning_lane_available"`
	LightningLaneReturn    *time.Time `gorm:"column:lightning_lane_return"`
	SingleRiderAvailable   bool       `gorm:"column:single_rider_available"`
	SingleRiderWait        *int       `gorm:"column:single_rider_wait"`
	LastUpdated            time.Time  `gorm:"column:last_updated"`
}

// TableName sets the table name for LiveAttraction.
func (LiveAttraction) TableName() string { return "live_attractions" }

// LiveEntertainment is a persisted show row, unique per (park, external id).
// ShowTimes holds a JSON-encoded array of RFC3339 timestamps.
type LiveEntertainment struct {
	ID           uint       `gorm:"primaryKey"`
	ParkID       string     `gorm:"column:park_id;size:64;uniqueIndex:idx_entertainment_park_external"`
	ExternalID   string     `gorm:"column:external_id;size:64;uniqueIndex:idx_entertainment_park_external"`
	Name         string     `gorm:"size:128"`
	ShowTimes    string     `gorm:"column:show_times;type:text"`
	Status       string     `gorm:"size:32"`
	NextShowTime *time.Time `gorm:"column:next_show_time"`
	LastUpdated  time.Time  `gorm:"column:last_updated"`
}

// TableName sets the table name for LiveEntertainment.
func (LiveEntertainment) TableName() string { return "live_entertainment" }

// ParkCrowdPrediction is a persisted crowd level, unique per (park, date).
type ParkCrowdPrediction struct {
	ID              uint      `gorm:"primaryKey"`
	ParkID          string    `gorm:"column:park_id;size:64;uniqueIndex:idx_prediction_park_date"`
	PredictionDate  string    `gorm:"column:prediction_date;size:10;uniqueIndex:idx_prediction_park_date"`
	CrowdLevel      int       `gorm:"column:crowd_level"`
	Description     string    `gorm:"size:64"`
	Recommendation  string    `gorm:"size:255"`
	DataSource      string    `gorm:"column:data_source;size:32"`
	ConfidenceScore *float64  `gorm:"column:confidence_score"`
	SyncedAt        time.Time `gorm:"column:synced_at"`
}

// TableName sets the table name for ParkCrowdPrediction.
func (ParkCrowdPrediction) TableName() string { return "park_crowd_predictions" }

// SyncStatus tracks per-source sync health, one row per service.
// Counters only ever increase.
type SyncStatus struct {
	ID              uint       `gorm:"primaryKey"`
	ServiceName     string     `gorm:"column:service_name;size:32;uniqueIndex"`
	LastSyncAt      time.Time  `gorm:"column:last_sync_at"`
	LastSuccessAt   *time.Time `gorm:"column:last_success_at"`
	LastError       *string    `gorm:"column:last_error;size:1024"`
	TotalSyncs      int        `gorm:"column:total_syncs"`
	SuccessfulSyncs int        `gorm:"column:successful_syncs"`
	FailedSyncs     int        `gorm:"column:failed_syncs"`
}

// TableName sets the table name for SyncStatus.
func (SyncStatus) TableName() string { return "live_sync_status" }
