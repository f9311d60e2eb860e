package canonical

import "time"

// WaitTimeUnknown is the sentinel for "wait time not reported".
// It is distinct from 0, which means a walk-on.
const WaitTimeUnknown = -1

// ParkStatus is the canonical park operating status.
type ParkStatus string

const (
	ParkOperating ParkStatus = "operating"
	ParkClosed    ParkStatus = "closed"
	ParkLimited   ParkStatus = "limited"
)

// AttractionStatus is the canonical attraction status.
type AttractionStatus string

const (
	AttractionOperating        AttractionStatus = "operating"
	AttractionDown             AttractionStatus = "down"
	AttractionDelayed          AttractionStatus = "delayed"
	AttractionTemporaryClosure AttractionStatus = "temporary_closure"
)

// EntertainmentStatus is the canonical entertainment status.
type EntertainmentStatus string

const (
	EntertainmentOperating EntertainmentStatus = "operating"
	EntertainmentCancelled EntertainmentStatus = "cancelled"
	EntertainmentDelayed   EntertainmentStatus = "delayed"
)

// Hours are a park's operating hours for the current day.
type Hours struct {
	RegularOpen          time.Time  `json:"regularOpen"`
	RegularClose         time.Time  `json:"regularClose"`
	EarlyEntryOpen       *time.Time `json:"earlyEntryOpen,omitempty"`
	ExtendedEveningClose *time.Time `json:"extendedEveningClose,omitempty"`
}

// Park is the canonical park record. It is rebuilt wholesale on every sync
// pass and never partially mutated.
type Park struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Status        ParkStatus      `json:"status"`
	Hours         Hours           `json:"hours"`
	CrowdLevel    *int            `json:"crowdLevel,omitempty"`
	LastUpdated   time.Time       `json:"lastUpdated"`
	Attractions   []Attraction    `json:"attractions"`
	Entertainment []Entertainment `json:"entertainment"`
}

// LightningLane is the queue-skip attribute reported for some attractions.
type LightningLane struct {
	Available  bool       `json:"available"`
	ReturnTime *time.Time `json:"returnTime,omitempty"`
}

// SingleRider is the single-rider queue attribute.
type SingleRider struct {
	Available bool `json:"available"`
	WaitTime  *int `json:"waitTime,omitempty"`
}

// Attraction is the canonical attraction record.
type Attraction struct {
	ExternalID      string           `json:"externalId"`
	Name            string           `json:"name"`
	WaitTimeMinutes int              `json:"waitTimeMinutes"`
	Status          AttractionStatus `json:"status"`
	LightningLane   *LightningLane   `json:"lightningLane,omitempty"`
	SingleRider     *SingleRider     `json:"singleRider,omitempty"`
	LastUpdated     time.Time        `json:"lastUpdated"`
}

// Entertainment is the canonical entertainment (show/parade) record.
type Entertainment struct {
	ExternalID   string              `json:"externalId"`
	Name         string              `json:"name"`
	ShowTimes    []time.Time         `json:"showTimes"`
	Status       EntertainmentStatus `json:"status"`
	NextShowTime *time.Time          `json:"nextShowTime,omitempty"`
	LastUpdated  time.Time           `json:"lastUpdated"`
}

// CrowdPrediction is a normalized 1-10 busyness score for a park on a date.
// Unique per (ParkID, Date); that pair is the upsert conflict target.
type CrowdPrediction struct {
	ParkID          string    `json:"parkId"`
	Date            string    `json:"date"`
	CrowdLevel      int       `json:"crowdLevel"`
	Description     string    `json:"description"`
	Recommendation  string    `json:"recommendation,omitempty"`
	DataSource      string    `json:"dataSource"`
	ConfidenceScore *float64  `json:"confidenceScore,omitempty"`
	LastUpdated     time.Time `json:"lastUpdated"`
}
