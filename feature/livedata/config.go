package livedata

import (
	"strings"
	"time"
)

// Config holds configuration for the live data sync pipeline.
type Config struct {
	// IntervalMinutes is the period of the full sync pass.
	IntervalMinutes int `mapstructure:"interval_minutes" default:"15"`
	// EnabledParks is a comma-separated list of internal park IDs to sync.
	// Empty means every park in the registry.
	EnabledParks string `mapstructure:"enabled_parks" default:""`
	// LiveSourceEnabled toggles the theme-park live data source.
	LiveSourceEnabled bool `mapstructure:"live_source_enabled" default:"true"`
	// CrowdSourceEnabled toggles the crowd forecast source.
	CrowdSourceEnabled bool `mapstructure:"crowd_source_enabled" default:"true"`
	// RetryAttempts is the per-park attempt cap, including the first try.
	RetryAttempts int `mapstructure:"retry_attempts" default:"3"`
	// RetryBaseDelayMs is the linear backoff base in milliseconds.
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" default:"5000"`
	// RetentionHours is the retention window for attraction and show rows.
	RetentionHours int `mapstructure:"retention_hours" default:"24"`

	// Category feature flags. A disabled category returns empty results
	// without touching the cache or the repository.
	WaitTimesEnabled     bool `mapstructure:"waittimes_enabled" default:"true"`
	HoursEnabled         bool `mapstructure:"hours_enabled" default:"true"`
	EntertainmentEnabled bool `mapstructure:"entertainment_enabled" default:"true"`
	CrowdsEnabled        bool `mapstructure:"crowds_enabled" default:"true"`
	// CrowdFallbackEnabled substitutes a flat moderate crowd level when the
	// repository fails. Off by default: crowd reads surface their errors.
	CrowdFallbackEnabled bool `mapstructure:"crowd_fallback_enabled" default:"false"`

	// Upstream base URLs.
	ThemeParksBaseURL string `mapstructure:"themeparks_base_url" default:"https://api.themeparks.wiki/v1"`
	QueueTimesBaseURL string `mapstructure:"queuetimes_base_url" default:"https://queue-times.com"`
	CrowdCalBaseURL   string `mapstructure:"crowdcal_base_url" default:"https://www.thrill-data.com/waits/park"`

	// ImportDelayMs is the pause between parks during bulk import.
	ImportDelayMs int `mapstructure:"import_delay_ms" default:"1000"`
}

// Interval returns the sync period.
func (c Config) Interval() time.Duration {
	if c.IntervalMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// RetryBaseDelay returns the linear backoff base.
func (c Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelayMs) * time.Millisecond
}

// Retention returns the retention window for live rows.
func (c Config) Retention() time.Duration {
	if c.RetentionHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.RetentionHours) * time.Hour
}

// ImportDelay returns the pause between parks during bulk import.
func (c Config) ImportDelay() time.Duration {
	if c.ImportDelayMs <= 0 {
		return time.Second
	}
	return time.Duration(c.ImportDelayMs) * time.Millisecond
}

// ParkEnabled reports whether a park should be synced. An empty
// EnabledParks list enables every park.
func (c Config) ParkEnabled(id string) bool {
	if strings.TrimSpace(c.EnabledParks) == "" {
		return true
	}
	for _, p := range strings.Split(c.EnabledParks, ",") {
		if strings.TrimSpace(p) == id {
			return true
		}
	}
	return false
}
