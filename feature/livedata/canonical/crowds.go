package canonical

import (
	"time"

	"park-pulse/feature/livedata/source"
)

// Crowd level descriptions by bucket.
const (
	crowdLowest  = "Lowest"
	crowdLower   = "Lower"
	crowdAverage = "Average"
	crowdHigher  = "Higher"
	crowdHighest = "Highest"
)

// BucketWaitTime maps a park-wide average wait in minutes onto the 1-10 crowd
// scale. The five buckets and their breakpoints are fixed.
func BucketWaitTime(waitMinutes int) (level int, description string) {
	switch {
	case waitMinutes <= 19:
		return 2, crowdLowest
	case waitMinutes <= 25:
		return 4, crowdLower
	case waitMinutes <= 31:
		return 6, crowdAverage
	case waitMinutes <= 37:
		return 8, crowdHigher
	default:
		return 10, crowdHighest
	}
}

func recommendationFor(level int) string {
	switch {
	case level <= 2:
		return "Great day to visit, expect minimal waits."
	case level <= 4:
		return "Below average crowds, a good day to visit."
	case level <= 6:
		return "Typical crowds, arrive early for headliners."
	case level <= 8:
		return "Heavier than usual, plan around queue-skip options."
	default:
		return "Peak crowds, consider another day if flexible."
	}
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 10 {
		return 10
	}
	return level
}

// PredictionsFromForecast maps a crowd forecast payload into canonical
// predictions. Days without a date are dropped.
func PredictionsFromForecast(parkID string, f *source.Forecast, now time.Time) []CrowdPrediction {
	confidence := 0.9
	var out []CrowdPrediction
	for _, day := range f.Forecast {
		if day.Date == "" {
			continue
		}
		level := clampLevel(day.CrowdLevel)

		description := day.CrowdLevelString
		if description == "" {
			_, description = BucketWaitTime(levelToWaitHint(level))
		}

		out = append(out, CrowdPrediction{
			ParkID:          parkID,
			Date:            day.Date,
			CrowdLevel:      level,
			Description:     description,
			Recommendation:  recommendationFor(level),
			DataSource:      source.SourceQueueTimes,
			ConfidenceScore: &confidence,
			LastUpdated:     now,
		})
	}
	return out
}

// PredictionsFromCalendar maps scraped calendar entries into canonical
// predictions, bucketing each day's average wait onto the crowd scale.
func PredictionsFromCalendar(parkID string, entries []source.CalendarEntry, now time.Time) []CrowdPrediction {
	confidence := 0.7
	var out []CrowdPrediction
	for _, e := range entries {
		if e.Date == "" {
			continue
		}
		level, description := BucketWaitTime(e.WaitTimeMinutes)

		out = append(out, CrowdPrediction{
			ParkID:          parkID,
			Date:            e.Date,
			CrowdLevel:      level,
			Description:     description,
			Recommendation:  recommendationFor(level),
			DataSource:      source.SourceCrowdCalendar,
			ConfidenceScore: &confidence,
			LastUpdated:     now,
		})
	}
	return out
}

// levelToWaitHint inverts the bucket midpoints, used only to synthesize a
// description when the forecast omits its own label.
func levelToWaitHint(level int) int {
	switch {
	case level <= 2:
		return 15
	case level <= 4:
		return 22
	case level <= 6:
		return 28
	case level <= 8:
		return 34
	default:
		return 40
	}
}
