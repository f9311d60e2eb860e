package canonical

import (
	"encoding/json"
	"testing"
	"time"

	"park-pulse/feature/livedata/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveResponse(t *testing.T, payload string) *source.LiveResponse {
	t.Helper()
	var resp source.LiveResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	return &resp
}

func TestMapStatuses(t *testing.T) {
	assert.Equal(t, ParkOperating, mapParkStatus("OPERATING"))
	assert.Equal(t, ParkLimited, mapParkStatus("REFURBISHMENT"))
	assert.Equal(t, ParkClosed, mapParkStatus("SOMETHING_NEW"))

	assert.Equal(t, AttractionOperating, mapAttractionStatus("OPERATING"))
	assert.Equal(t, AttractionTemporaryClosure, mapAttractionStatus("REFURBISHMENT"))
	assert.Equal(t, AttractionTemporaryClosure, mapAttractionStatus("CLOSED"))
	assert.Equal(t, AttractionDown, mapAttractionStatus("SOMETHING_NEW"))

	assert.Equal(t, EntertainmentOperating, mapEntertainmentStatus("OPERATING"))
	assert.Equal(t, EntertainmentCancelled, mapEntertainmentStatus("SOMETHING_NEW"))
}

func TestParkFromLive(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	resp := liveResponse(t, `{
		"liveData": [
			{
				"id": "park-1",
				"name": "Magic Kingdom",
				"entityType": "PARK",
				"status": {"status": "OPERATING"},
				"operatingHours": [
					{"type": "OPERATING", "date": "2024-03-15",
					 "openingTime": "2024-03-15T09:00:00Z",
					 "closingTime": "2024-03-15T22:00:00Z"},
					{"type": "EXTRA_HOURS", "date": "2024-03-15",
					 "openingTime": "2024-03-15T08:30:00Z",
					 "closingTime": "2024-03-15T09:00:00Z"},
					{"type": "EXTRA_HOURS", "date": "2024-03-15",
					 "openingTime": "2024-03-15T22:00:00Z",
					 "closingTime": "2024-03-16T00:00:00Z"},
					{"type": "PRIVATE", "date": "2024-03-15",
					 "openingTime": "2024-03-15T06:00:00Z",
					 "closingTime": "2024-03-15T07:00:00Z"},
					{"type": "OPERATING", "date": "2024-03-16",
					 "openingTime": "2024-03-16T10:00:00Z",
					 "closingTime": "2024-03-16T20:00:00Z"}
				]
			},
			{
				"id": "a1",
				"name": "Space Coaster",
				"entityType": "ATTRACTION",
				"status": {"status": "OPERATING"},
				"queue": {"standBy": {"waitTime": 45}}
			}
		]
	}`)

	park := ParkFromLive("magic-kingdom", "Magic Kingdom", resp, now)

	assert.Equal(t, "magic-kingdom", park.ID)
	assert.Equal(t, ParkOperating, park.Status)
	assert.Equal(t, now, park.LastUpdated)

	// Only today's windows count; tomorrow's OPERATING row is ignored.
	assert.Equal(t, "09:00", park.Hours.RegularOpen.UTC().Format("15:04"))
	assert.Equal(t, "22:00", park.Hours.RegularClose.UTC().Format("15:04"))

	// The pre-opening EXTRA_HOURS window is early entry, the post-closing one
	// is the extended evening close.
	require.NotNil(t, park.Hours.EarlyEntryOpen)
	assert.Equal(t, "08:30", park.Hours.EarlyEntryOpen.UTC().Format("15:04"))
	require.NotNil(t, park.Hours.ExtendedEveningClose)
	assert.Equal(t, "2024-03-16T00:00:00Z",
		park.Hours.ExtendedEveningClose.UTC().Format(time.RFC3339))

	require.Len(t, park.Attractions, 1)
	assert.Equal(t, 45, park.Attractions[0].WaitTimeMinutes)
}

func TestParkFromLiveNoParkEntity(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	resp := liveResponse(t, `{"liveData": []}`)

	park := ParkFromLive("epcot", "EPCOT", resp, now)
	assert.Equal(t, ParkClosed, park.Status)
	assert.True(t, park.Hours.RegularOpen.IsZero())
}

func TestAttractionsFromLive(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	resp := liveResponse(t, `{
		"liveData": [
			{
				"id": "a1",
				"name": "Space Coaster",
				"entityType": "ATTRACTION",
				"status": {"status": "OPERATING"},
				"queue": {
					"standBy": {"waitTime": 45},
					"fastLane": {"available": true, "returnTime": "2024-03-15T14:30:00Z"},
					"singleRider": {"available": true, "waitTime": 20}
				}
			},
			{
				"id": "a2",
				"name": "Haunted House",
				"entityType": "ATTRACTION",
				"status": {"status": "DOWN"}
			},
			{
				"id": "a3",
				"name": "River Ride",
				"entityType": "ATTRACTION",
				"status": {"status": "OPERATING"},
				"queue": {"standBy": {"waitTime": "30"}}
			},
			{
				"id": "s1",
				"name": "Parade",
				"entityType": "SHOW",
				"status": {"status": "OPERATING"}
			}
		]
	}`)

	out := AttractionsFromLive(resp, now)
	require.Len(t, out, 3)

	assert.Equal(t, 45, out[0].WaitTimeMinutes)
	require.NotNil(t, out[0].LightningLane)
	assert.True(t, out[0].LightningLane.Available)
	require.NotNil(t, out[0].LightningLane.ReturnTime)
	require.NotNil(t, out[0].SingleRider)
	require.NotNil(t, out[0].SingleRider.WaitTime)
	assert.Equal(t, 20, *out[0].SingleRider.WaitTime)

	// No queue block reads as unknown, not zero.
	assert.Equal(t, WaitTimeUnknown, out[1].WaitTimeMinutes)
	assert.Equal(t, AttractionDown, out[1].Status)

	// Upstream sometimes sends waits as strings.
	assert.Equal(t, 30, out[2].WaitTimeMinutes)
}

func TestEntertainmentFromLive(t *testing.T) {
	now := time.Date(2024, 3, 15, 15, 0, 0, 0, time.UTC)
	resp := liveResponse(t, `{
		"liveData": [
			{
				"id": "s1",
				"name": "Evening Parade",
				"entityType": "SHOW",
				"status": {"status": "OPERATING"},
				"showtimes": [
					{"startTime": "2024-03-15T20:00:00Z", "type": "Performance"},
					{"startTime": "2024-03-15T12:00:00Z", "type": "Performance"},
					{"startTime": "2024-03-15T17:00:00Z", "type": "Performance"},
					{"startTime": "bogus", "type": "Performance"}
				]
			}
		]
	}`)

	out := EntertainmentFromLive(resp, now)
	require.Len(t, out, 1)

	// Sorted, malformed timestamps dropped.
	require.Len(t, out[0].ShowTimes, 3)
	assert.True(t, out[0].ShowTimes[0].Before(out[0].ShowTimes[1]))
	assert.True(t, out[0].ShowTimes[1].Before(out[0].ShowTimes[2]))

	// Next show is the first one after now (15:00), the 17:00 slot.
	require.NotNil(t, out[0].NextShowTime)
	assert.Equal(t, "17:00", out[0].NextShowTime.UTC().Format("15:04"))
}

func TestParseWireTime(t *testing.T) {
	assert.Nil(t, parseWireTime(""))
	assert.Nil(t, parseWireTime("not-a-time"))
	require.NotNil(t, parseWireTime("2024-03-15T09:00:00-04:00"))
}
