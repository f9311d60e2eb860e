package canonical

import (
	"sort"
	"time"

	"park-pulse/core/utils"
	"park-pulse/feature/livedata/source"
)

// Status vocabulary translation. Unknown upstream strings map to the most
// conservative canonical value: availability data is best-effort, so a status
// we have never seen reads as "not available" rather than an error.
var parkStatusTable = map[string]ParkStatus{
	"OPERATING":     ParkOperating,
	"CLOSED":        ParkClosed,
	"LIMITED":       ParkLimited,
	"REFURBISHMENT": ParkLimited,
}

var attractionStatusTable = map[string]AttractionStatus{
	"OPERATING":     AttractionOperating,
	"DOWN":          AttractionDown,
	"DELAYED":       AttractionDelayed,
	"REFURBISHMENT": AttractionTemporaryClosure,
	"CLOSED":        AttractionTemporaryClosure,
}

var entertainmentStatusTable = map[string]EntertainmentStatus{
	"OPERATING": EntertainmentOperating,
	"CANCELLED": EntertainmentCancelled,
	"DELAYED":   EntertainmentDelayed,
}

func mapParkStatus(s string) ParkStatus {
	if v, ok := parkStatusTable[s]; ok {
		return v
	}
	return ParkClosed
}

func mapAttractionStatus(s string) AttractionStatus {
	if v, ok := attractionStatusTable[s]; ok {
		return v
	}
	return AttractionDown
}

func mapEntertainmentStatus(s string) EntertainmentStatus {
	if v, ok := entertainmentStatusTable[s]; ok {
		return v
	}
	return EntertainmentCancelled
}

// ParkFromLive maps a live response into the canonical park record.
// Hours are taken from the PARK entity's operating periods for today:
// OPERATING becomes the regular window, an EXTRA_HOURS window before opening
// becomes early entry, one after closing becomes the extended evening close.
// PRIVATE events are ignored.
func ParkFromLive(parkID, parkName string, resp *source.LiveResponse, now time.Time) Park {
	park := Park{
		ID:          parkID,
		Name:        parkName,
		Status:      ParkClosed,
		LastUpdated: now,
	}

	today := now.Format("2006-01-02")
	for _, e := range resp.LiveData {
		if e.EntityType != "PARK" {
			continue
		}
		park.Status = mapParkStatus(e.Status.Status)

		for _, p := range e.OperatingHours {
			if p.Date != today {
				continue
			}
			open := parseWireTime(p.OpeningTime)
			close := parseWireTime(p.ClosingTime)

			switch p.Type {
			case "OPERATING":
				if open != nil {
					park.Hours.RegularOpen = *open
				}
				if close != nil {
					park.Hours.RegularClose = *close
				}
			case "EXTRA_HOURS":
				// Before or after the regular window decides which kind
				// of extra hours this is.
				if open != nil && (park.Hours.RegularOpen.IsZero() || open.Before(park.Hours.RegularOpen)) {
					park.Hours.EarlyEntryOpen = open
				} else if close != nil {
					park.Hours.ExtendedEveningClose = close
				}
			}
		}
		break
	}

	park.Attractions = AttractionsFromLive(resp, now)
	park.Entertainment = EntertainmentFromLive(resp, now)
	return park
}

// AttractionsFromLive maps the ATTRACTION entities of a live response.
func AttractionsFromLive(resp *source.LiveResponse, now time.Time) []Attraction {
	var out []Attraction
	for _, e := range resp.LiveData {
		if e.EntityType != "ATTRACTION" {
			continue
		}

		a := Attraction{
			ExternalID:      e.ID,
			Name:            e.Name,
			WaitTimeMinutes: WaitTimeUnknown,
			Status:          mapAttractionStatus(e.Status.Status),
			LastUpdated:     now,
		}

		if e.Queue != nil {
			if sb := e.Queue.StandBy; sb != nil && sb.WaitTime != nil {
				a.WaitTimeMinutes = utils.ToInt(sb.WaitTime)
			}
			if fl := e.Queue.FastLane; fl != nil {
				ll := &LightningLane{Available: fl.Available}
				ll.ReturnTime = parseWireTime(fl.ReturnTime)
				a.LightningLane = ll
			}
			if sr := e.Queue.SingleRider; sr != nil {
				rider := &SingleRider{Available: sr.Available}
				if sr.WaitTime != nil {
					w := utils.ToInt(sr.WaitTime)
					rider.WaitTime = &w
				}
				a.SingleRider = rider
			}
		}

		out = append(out, a)
	}
	return out
}

// EntertainmentFromLive maps the SHOW entities of a live response. Show times
// are sorted and the next one after now is promoted to NextShowTime.
func EntertainmentFromLive(resp *source.LiveResponse, now time.Time) []Entertainment {
	var out []Entertainment
	for _, e := range resp.LiveData {
		if e.EntityType != "SHOW" {
			continue
		}

		ent := Entertainment{
			ExternalID:  e.ID,
			Name:        e.Name,
			Status:      mapEntertainmentStatus(e.Status.Status),
			LastUpdated: now,
		}

		for _, st := range e.Showtimes {
			if t := parseWireTime(st.StartTime); t != nil {
				ent.ShowTimes = append(ent.ShowTimes, *t)
			}
		}
		sort.Slice(ent.ShowTimes, func(i, j int) bool {
			return ent.ShowTimes[i].Before(ent.ShowTimes[j])
		})
		for i := range ent.ShowTimes {
			if ent.ShowTimes[i].After(now) {
				ent.NextShowTime = &ent.ShowTimes[i]
				break
			}
		}

		out = append(out, ent)
	}
	return out
}

// parseWireTime accepts the RFC3339 timestamps used throughout the live API.
// Empty or malformed values become nil rather than an error.
func parseWireTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
