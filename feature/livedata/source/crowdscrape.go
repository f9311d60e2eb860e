package source

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"park-pulse/feature/livedata/parks"

	"go.uber.org/zap"
)

// SourceCrowdCalendar is the service name recorded in sync status rows.
const SourceCrowdCalendar = "crowd-calendar"

// calendarTTL is the response cache TTL for scraped calendar pages.
const calendarTTL = 24 * time.Hour

// CalendarEntry is one extracted (date, average wait) pair.
type CalendarEntry struct {
	// Date is in YYYY-MM-DD form.
	Date string
	// WaitTimeMinutes is the park-wide average wait for that date.
	WaitTimeMinutes int
}

// extractStrategy is one regex-based extraction pass over the calendar HTML.
// Strategies are pure and independently testable against fixed fixtures.
type extractStrategy struct {
	name    string
	extract func(html []byte) []CalendarEntry
}

// Strategies run in descending order of specificity; the first non-empty
// result wins. The markup has changed shape several times, which is why the
// older patterns stay around as fallbacks.
var strategies = []extractStrategy{
	{name: "data-attributes", extract: extractDataAttributes},
	{name: "cell-titles", extract: extractCellTitles},
	{name: "inline-json", extract: extractInlineJSON},
}

// Current markup: calendar cells annotated with data attributes.
//
//	<td class="cal-day" data-date="2024-03-15" data-wait="27">...
var dataAttributeRe = regexp.MustCompile(
	`data-date="(\d{4}-\d{2}-\d{2})"[^>]*data-wait="(\d+)"`)

// Older markup: a title attribute carrying a long-form date and wait.
//
//	<td title="March 15, 2024: 27 min avg">...
var cellTitleRe = regexp.MustCompile(
	`title="([A-Z][a-z]+ \d{1,2}, \d{4}): (\d+) min`)

// Last resort: the chart bootstrap JSON embedded in a script tag.
//
//	{"date":"2024-03-15","avg_wait":27}
var inlineJSONRe = regexp.MustCompile(
	`"date":"(\d{4}-\d{2}-\d{2})","avg_wait":(\d+)`)

func extractDataAttributes(html []byte) []CalendarEntry {
	return entriesFromMatches(dataAttributeRe.FindAllSubmatch(html, -1), false)
}

func extractCellTitles(html []byte) []CalendarEntry {
	return entriesFromMatches(cellTitleRe.FindAllSubmatch(html, -1), true)
}

func extractInlineJSON(html []byte) []CalendarEntry {
	return entriesFromMatches(inlineJSONRe.FindAllSubmatch(html, -1), false)
}

func entriesFromMatches(matches [][][]byte, longDate bool) []CalendarEntry {
	var entries []CalendarEntry
	for _, m := range matches {
		date := string(m[1])
		if longDate {
			parsed, err := time.Parse("January 2, 2006", date)
			if err != nil {
				continue
			}
			date = parsed.Format("2006-01-02")
		}

		var wait int
		if _, err := fmt.Sscanf(string(m[2]), "%d", &wait); err != nil {
			continue
		}
		entries = append(entries, CalendarEntry{Date: date, WaitTimeMinutes: wait})
	}
	return entries
}

// CrowdCalendarClient scrapes historical and forward-looking crowd calendars
// from an HTML calendar page.
type CrowdCalendarClient struct {
	baseURL  string
	hc       *http.Client
	cache    *respCache
	registry *parks.Registry
	logger   *zap.Logger
}

// NewCrowdCalendarClient creates a crowd calendar scrape adapter.
func NewCrowdCalendarClient(baseURL string, registry *parks.Registry, logger *zap.Logger) *CrowdCalendarClient {
	return &CrowdCalendarClient{
		baseURL:  baseURL,
		hc:       &http.Client{Timeout: requestTimeout},
		cache:    newRespCache(),
		registry: registry,
		logger:   logger,
	}
}

// FetchYear scrapes one calendar year for the park and returns the extracted
// entries plus the raw page. When every strategy comes up empty the result is
// an empty slice with a nil error: callers must treat that as "no data for
// this period", not as a failure.
func (c *CrowdCalendarClient) FetchYear(ctx context.Context, parkID string, year int) ([]CalendarEntry, []byte, error) {
	m, ok := c.registry.Lookup(parkID)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", parkID, parks.ErrUnknown)
	}

	url := fmt.Sprintf("%s/%s/calendar/%d", c.baseURL, m.ScrapeSlug, year)
	body, err := fetchCached(ctx, c.hc, c.cache, SourceCrowdCalendar, url, calendarTTL)
	if err != nil {
		return nil, nil, err
	}

	for _, s := range strategies {
		if entries := s.extract(body); len(entries) > 0 {
			c.logger.Debug("extracted calendar entries",
				zap.String("park", parkID),
				zap.String("strategy", s.name),
				zap.Int("entries", len(entries)))
			return entries, body, nil
		}
	}

	c.logger.Debug("no calendar entries extracted",
		zap.String("park", parkID),
		zap.Int("year", year))
	return []CalendarEntry{}, body, nil
}
