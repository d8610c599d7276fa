/*
calendar.go - Reporting interval resolution in the anchor timezone

PURPOSE:
  Converts period identifiers into timezone-anchored inclusive date
  intervals. Every piece of date arithmetic downstream (clipping,
  daily bucketing) runs in the same anchor timezone; mixing zones is
  the single most common source of off-by-one-day bugs in this domain,
  so the zone is fixed here and nowhere else.

INTERVAL SEMANTICS:
  Start = first instant of the first day (00:00:00 anchor time)
  End   = last instant of the final day  (23:59:59.999999999 anchor time)
  DaysInPeriod = whole calendar days covered, inclusive

SEE ALSO:
  - clip.go: Consumes ReportingInterval for reservation clipping
  - timeseries bucketing in the compare package uses DateKey
*/
package report

import (
	"fmt"
	"regexp"
	"time"
	_ "time/tzdata" // guarantee the anchor zone is loadable everywhere
)

// anchorZoneName is fixed for the whole system, not configurable per
// request. All properties in the portfolio report against this zone.
const anchorZoneName = "America/New_York"

var anchorZone = mustLoadAnchorZone()

func mustLoadAnchorZone() *time.Location {
	loc, err := time.LoadLocation(anchorZoneName)
	if err != nil {
		panic(fmt.Sprintf("report: cannot load anchor timezone %s: %v", anchorZoneName, err))
	}
	return loc
}

// AnchorZone returns the timezone all reporting arithmetic is anchored to.
func AnchorZone() *time.Location { return anchorZone }

var monthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// =============================================================================
// REPORTING INTERVAL
// =============================================================================

// ReportingInterval is an inclusive, timezone-anchored date window.
// Created once per report request; immutable; consumed read-only by all
// downstream components.
type ReportingInterval struct {
	Start        time.Time
	End          time.Time
	DaysInPeriod int
}

// ResolveMonth converts a "YYYY-MM" identifier into the interval spanning
// the first instant of day 1 through the last instant of the final day of
// that month in the anchor timezone.
func ResolveMonth(month string) (ReportingInterval, error) {
	m := monthPattern.FindStringSubmatch(month)
	if m == nil {
		return ReportingInterval{}, &InvalidPeriodError{Input: month, Reason: "expected YYYY-MM"}
	}
	// Matched digits; Atoi cannot fail here.
	var year, mon int
	fmt.Sscanf(m[1], "%d", &year)
	fmt.Sscanf(m[2], "%d", &mon)
	if mon < 1 || mon > 12 {
		return ReportingInterval{}, &InvalidPeriodError{Input: month, Reason: "month out of range"}
	}

	start := time.Date(year, time.Month(mon), 1, 0, 0, 0, 0, anchorZone)
	// Last day of the month: first day of next month minus one day.
	lastDay := time.Date(year, time.Month(mon)+1, 1, 0, 0, 0, 0, anchorZone).AddDate(0, 0, -1).Day()
	end := endOfDay(year, time.Month(mon), lastDay)

	return ReportingInterval{Start: start, End: end, DaysInPeriod: lastDay}, nil
}

// ResolveRange converts two "YYYY-MM-DD" dates into an inclusive interval.
// Used by comparative analysis, whose windows are arbitrary date ranges
// rather than calendar months.
func ResolveRange(startDate, endDate string) (ReportingInterval, error) {
	start, err := time.ParseInLocation("2006-01-02", startDate, anchorZone)
	if err != nil {
		return ReportingInterval{}, &InvalidPeriodError{Input: startDate, Reason: "expected YYYY-MM-DD"}
	}
	endDay, err := time.ParseInLocation("2006-01-02", endDate, anchorZone)
	if err != nil {
		return ReportingInterval{}, &InvalidPeriodError{Input: endDate, Reason: "expected YYYY-MM-DD"}
	}
	if endDay.Before(start) {
		return ReportingInterval{}, &InvalidPeriodError{
			Input:  startDate + ".." + endDate,
			Reason: "end before start",
		}
	}
	end := endOfDay(endDay.Year(), endDay.Month(), endDay.Day())
	return ReportingInterval{
		Start:        start,
		End:          end,
		DaysInPeriod: DaysBetween(start, endDay) + 1,
	}, nil
}

// Contains reports whether t falls within the interval (inclusive).
func (ri ReportingInterval) Contains(t time.Time) bool {
	return !t.Before(ri.Start) && !t.After(ri.End)
}

func endOfDay(year int, month time.Month, day int) time.Time {
	next := time.Date(year, month, day, 0, 0, 0, 0, anchorZone).AddDate(0, 0, 1)
	return next.Add(-time.Nanosecond)
}

// =============================================================================
// DAY ARITHMETIC
// =============================================================================

// DaysBetween returns the whole calendar days from a to b in the anchor
// timezone. Both instants are truncated to their calendar date first, so
// DST transitions (23h/25h days) never produce fractional results.
func DaysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}

// DateKey returns the calendar date of t in the anchor timezone as
// "YYYY-MM-DD". Used as the bucketing key for daily time series.
func DateKey(t time.Time) string {
	return t.In(anchorZone).Format("2006-01-02")
}

// dateOnly reprojects t's anchor-zone calendar date onto UTC midnight,
// giving a fixed 24h day length for subtraction.
func dateOnly(t time.Time) time.Time {
	t = t.In(anchorZone)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
