/*
timeseries.go - Daily KPI series for trend comparison

PURPOSE:
  Buckets each side's classified lines by calendar day in the anchor
  timezone and sums the signed contribution relevant to the selected
  KPI. One point per date in the UNION of both sides' date sets: a
  date one side never touched still appears with that side at zero,
  because "zero activity that date" and "no data for that date" are
  different statements and omission would claim the latter.
*/
package compare

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/harborstay/report-engine/report"
)

// TimeseriesPoint is one calendar day's A/B values for the selected KPI.
type TimeseriesPoint struct {
	Date   string // "YYYY-MM-DD" in the anchor timezone
	ValueA decimal.Decimal
	ValueB decimal.Decimal
}

// BuildTimeseries produces the daily A-vs-B series for one KPI, sorted
// by date ascending.
func BuildTimeseries(linesA, linesB []report.LedgerLine, kpi KPI) []TimeseriesPoint {
	bucketsA := bucketDaily(linesA, kpi)
	bucketsB := bucketDaily(linesB, kpi)

	dates := make([]string, 0, len(bucketsA)+len(bucketsB))
	seen := make(map[string]bool, len(bucketsA)+len(bucketsB))
	for date := range bucketsA {
		seen[date] = true
		dates = append(dates, date)
	}
	for date := range bucketsB {
		if !seen[date] {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	points := make([]TimeseriesPoint, 0, len(dates))
	for _, date := range dates {
		points = append(points, TimeseriesPoint{
			Date:   date,
			ValueA: bucketsA[date],
			ValueB: bucketsB[date],
		})
	}
	return points
}

// bucketDaily sums one side's relevant contributions per calendar day.
// grossProfit and netIncome are derived from all three buckets, so
// every classified line contributes to them.
func bucketDaily(lines []report.LedgerLine, kpi KPI) map[string]decimal.Decimal {
	buckets := make(map[string]decimal.Decimal)

	for _, line := range lines {
		class, amount := report.Classify(line, report.DebitCredit)
		if !kpiIncludes(kpi, class) {
			continue
		}
		key := report.DateKey(line.Date)
		buckets[key] = buckets[key].Add(amount)
	}
	return buckets
}

func kpiIncludes(kpi KPI, class report.LineClass) bool {
	if class == report.ClassUnclassified {
		return false
	}
	switch kpi {
	case KPIRevenue:
		return class == report.ClassRevenue
	case KPICOGS:
		return class == report.ClassCOGS
	case KPIOpEx:
		return class == report.ClassOpEx
	case KPIGrossProfit, KPINetIncome:
		return true
	}
	return false
}
