/*
Package statement builds single-period portfolio statements.

PURPOSE:
  Turns one month's already-fetched properties, journal entry lines and
  reservations into a PortfolioReport: per-property P&L and booking
  aggregates rolled up to a portfolio total. It composes the report
  package's building blocks; it performs no I/O.

ROLL-UP INVARIANT:
  Portfolio totals are recomputed from summed primitives (nights,
  revenue), never averaged from child percentages. Averaging occupancy
  percentages across properties with different unit counts produces a
  biased statistic; summing nights and re-deriving does not.

SIGN CONVENTION:
  Statement feeds carry SIGNED_AMOUNT ledger lines (one positive amount
  per line); COGS and operating expenses both land in PnL.Expenses.

SEE ALSO:
  - report: the underlying calendar/clip/classify/pnl/occupancy pieces
  - compare: the comparative (A vs B) counterpart to this package
*/
package statement

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/harborstay/report-engine/report"
)

// Company identifies the reporting scope.
type Company struct {
	ID   string
	Name string
}

// PropertyReport is one property's slice of the portfolio statement.
type PropertyReport struct {
	ID       string
	Name     string
	GroupKey string
	PnL      report.PnL
	Bookings report.BookingAggregate
}

// PortfolioSummary is the portfolio-level aggregate: a P&L plus a
// booking aggregate over every property in scope.
type PortfolioSummary struct {
	report.PnL
	report.BookingAggregate
}

// PortfolioReport is the top-level single-period statement.
type PortfolioReport struct {
	Company    Company
	Period     string // the "YYYY-MM" identifier the interval came from
	Portfolio  PortfolioSummary
	Properties []PropertyReport
}

// Build assembles a portfolio statement from already-fetched inputs.
// Every requested property appears exactly once in the output, with a
// zero-valued booking aggregate when no reservation touched it. A span
// with end before start aborts the whole build with InvalidSpan; a
// property with a blank ID aborts with AggregationFailed.
func Build(
	company Company,
	period string,
	interval report.ReportingInterval,
	properties []report.Property,
	lines []report.LedgerLine,
	spans []report.ReservationSpan,
) (*PortfolioReport, error) {
	for _, p := range properties {
		if strings.TrimSpace(p.ID) == "" {
			return nil, &report.AggregationError{Collection: "properties", Reason: "property with blank id"}
		}
	}

	pnlByGroup := report.AggregatePnL(lines, report.SignedAmount, nil)
	bookingsByProperty, err := aggregateBookings(spans, interval)
	if err != nil {
		return nil, err
	}

	out := &PortfolioReport{
		Company:    company,
		Period:     period,
		Properties: make([]PropertyReport, 0, len(properties)),
	}

	totalNights := 0
	totalBookings := 0
	totalUnits := 0
	totalRevenue := decimal.Zero
	totalExpenses := decimal.Zero
	totalBookingRevenue := decimal.Zero

	for _, p := range properties {
		agg := report.DeriveRates(bookingsByProperty[p.ID], interval.DaysInPeriod, p.Units())

		out.Properties = append(out.Properties, PropertyReport{
			ID:       p.ID,
			Name:     p.Name,
			GroupKey: p.GroupKey,
			PnL:      pnlByGroup[p.GroupKey],
			Bookings: agg,
		})

		totalNights += agg.Nights
		totalBookings += agg.Bookings
		totalUnits += p.Units()
		totalRevenue = totalRevenue.Add(pnlByGroup[p.GroupKey].Revenue)
		totalExpenses = totalExpenses.Add(pnlByGroup[p.GroupKey].Expenses)
		totalBookingRevenue = totalBookingRevenue.Add(agg.BookingRevenue)
	}

	out.Portfolio = PortfolioSummary{
		PnL: report.PnL{
			Revenue:   totalRevenue,
			Expenses:  totalExpenses,
			NetIncome: totalRevenue.Sub(totalExpenses),
		},
		BookingAggregate: report.DeriveRates(report.BookingAggregate{
			Nights:         totalNights,
			Bookings:       totalBookings,
			BookingRevenue: totalBookingRevenue,
		}, interval.DaysInPeriod, totalUnits),
	}

	return out, nil
}

// aggregateBookings clips every span against the interval and sums
// nights, booking counts and clipped revenue per property. Spans that
// clip to zero nights still count as a booking; the upstream query only
// returns spans intersecting the interval, but nothing here relies on
// that.
func aggregateBookings(spans []report.ReservationSpan, interval report.ReportingInterval) (map[string]report.BookingAggregate, error) {
	byProperty := make(map[string]report.BookingAggregate)

	for _, span := range spans {
		clipped, err := report.ClipReservation(span, interval)
		if err != nil {
			return nil, err
		}

		agg := byProperty[span.PropertyID]
		agg.Nights += clipped.Nights
		agg.Bookings++
		agg.BookingRevenue = agg.BookingRevenue.Add(clipped.Revenue)
		byProperty[span.PropertyID] = agg
	}

	return byProperty, nil
}
