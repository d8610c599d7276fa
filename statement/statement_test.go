package statement_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborstay/report-engine/report"
	"github.com/harborstay/report-engine/statement"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, report.AnchorZone())
}

func february2025(t *testing.T) report.ReportingInterval {
	t.Helper()
	interval, err := report.ResolveMonth("2025-02")
	require.NoError(t, err)
	return interval
}

func buildFixture(t *testing.T) *statement.PortfolioReport {
	t.Helper()

	properties := []report.Property{
		{ID: "prop-1", Name: "Pelican Cottage", GroupKey: "Pelican Cottage", UnitCount: 1},
		{ID: "prop-2", Name: "Sandbar House", GroupKey: "Sandbar House", UnitCount: 2},
		{ID: "prop-3", Name: "Dune Shack", GroupKey: "Dune Shack", UnitCount: 1},
	}
	lines := []report.LedgerLine{
		{GroupKey: "Pelican Cottage", AccountType: "Income", Amount: decimal.NewFromInt(4200)},
		{GroupKey: "Pelican Cottage", AccountType: "Expense", Amount: decimal.NewFromInt(360)},
		{GroupKey: "Sandbar House", AccountType: "Income", Amount: decimal.NewFromInt(6800)},
		{GroupKey: "Sandbar House", AccountType: "Cost of Goods Sold", Amount: decimal.NewFromInt(520)},
	}
	spans := []report.ReservationSpan{
		// Straddles the month boundary: 2 of 6 nights in February.
		{PropertyID: "prop-1", Start: day(2025, time.January, 28), End: day(2025, time.February, 3), TotalNights: 6, TotalRevenue: decimal.NewNullDecimal(decimal.NewFromInt(600))},
		{PropertyID: "prop-1", Start: day(2025, time.February, 14), End: day(2025, time.February, 18), TotalNights: 4, ADR: decimal.NewNullDecimal(decimal.NewFromInt(150))},
		{PropertyID: "prop-2", Start: day(2025, time.February, 1), End: day(2025, time.February, 11), TotalNights: 10, ADR: decimal.NewNullDecimal(decimal.NewFromInt(220))},
	}

	out, err := statement.Build(
		statement.Company{ID: "coastal", Name: "Coastal"},
		"2025-02",
		february2025(t),
		properties, lines, spans,
	)
	require.NoError(t, err)
	return out
}

// =============================================================================
// PROPERTY-LEVEL AGGREGATION
// =============================================================================

func TestBuild_PerPropertyNumbers(t *testing.T) {
	out := buildFixture(t)
	require.Len(t, out.Properties, 3)

	byID := make(map[string]statement.PropertyReport)
	for _, p := range out.Properties {
		byID[p.ID] = p
	}

	pelican := byID["prop-1"]
	assert.Equal(t, "4200", pelican.PnL.Revenue.String())
	assert.Equal(t, "360", pelican.PnL.Expenses.String())
	assert.Equal(t, "3840", pelican.PnL.NetIncome.String())
	assert.Equal(t, 6, pelican.Bookings.Nights) // 2 clipped + 4 inside
	assert.Equal(t, 2, pelican.Bookings.Bookings)
	assert.Equal(t, "800", pelican.Bookings.BookingRevenue.String())

	sandbar := byID["prop-2"]
	assert.Equal(t, 10, sandbar.Bookings.Nights)
	assert.Equal(t, "2200", sandbar.Bookings.BookingRevenue.String())
	// 10 nights over 28 days * 2 units
	assert.True(t, sandbar.Bookings.OccupancyPct.Round(4).Equal(decimal.RequireFromString("17.8571")),
		"occupancy was %s", sandbar.Bookings.OccupancyPct)
}

func TestBuild_PropertyWithoutBookingsStillAppears(t *testing.T) {
	// Every requested property has exactly one report, zero-valued
	// bookings included.
	out := buildFixture(t)

	var dune *statement.PropertyReport
	for i := range out.Properties {
		if out.Properties[i].ID == "prop-3" {
			dune = &out.Properties[i]
		}
	}
	require.NotNil(t, dune)

	assert.Equal(t, 0, dune.Bookings.Nights)
	assert.Equal(t, 0, dune.Bookings.Bookings)
	assert.False(t, dune.Bookings.ADR.Valid)
	assert.False(t, dune.Bookings.RevPAR.Valid)
	assert.True(t, dune.Bookings.OccupancyPct.IsZero())
}

// =============================================================================
// PORTFOLIO ROLL-UP
// =============================================================================

func TestBuild_PortfolioSumsPrimitives(t *testing.T) {
	out := buildFixture(t)

	// Nights sum exactly across properties.
	totalNights := 0
	for _, p := range out.Properties {
		totalNights += p.Bookings.Nights
	}
	assert.Equal(t, totalNights, out.Portfolio.Nights)
	assert.Equal(t, 16, out.Portfolio.Nights)

	assert.Equal(t, "11000", out.Portfolio.Revenue.String())
	assert.Equal(t, "880", out.Portfolio.Expenses.String())
	assert.Equal(t, "10120", out.Portfolio.NetIncome.String())
	assert.Equal(t, "3000", out.Portfolio.BookingRevenue.String())
}

func TestBuild_PortfolioRatesRecomputedNotAveraged(t *testing.T) {
	out := buildFixture(t)

	// ADR = total booking revenue / total nights, not a mean of
	// per-property ADRs.
	assert.True(t, out.Portfolio.ADR.Valid)
	assert.Equal(t, "187.5", out.Portfolio.ADR.Decimal.String())

	// Occupancy over summed units (1 + 2 + 1 = 4) and 28 days:
	// 16 / 112 * 100.
	expected := decimal.NewFromInt(16).
		Div(decimal.NewFromInt(28 * 4)).
		Mul(decimal.NewFromInt(100))
	assert.True(t, out.Portfolio.OccupancyPct.Equal(expected),
		"occupancy was %s", out.Portfolio.OccupancyPct)
}

// =============================================================================
// FAILURE MODES
// =============================================================================

func TestBuild_InvalidSpanAbortsWholeReport(t *testing.T) {
	properties := []report.Property{{ID: "prop-1", Name: "A", GroupKey: "A"}}
	spans := []report.ReservationSpan{
		{PropertyID: "prop-1", Start: day(2025, time.February, 10), End: day(2025, time.February, 5)},
	}

	_, err := statement.Build(statement.Company{ID: "c"}, "2025-02", february2025(t), properties, nil, spans)
	assert.True(t, errors.Is(err, report.ErrInvalidSpan))
}

func TestBuild_BlankPropertyIDFailsAggregation(t *testing.T) {
	properties := []report.Property{{ID: "  ", Name: "Ghost", GroupKey: "Ghost"}}

	_, err := statement.Build(statement.Company{ID: "c"}, "2025-02", february2025(t), properties, nil, nil)
	assert.True(t, errors.Is(err, report.ErrAggregationFailed))
}

func TestBuild_EmptyInputs(t *testing.T) {
	out, err := statement.Build(statement.Company{ID: "c"}, "2025-02", february2025(t), nil, nil, nil)
	require.NoError(t, err)

	assert.Empty(t, out.Properties)
	assert.True(t, out.Portfolio.Revenue.IsZero())
	assert.Equal(t, 0, out.Portfolio.Nights)
	assert.False(t, out.Portfolio.ADR.Valid)
}
