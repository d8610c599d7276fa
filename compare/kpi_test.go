package compare_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/harborstay/report-engine/compare"
	"github.com/harborstay/report-engine/report"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// dcLine builds a debit/credit ledger line. Positive net means a credit
// balance, negative a debit balance.
func dcLine(account, accountType string, debit, credit int64, date time.Time) report.LedgerLine {
	return report.LedgerLine{
		Account:     account,
		AccountType: accountType,
		Debit:       decimal.NewFromInt(debit),
		Credit:      decimal.NewFromInt(credit),
		Date:        date,
	}
}

func feb(d int) time.Time {
	return time.Date(2025, time.February, d, 12, 0, 0, 0, report.AnchorZone())
}

// =============================================================================
// KPI SUMMARIES
// =============================================================================

func TestComputeKPIs_SignedSums(t *testing.T) {
	// GIVEN revenue carries a credit balance and both cost buckets carry
	// debit balances
	lines := []report.LedgerLine{
		dcLine("Rental Income", "Income", 0, 5000, feb(1)),
		dcLine("Rental Income", "Income", 200, 0, feb(5)), // a refund
		dcLine("Channel Fees", "Cost of Goods Sold", 900, 0, feb(3)),
		dcLine("Cleaning", "Expense", 600, 0, feb(10)),
		dcLine("Owner Draw", "Equity", 1000, 0, feb(10)), // unclassified
	}

	// WHEN
	kpis := compare.ComputeKPIs(lines)

	// THEN gross profit and net income are plain sums of the signed buckets
	assert.Equal(t, "4800", kpis.Revenue.String())
	assert.Equal(t, "-900", kpis.COGS.String())
	assert.Equal(t, "3900", kpis.GrossProfit.String())
	assert.Equal(t, "-600", kpis.OpEx.String())
	assert.Equal(t, "3300", kpis.NetIncome.String())
}

func TestComputeKPIs_EmptyInput(t *testing.T) {
	kpis := compare.ComputeKPIs(nil)

	assert.True(t, kpis.Revenue.IsZero())
	assert.True(t, kpis.GrossProfit.IsZero())
	assert.True(t, kpis.NetIncome.IsZero())
}

// =============================================================================
// RUN (FULL COMPARISON)
// =============================================================================

func TestRun_RejectsUnknownKPI(t *testing.T) {
	_, err := compare.Run(nil, nil, compare.KPI("ebitda"))
	assert.Error(t, err)
}

func TestRun_ProducesAllThreeDatasets(t *testing.T) {
	linesA := []report.LedgerLine{dcLine("Rental Income", "Income", 0, 1000, feb(1))}
	linesB := []report.LedgerLine{dcLine("Rental Income", "Income", 0, 800, feb(2))}

	result, err := compare.Run(linesA, linesB, compare.KPIRevenue)
	assert.NoError(t, err)

	assert.Equal(t, "1000", result.KPIsA.Revenue.String())
	assert.Equal(t, "800", result.KPIsB.Revenue.String())
	assert.Len(t, result.Variance.Income.Rows, 1)
	assert.Len(t, result.Timeseries, 2)
}
