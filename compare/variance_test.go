package compare_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborstay/report-engine/compare"
	"github.com/harborstay/report-engine/report"
)

func TestComputeVariance_AccountPresentOnOneSideOnly(t *testing.T) {
	// GIVEN an expense account with activity only in window A
	linesA := []report.LedgerLine{
		dcLine("Cleaning Fees", "Expense", 500, 0, feb(3)),
	}

	// WHEN compared against an empty window B
	table := compare.ComputeVariance(linesA, nil)

	// THEN the row carries a zero B side and an undefined percentage
	require.Len(t, table.Expenses.Rows, 1)
	row := table.Expenses.Rows[0]
	assert.Equal(t, "Cleaning Fees", row.Account)
	assert.Equal(t, "-500", row.ValueA.String())
	assert.True(t, row.ValueB.IsZero())
	assert.Equal(t, "-500", row.Variance.String())
	assert.False(t, row.VariancePct.Valid, "percentage must be null when the base is zero, not 0")
}

func TestComputeVariance_PercentageIsRatioOfAbsoluteBase(t *testing.T) {
	linesA := []report.LedgerLine{dcLine("Cleaning", "Expense", 900, 0, feb(1))}
	linesB := []report.LedgerLine{dcLine("Cleaning", "Expense", 600, 0, feb(1))}

	table := compare.ComputeVariance(linesA, linesB)

	require.Len(t, table.Expenses.Rows, 1)
	row := table.Expenses.Rows[0]
	// -900 - (-600) = -300, over abs(-600): the expense grew by half.
	assert.Equal(t, "-300", row.Variance.String())
	require.True(t, row.VariancePct.Valid)
	assert.Equal(t, "-0.5", row.VariancePct.Decimal.String())
}

func TestComputeVariance_SectionsAndSorting(t *testing.T) {
	// GIVEN accounts across all three sections, with expense variances of
	// different magnitude and sign
	linesA := []report.LedgerLine{
		dcLine("Rental Income", "Income", 0, 9000, feb(1)),
		dcLine("Channel Fees", "Cost of Goods Sold", 700, 0, feb(2)),
		dcLine("Cleaning", "Expense", 400, 0, feb(3)),
		dcLine("Utilities", "Expense", 150, 0, feb(4)),
		dcLine("Insurance", "Expense", 250, 0, feb(5)),
	}
	linesB := []report.LedgerLine{
		dcLine("Rental Income", "Income", 0, 8000, feb(1)),
		dcLine("Channel Fees", "Cost of Goods Sold", 650, 0, feb(2)),
		dcLine("Cleaning", "Expense", 900, 0, feb(3)), // swing of +500
		dcLine("Utilities", "Expense", 160, 0, feb(4)),
		dcLine("Insurance", "Expense", 230, 0, feb(5)),
	}

	// WHEN
	table := compare.ComputeVariance(linesA, linesB)

	// THEN each account lands in its section
	require.Len(t, table.Income.Rows, 1)
	require.Len(t, table.COGS.Rows, 1)
	require.Len(t, table.Expenses.Rows, 3)

	// AND expense rows sort by absolute variance, largest swing first,
	// regardless of direction
	assert.Equal(t, "Cleaning", table.Expenses.Rows[0].Account)  // |500|
	assert.Equal(t, "Insurance", table.Expenses.Rows[1].Account) // |-20|
	assert.Equal(t, "Utilities", table.Expenses.Rows[2].Account) // |10|
}

func TestComputeVariance_TieBreaksByAccountName(t *testing.T) {
	linesA := []report.LedgerLine{
		dcLine("Zeta", "Expense", 100, 0, feb(1)),
		dcLine("Alpha", "Expense", 100, 0, feb(1)),
	}

	table := compare.ComputeVariance(linesA, nil)

	require.Len(t, table.Expenses.Rows, 2)
	assert.Equal(t, "Alpha", table.Expenses.Rows[0].Account)
	assert.Equal(t, "Zeta", table.Expenses.Rows[1].Account)
}

func TestComputeVariance_SectionTotals(t *testing.T) {
	linesA := []report.LedgerLine{
		dcLine("Cleaning", "Expense", 400, 0, feb(1)),
		dcLine("Utilities", "Expense", 100, 0, feb(1)),
	}
	linesB := []report.LedgerLine{
		dcLine("Cleaning", "Expense", 200, 0, feb(1)),
		dcLine("Utilities", "Expense", 50, 0, feb(1)),
	}

	table := compare.ComputeVariance(linesA, linesB)

	total := table.Expenses.Total
	assert.Equal(t, "-500", total.ValueA.String())
	assert.Equal(t, "-250", total.ValueB.String())
	assert.Equal(t, "-250", total.Variance.String())
	require.True(t, total.VariancePct.Valid)
	assert.Equal(t, "-1", total.VariancePct.Decimal.String())
}

func TestComputeVariance_InconsistentClassificationFlagged(t *testing.T) {
	// GIVEN the same account typed as an expense in A and as COGS in B
	linesA := []report.LedgerLine{dcLine("Laundry", "Expense", 300, 0, feb(1))}
	linesB := []report.LedgerLine{dcLine("Laundry", "Cost of Goods Sold", 280, 0, feb(1))}

	// WHEN
	table := compare.ComputeVariance(linesA, linesB)

	// THEN the account is reported, and its row carries the last-seen
	// classification (B's)
	assert.Equal(t, []string{"Laundry"}, table.InconsistentAccounts)
	require.Len(t, table.COGS.Rows, 1)
	assert.Empty(t, table.Expenses.Rows)
	assert.Equal(t, "-300", table.COGS.Rows[0].ValueA.String())
	assert.Equal(t, "-280", table.COGS.Rows[0].ValueB.String())
}

func TestComputeVariance_UnclassifiedExcluded(t *testing.T) {
	linesA := []report.LedgerLine{dcLine("Owner Draw", "Equity", 1000, 0, feb(1))}

	table := compare.ComputeVariance(linesA, nil)

	assert.Empty(t, table.Income.Rows)
	assert.Empty(t, table.COGS.Rows)
	assert.Empty(t, table.Expenses.Rows)
	assert.Empty(t, table.InconsistentAccounts)
}

func TestComputeVariance_MultipleLinesAccumulatePerAccount(t *testing.T) {
	linesA := []report.LedgerLine{
		dcLine("Rental Income", "Income", 0, 1000, feb(1)),
		dcLine("Rental Income", "Income", 0, 2500, feb(15)),
		dcLine("Rental Income", "Income", 100, 0, feb(20)), // refund
	}
	linesB := []report.LedgerLine{
		dcLine("Rental Income", "Income", 0, 3000, feb(1)),
	}

	table := compare.ComputeVariance(linesA, linesB)

	require.Len(t, table.Income.Rows, 1)
	row := table.Income.Rows[0]
	assert.Equal(t, "3400", row.ValueA.String())
	assert.Equal(t, "3000", row.ValueB.String())
	assert.Equal(t, "400", row.Variance.String())
}
