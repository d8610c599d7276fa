/*
variance.go - Per-account variance between two ledger-line sets

PURPOSE:
  Joins sides A and B over the union of accounts seen in either set,
  accumulates a signed value per side, and produces variance rows
  grouped into income / COGS / expense sections.

ORDERING:
  Rows within each section sort by abs(variance) descending: the
  largest absolute swings first, regardless of direction. Ties break
  by account name so output order is deterministic.

VARIANCE PERCENTAGE:
  variancePct = variance / abs(valueB), undefined (null) when valueB
  is zero. Defaulting to 0 would misrepresent an undefined ratio as
  "no change".

INCONSISTENT CLASSIFICATION:
  An account whose type classifies differently between A and B keeps
  whichever classification was observed last, and the account is
  listed in InconsistentAccounts so callers can surface the
  data-quality problem instead of silently masking it. One bad account
  never aborts the comparison.
*/
package compare

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/harborstay/report-engine/report"
)

// Section identifies which P&L section a variance row belongs to.
type Section string

const (
	SectionIncome  Section = "income"
	SectionCOGS    Section = "cogs"
	SectionExpense Section = "expense"
)

// VarianceRow is one account's A-vs-B comparison. Variance is always
// ValueA - ValueB exactly.
type VarianceRow struct {
	Account     string
	Section     Section
	ValueA      decimal.Decimal
	ValueB      decimal.Decimal
	Variance    decimal.Decimal
	VariancePct decimal.NullDecimal
}

// VarianceSection is one section's rows plus its subtotal. The subtotal
// is the unweighted sum of the rows' values with the same variance
// formula applied, not a separate aggregation pass.
type VarianceSection struct {
	Rows  []VarianceRow
	Total VarianceRow
}

// VarianceTable is the full sectioned comparison.
type VarianceTable struct {
	Income   VarianceSection
	COGS     VarianceSection
	Expenses VarianceSection

	// InconsistentAccounts lists accounts whose classification differed
	// between A and B, in sorted order. Their rows carry the last-seen
	// classification.
	InconsistentAccounts []string
}

type joinedAccount struct {
	account      string
	class        report.LineClass
	valueA       decimal.Decimal
	valueB       decimal.Decimal
	inconsistent bool
}

// ComputeVariance joins the two line sets by account and builds the
// sectioned variance table. Unclassified lines are excluded entirely.
func ComputeVariance(linesA, linesB []report.LedgerLine) VarianceTable {
	joined := make(map[string]*joinedAccount)

	accumulate := func(lines []report.LedgerLine, side func(*joinedAccount, decimal.Decimal)) {
		for _, line := range lines {
			class, amount := report.Classify(line, report.DebitCredit)
			if class == report.ClassUnclassified {
				continue
			}
			j, ok := joined[line.Account]
			if !ok {
				j = &joinedAccount{account: line.Account, class: class}
				joined[line.Account] = j
			}
			if j.class != class {
				j.inconsistent = true
			}
			j.class = class // last observed classification wins
			side(j, amount)
		}
	}
	accumulate(linesA, func(j *joinedAccount, amt decimal.Decimal) { j.valueA = j.valueA.Add(amt) })
	accumulate(linesB, func(j *joinedAccount, amt decimal.Decimal) { j.valueB = j.valueB.Add(amt) })

	var table VarianceTable
	for _, j := range joined {
		row := newVarianceRow(j.account, sectionFor(j.class), j.valueA, j.valueB)
		switch row.Section {
		case SectionIncome:
			table.Income.Rows = append(table.Income.Rows, row)
		case SectionCOGS:
			table.COGS.Rows = append(table.COGS.Rows, row)
		case SectionExpense:
			table.Expenses.Rows = append(table.Expenses.Rows, row)
		}
		if j.inconsistent {
			table.InconsistentAccounts = append(table.InconsistentAccounts, j.account)
		}
	}

	finalizeSection(&table.Income, SectionIncome)
	finalizeSection(&table.COGS, SectionCOGS)
	finalizeSection(&table.Expenses, SectionExpense)
	sort.Strings(table.InconsistentAccounts)

	return table
}

func sectionFor(class report.LineClass) Section {
	switch class {
	case report.ClassRevenue:
		return SectionIncome
	case report.ClassCOGS:
		return SectionCOGS
	default:
		return SectionExpense
	}
}

func newVarianceRow(account string, section Section, valueA, valueB decimal.Decimal) VarianceRow {
	variance := valueA.Sub(valueB)
	var pct decimal.NullDecimal
	if !valueB.IsZero() {
		pct = decimal.NewNullDecimal(variance.Div(valueB.Abs()))
	}
	return VarianceRow{
		Account:     account,
		Section:     section,
		ValueA:      valueA,
		ValueB:      valueB,
		Variance:    variance,
		VariancePct: pct,
	}
}

func finalizeSection(section *VarianceSection, kind Section) {
	sort.Slice(section.Rows, func(i, j int) bool {
		vi, vj := section.Rows[i].Variance.Abs(), section.Rows[j].Variance.Abs()
		if !vi.Equal(vj) {
			return vi.GreaterThan(vj)
		}
		return section.Rows[i].Account < section.Rows[j].Account
	})

	var totalA, totalB decimal.Decimal
	for _, row := range section.Rows {
		totalA = totalA.Add(row.ValueA)
		totalB = totalB.Add(row.ValueB)
	}
	section.Total = newVarianceRow("", kind, totalA, totalB)
}
