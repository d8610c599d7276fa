/*
pnl.go - Grouped P&L aggregation over classified ledger lines

PURPOSE:
  Folds classified ledger lines, grouped by a caller-supplied key, into
  per-group revenue/expense/net-income totals. This is the financial
  half of a single-period statement; booking aggregates are the other.

GROUPING:
  The default key is the line's class/property label. Lines with a
  missing or blank key land in the "unmapped" bucket rather than being
  dropped, so group totals always reconcile to the sum of all fetched
  lines.

NET INCOME:
  NetIncome is a single subtraction at finalization, never accumulated
  incrementally across lines. Revenue - Expenses holds exactly for
  every PnL this function returns.
*/
package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// UnmappedGroup is the bucket for lines whose grouping key is blank.
const UnmappedGroup = "unmapped"

// GroupKeyFunc extracts the grouping key for one ledger line.
type GroupKeyFunc func(LedgerLine) string

// AggregatePnL folds lines into a PnL per group key. A nil keyFn groups
// by the line's GroupKey. Revenue accumulates revenue-class lines;
// Expenses accumulates both COGS and operating expense lines (the
// statement P&L does not split them). Unclassified lines contribute
// nothing.
func AggregatePnL(lines []LedgerLine, convention SignConvention, keyFn GroupKeyFunc) map[string]PnL {
	if keyFn == nil {
		keyFn = func(line LedgerLine) string { return line.GroupKey }
	}

	type totals struct {
		revenue  decimal.Decimal
		expenses decimal.Decimal
	}
	acc := make(map[string]*totals)

	for _, line := range lines {
		class, amount := Classify(line, convention)
		if class == ClassUnclassified {
			continue
		}

		key := strings.TrimSpace(keyFn(line))
		if key == "" {
			key = UnmappedGroup
		}
		t, ok := acc[key]
		if !ok {
			t = &totals{}
			acc[key] = t
		}

		if class == ClassRevenue {
			t.revenue = t.revenue.Add(amount)
		} else {
			t.expenses = t.expenses.Add(amount)
		}
	}

	out := make(map[string]PnL, len(acc))
	for key, t := range acc {
		out[key] = PnL{
			Revenue:   t.revenue,
			Expenses:  t.expenses,
			NetIncome: t.revenue.Sub(t.expenses),
		}
	}
	return out
}
