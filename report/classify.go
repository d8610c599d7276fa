/*
classify.go - Ledger line classification under both sign conventions

PURPOSE:
  Maps a raw ledger line into {revenue, COGS, operating expense,
  unclassified} plus its effective signed amount. The two report
  features receive ledger data shaped differently upstream:

  SIGNED_AMOUNT (monthly statements):
    One positive amount per line. Account types match by
    case-insensitive PREFIX: "income*" is revenue, "cost of goods
    sold*" is COGS, "expense*" is operating expense.

  DEBIT_CREDIT (comparative analysis):
    Separate debit/credit columns; effective amount = credit - debit.
    Account types match by case-insensitive CONTAINMENT:
    income/revenue, cost of goods sold, and expense - with COGS
    matched before expense so a type containing both lands in COGS.

  One classifier with an explicit convention flag, rather than two
  parallel implementations, keeps the single-period and comparative
  code paths from drifting apart.

UNCLASSIFIED LINES:
  Lines matching no rule are excluded from every total and variance
  row. This is a data-quality recovery, not an error: a single
  unmappable account must not block a whole portfolio report.
*/
package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

const cogsLabel = "cost of goods sold"

// Classify maps one ledger line to its class and effective amount under
// the given sign convention. Unclassified lines return a zero amount.
func Classify(line LedgerLine, convention SignConvention) (LineClass, decimal.Decimal) {
	accountType := strings.ToLower(strings.TrimSpace(line.AccountType))

	switch convention {
	case DebitCredit:
		amount := line.Credit.Sub(line.Debit)
		switch {
		case strings.Contains(accountType, "income") || strings.Contains(accountType, "revenue"):
			return ClassRevenue, amount
		case strings.Contains(accountType, cogsLabel):
			return ClassCOGS, amount
		case strings.Contains(accountType, "expense"):
			return ClassOpEx, amount
		}
		return ClassUnclassified, decimal.Zero

	default: // SignedAmount
		switch {
		case strings.HasPrefix(accountType, "income"):
			return ClassRevenue, line.Amount
		case strings.HasPrefix(accountType, cogsLabel):
			return ClassCOGS, line.Amount
		case strings.HasPrefix(accountType, "expense"):
			return ClassOpEx, line.Amount
		}
		return ClassUnclassified, decimal.Zero
	}
}
