/*
Package compare implements comparative variance analysis between two
independently fetched ledger-line sets (A and B): two reporting windows
(period vs period) or two property classes (class vs class).

PURPOSE:
  Produces the three datasets a side-by-side review needs:
  - KPI summaries per side (kpi.go)
  - Per-account variance rows grouped into P&L sections (variance.go)
  - A daily time series for one selected KPI (timeseries.go)

SIGN CONVENTION:
  Comparative feeds carry DEBIT_CREDIT ledger lines. Every amount is
  the signed credit - debit value, so revenue is positive and COGS /
  operating expenses are negative. That makes the derived KPIs plain
  sums:

    grossProfit = revenue + cogs
    netIncome   = grossProfit + opEx

SEE ALSO:
  - report: shared classifier (one classifier for both report features,
    so the single-period and comparative paths cannot drift)
  - statement: the single-period counterpart to this package
*/
package compare

import (
	"github.com/shopspring/decimal"

	"github.com/harborstay/report-engine/report"
)

// KPI selects which metric a time series tracks.
type KPI string

const (
	KPIRevenue     KPI = "revenue"
	KPICOGS        KPI = "cogs"
	KPIOpEx        KPI = "opEx"
	KPIGrossProfit KPI = "grossProfit"
	KPINetIncome   KPI = "netIncome"
)

// Valid reports whether k is a known KPI selector.
func (k KPI) Valid() bool {
	switch k {
	case KPIRevenue, KPICOGS, KPIOpEx, KPIGrossProfit, KPINetIncome:
		return true
	}
	return false
}

// KPISet holds the five summary metrics for one side of a comparison.
type KPISet struct {
	Revenue     decimal.Decimal
	COGS        decimal.Decimal
	GrossProfit decimal.Decimal
	OpEx        decimal.Decimal
	NetIncome   decimal.Decimal
}

// ComputeKPIs folds one side's ledger lines into its KPI summary.
// Unclassified lines contribute nothing.
func ComputeKPIs(lines []report.LedgerLine) KPISet {
	var revenue, cogs, opEx decimal.Decimal

	for _, line := range lines {
		class, amount := report.Classify(line, report.DebitCredit)
		switch class {
		case report.ClassRevenue:
			revenue = revenue.Add(amount)
		case report.ClassCOGS:
			cogs = cogs.Add(amount)
		case report.ClassOpEx:
			opEx = opEx.Add(amount)
		}
	}

	grossProfit := revenue.Add(cogs)
	return KPISet{
		Revenue:     revenue,
		COGS:        cogs,
		GrossProfit: grossProfit,
		OpEx:        opEx,
		NetIncome:   grossProfit.Add(opEx),
	}
}
