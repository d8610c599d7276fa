/*
compare.go - Comparison result assembly

PURPOSE:
  Bundles the three comparative datasets into one result for callers.
  The inputs are two already-fetched ledger-line sets; which windows or
  classes they represent is the caller's concern.
*/
package compare

import (
	"fmt"

	"github.com/harborstay/report-engine/report"
)

// Result is everything a comparative report consumes: per-side KPI
// summaries, the sectioned variance table, and the daily series for
// the selected KPI.
type Result struct {
	KPIsA      KPISet
	KPIsB      KPISet
	Variance   VarianceTable
	Timeseries []TimeseriesPoint
}

// Run computes the full comparison for the selected KPI.
func Run(linesA, linesB []report.LedgerLine, kpi KPI) (*Result, error) {
	if !kpi.Valid() {
		return nil, fmt.Errorf("compare: unknown kpi %q", kpi)
	}

	return &Result{
		KPIsA:      ComputeKPIs(linesA),
		KPIsB:      ComputeKPIs(linesB),
		Variance:   ComputeVariance(linesA, linesB),
		Timeseries: BuildTimeseries(linesA, linesB, kpi),
	}, nil
}
