/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with
	realistic portfolio data for testing and demos. Each scenario seeds
	properties, journal entry lines, and reservations exercising a
	specific report feature.

AVAILABLE SCENARIOS:

	coastal-duo:        Two beach properties, one month of statement
	                    data, including a reservation straddling the
	                    month boundary
	class-comparison:   Two property classes with debit/credit ledger
	                    data across two months for A-vs-B analysis

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Seed properties
 3. Seed journal entry lines (signed amount and debit/credit columns)
 4. Seed reservations

NOTE:

	Scenarios reset the database. Only use in development/demo
	environments.

SEE ALSO:
  - handlers.go: Shared handler context and response helpers
  - store/sqlite: Seed writes
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/harborstay/report-engine/report"
	"github.com/harborstay/report-engine/store/sqlite"
)

// ScenarioDTO describes one loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects the scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "coastal-duo",
		Name:        "Coastal Duo",
		Description: "Two beach properties with one month of statement data and a month-straddling reservation",
	},
	{
		ID:          "class-comparison",
		Name:        "Class Comparison",
		Description: "Two property classes with two months of debit/credit ledger data for comparative analysis",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario resets the database and seeds the requested scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	var loader func(context.Context, *sqlite.Store) error
	switch req.ScenarioID {
	case "coastal-duo":
		loader = loadCoastalDuo
	case "class-comparison":
		loader = loadClassComparison
	default:
		writeError(w, http.StatusNotFound, "Unknown scenario", fmt.Errorf("no scenario %q", req.ScenarioID))
		return
	}

	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset data", err)
		return
	}
	if err := loader(r.Context(), h.Store); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]any{"loaded": req.ScenarioID})
}

// ResetData wipes all seeded data.
func (h *Handler) ResetData(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset data", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]any{"reset": true})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("bad scenario decimal %q: %v", s, err))
	}
	return d
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

// loadCoastalDuo seeds February 2025 statement data for two properties.
// The "Pelican Cottage" reservation runs Jan 28 - Feb 3, so exactly two
// of its six nights belong to February.
func loadCoastalDuo(ctx context.Context, store *sqlite.Store) error {
	properties := []sqlite.PropertyRecord{
		{ID: "prop-pelican", CompanyID: "coastal", Name: "Pelican Cottage", GroupKey: "Pelican Cottage", UnitCount: 1, IsActive: true},
		{ID: "prop-sandbar", CompanyID: "coastal", Name: "Sandbar House", GroupKey: "Sandbar House", UnitCount: 2, IsActive: true},
	}
	for _, p := range properties {
		if err := store.SaveProperty(ctx, p); err != nil {
			return err
		}
	}

	lines := []sqlite.JournalLineRecord{
		{CompanyID: "coastal", GroupKey: "Pelican Cottage", Account: "Rental Income", AccountType: "Income", Amount: dec("4200"), Date: "2025-02-10"},
		{CompanyID: "coastal", GroupKey: "Pelican Cottage", Account: "Cleaning Fees", AccountType: "Expense", Amount: dec("360"), Date: "2025-02-12"},
		{CompanyID: "coastal", GroupKey: "Pelican Cottage", Account: "Linen Service", AccountType: "Cost of Goods Sold", Amount: dec("140"), Date: "2025-02-15"},
		{CompanyID: "coastal", GroupKey: "Sandbar House", Account: "Rental Income", AccountType: "Income", Amount: dec("6800"), Date: "2025-02-08"},
		{CompanyID: "coastal", GroupKey: "Sandbar House", Account: "Pool Maintenance", AccountType: "Expense", Amount: dec("520"), Date: "2025-02-20"},
		// Blank class: lands in the "unmapped" bucket, not dropped.
		{CompanyID: "coastal", GroupKey: "", Account: "Bank Fees", AccountType: "Expense", Amount: dec("45"), Date: "2025-02-28"},
	}
	for _, l := range lines {
		if err := store.SaveJournalLine(ctx, l); err != nil {
			return err
		}
	}

	reservations := []sqlite.ReservationRecord{
		{ID: "res-1", PropertyID: "prop-pelican", PropertyName: "Pelican Cottage", StartDate: "2025-01-28", EndDate: "2025-02-03", Nights: 6, Revenue: nullDec("600"), Status: report.ReservationConfirmed},
		{ID: "res-2", PropertyID: "prop-pelican", PropertyName: "Pelican Cottage", StartDate: "2025-02-14", EndDate: "2025-02-18", Nights: 4, ADR: nullDec("150"), Status: report.ReservationCompleted},
		{ID: "res-3", PropertyID: "prop-sandbar", PropertyName: "Sandbar House", StartDate: "2025-02-01", EndDate: "2025-02-11", Nights: 10, ADR: nullDec("220"), Status: report.ReservationCompleted},
		// Cancelled: excluded by the fetch, never reaches the clipper.
		{ID: "res-4", PropertyID: "prop-sandbar", PropertyName: "Sandbar House", StartDate: "2025-02-20", EndDate: "2025-02-25", Nights: 5, ADR: nullDec("220"), Status: report.ReservationCancelled},
	}
	for _, r := range reservations {
		if err := store.SaveReservation(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// loadClassComparison seeds debit/credit ledger data for two classes
// across January and February 2025, suited to both comparison modes.
func loadClassComparison(ctx context.Context, store *sqlite.Store) error {
	properties := []sqlite.PropertyRecord{
		{ID: "prop-ridge", CompanyID: "alpine", Name: "Ridge Chalet", GroupKey: "Mountain", UnitCount: 1, IsActive: true},
		{ID: "prop-cove", CompanyID: "alpine", Name: "Cove Bungalow", GroupKey: "Lakeside", UnitCount: 1, IsActive: true},
	}
	for _, p := range properties {
		if err := store.SaveProperty(ctx, p); err != nil {
			return err
		}
	}

	lines := []sqlite.JournalLineRecord{
		// January, Mountain
		{CompanyID: "alpine", GroupKey: "Mountain", Account: "Rental Income", AccountType: "Income", Credit: dec("9000"), Date: "2025-01-05"},
		{CompanyID: "alpine", GroupKey: "Mountain", Account: "Cleaning Fees", AccountType: "Expenses", Debit: dec("500"), Date: "2025-01-09"},
		{CompanyID: "alpine", GroupKey: "Mountain", Account: "Linen Service", AccountType: "Cost of Goods Sold", Debit: dec("300"), Date: "2025-01-15"},
		// January, Lakeside
		{CompanyID: "alpine", GroupKey: "Lakeside", Account: "Rental Income", AccountType: "Income", Credit: dec("7000"), Date: "2025-01-07"},
		{CompanyID: "alpine", GroupKey: "Lakeside", Account: "Cleaning Fees", AccountType: "Expenses", Debit: dec("450"), Date: "2025-01-20"},
		// February, Mountain
		{CompanyID: "alpine", GroupKey: "Mountain", Account: "Rental Income", AccountType: "Income", Credit: dec("8200"), Date: "2025-02-04"},
		{CompanyID: "alpine", GroupKey: "Mountain", Account: "Cleaning Fees", AccountType: "Expenses", Debit: dec("620"), Date: "2025-02-11"},
		{CompanyID: "alpine", GroupKey: "Mountain", Account: "Linen Service", AccountType: "Cost of Goods Sold", Debit: dec("280"), Date: "2025-02-16"},
		// February, Lakeside
		{CompanyID: "alpine", GroupKey: "Lakeside", Account: "Rental Income", AccountType: "Income", Credit: dec("7400"), Date: "2025-02-06"},
		{CompanyID: "alpine", GroupKey: "Lakeside", Account: "Snow Removal", AccountType: "Expenses", Debit: dec("380"), Date: "2025-02-18"},
	}
	for _, l := range lines {
		if err := store.SaveJournalLine(ctx, l); err != nil {
			return err
		}
	}
	return nil
}
