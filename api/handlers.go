/*
handlers.go - HTTP API handlers for the reporting engine

PURPOSE:
  Exposes the reporting engine via REST API. Handles HTTP
  request/response, JSON serialization and input validation, fetches
  the input collections from the store, and delegates every number to
  the pure computation packages.

ENDPOINTS:
  Reports:
    POST /api/statements/monthly    Single-period portfolio statement
    POST /api/analysis/comparative  A-vs-B variance analysis

  Reference data:
    GET  /api/properties            Active properties
    GET  /api/classes               Distinct ledger class labels

  Scenarios:
    GET  /api/scenarios             List demo scenarios
    POST /api/scenarios/load        Seed a demo scenario
    POST /api/scenarios/reset       Wipe all data

REQUEST FLOW:
  1. Decode and validate the request body
  2. Resolve the reporting interval(s)
  3. Fetch properties / ledger lines / reservations for the scope
  4. Run the pure aggregation
  5. Serialize the DTO projection

ERROR HANDLING:
  - 400: Malformed JSON, failed validation, invalid period or span
  - 404: Unknown scenario
  - 500: Store failures, aggregation shape mismatches
  The engine never returns a partially populated report: any error
  aborts the whole request.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario seeding
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/harborstay/report-engine/compare"
	"github.com/harborstay/report-engine/report"
	"github.com/harborstay/report-engine/statement"
	"github.com/harborstay/report-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	validate *validator.Validate

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:    store,
		validate: validator.New(),
	}
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// MonthlyStatement computes a single-period portfolio statement.
func (h *Handler) MonthlyStatement(w http.ResponseWriter, r *http.Request) {
	var req MonthlyStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	interval, err := report.ResolveMonth(req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	properties, err := h.Store.ListProperties(r.Context(), req.CompanyID, req.PropertyIDs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list properties", err)
		return
	}

	// The property list determines which ledger classes are in scope.
	groupKeys := make([]string, 0, len(properties))
	for _, p := range properties {
		if p.GroupKey != "" {
			groupKeys = append(groupKeys, p.GroupKey)
		}
	}

	lines, err := h.Store.ListStatementLines(r.Context(), interval, req.CompanyID, groupKeys)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list journal lines", err)
		return
	}

	spans, err := h.Store.ListReservations(r.Context(), interval, req.PropertyIDs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reservations", err)
		return
	}

	company := statement.Company{ID: req.CompanyID, Name: req.CompanyID}
	if company.ID == "" {
		company = statement.Company{ID: "all", Name: "All Companies"}
	}

	portfolioReport, err := statement.Build(company, req.Month, interval, properties, lines, spans)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPortfolioReportDTO(portfolioReport))
}

// ComparativeAnalysis computes an A-vs-B comparison.
func (h *Handler) ComparativeAnalysis(w http.ResponseWriter, r *http.Request) {
	var req ComparativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	kpi := compare.KPI(req.KPI)
	if req.KPI == "" {
		kpi = compare.KPIRevenue
	}

	intervalA, err := report.ResolveRange(req.StartA, req.EndA)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid window A", err)
		return
	}

	var linesA, linesB []report.LedgerLine
	switch req.Mode {
	case "class":
		// Class mode compares two classes over the same window.
		linesA, err = h.Store.ListAnalysisLines(r.Context(), intervalA, classScope(req.ClassA))
		if err == nil {
			linesB, err = h.Store.ListAnalysisLines(r.Context(), intervalA, classScope(req.ClassB))
		}
	default: // period
		var intervalB report.ReportingInterval
		intervalB, err = report.ResolveRange(req.StartB, req.EndB)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid window B", err)
			return
		}
		linesA, err = h.Store.ListAnalysisLines(r.Context(), intervalA, "")
		if err == nil {
			linesB, err = h.Store.ListAnalysisLines(r.Context(), intervalB, "")
		}
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list journal lines", err)
		return
	}

	result, err := compare.Run(linesA, linesB, kpi)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid KPI", err)
		return
	}

	writeJSON(w, http.StatusOK, toComparativeResponseDTO(result))
}

// AllProperties is the class label meaning "no class filter". The UI
// sends it as an explicit choice; the store treats it as unscoped.
const AllProperties = "All Properties"

func classScope(class string) string {
	if class == AllProperties {
		return ""
	}
	return class
}

// =============================================================================
// REFERENCE DATA HANDLERS
// =============================================================================

// ListProperties returns all active properties.
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.Store.ListProperties(r.Context(), "", nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list properties", err)
		return
	}

	dtos := make([]PropertyDTO, len(properties))
	for i, p := range properties {
		dtos[i] = PropertyDTO{ID: p.ID, Name: p.Name, GroupKey: p.GroupKey, UnitCount: p.Units()}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListClasses returns the distinct class labels present in the ledger,
// with the "All Properties" pseudo-class first.
func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.Store.ListClasses(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list classes", err)
		return
	}
	writeJSON(w, http.StatusOK, append([]string{AllProperties}, classes...))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	if report.IsClientError(err) {
		writeError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Report computation failed", err)
}
