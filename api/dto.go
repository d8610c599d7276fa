/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DECIMAL SERIALIZATION:
  Monetary values marshal as JSON strings (shopspring decimal default),
  preserving exactness on the wire. Undefined ADR/RevPAR/variance-pct
  values marshal as null, never 0 - display rounding belongs to the
  presentation layer, not here.

VALIDATION:
  Request bodies carry validator/v10 struct tags; handlers run the
  shared validator before touching the store.

SEE ALSO:
  - handlers.go: Uses these types
  - statement, compare: Domain types these DTOs project
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/harborstay/report-engine/compare"
	"github.com/harborstay/report-engine/report"
	"github.com/harborstay/report-engine/statement"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// MonthlyStatementRequest asks for a single-period portfolio statement.
type MonthlyStatementRequest struct {
	Month       string   `json:"month" validate:"required"`
	CompanyID   string   `json:"company_id"`
	PropertyIDs []string `json:"property_ids"`
}

// ComparativeRequest asks for an A-vs-B comparison. In "period" mode
// both windows are required and classes are ignored; in "class" mode
// window A is shared by both sides and the two class labels select the
// line sets.
type ComparativeRequest struct {
	Mode   string `json:"mode" validate:"required,oneof=period class"`
	StartA string `json:"start_a" validate:"required"`
	EndA   string `json:"end_a" validate:"required"`
	StartB string `json:"start_b" validate:"required_if=Mode period"`
	EndB   string `json:"end_b" validate:"required_if=Mode period"`
	ClassA string `json:"class_a"`
	ClassB string `json:"class_b"`
	KPI    string `json:"kpi" validate:"omitempty,oneof=revenue cogs opEx grossProfit netIncome"`
}

// =============================================================================
// STATEMENT RESPONSE TYPES
// =============================================================================

// PnLDTO is one P&L block.
type PnLDTO struct {
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetIncome decimal.Decimal `json:"net_income"`
}

// BookingAggregateDTO is one booking-metrics block.
type BookingAggregateDTO struct {
	Nights         int                 `json:"nights"`
	Bookings       int                 `json:"bookings"`
	OccupancyPct   decimal.Decimal     `json:"occupancy_pct"`
	ADR            decimal.NullDecimal `json:"adr"`
	RevPAR         decimal.NullDecimal `json:"revpar"`
	BookingRevenue decimal.Decimal     `json:"booking_revenue"`
}

// PropertyReportDTO is one property's slice of the statement.
type PropertyReportDTO struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	GroupKey string              `json:"group_key"`
	PnL      PnLDTO              `json:"pnl"`
	Bookings BookingAggregateDTO `json:"bookings"`
}

// PortfolioSummaryDTO is the portfolio-level roll-up.
type PortfolioSummaryDTO struct {
	PnLDTO
	BookingAggregateDTO
}

// CompanyDTO identifies the reporting scope.
type CompanyDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PortfolioReportDTO is the full single-period statement response.
type PortfolioReportDTO struct {
	Company    CompanyDTO          `json:"company"`
	Period     string              `json:"period"`
	Portfolio  PortfolioSummaryDTO `json:"portfolio"`
	Properties []PropertyReportDTO `json:"properties"`
}

// =============================================================================
// COMPARATIVE RESPONSE TYPES
// =============================================================================

// KPISetDTO is one side's summary metrics.
type KPISetDTO struct {
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	OpEx        decimal.Decimal `json:"op_ex"`
	NetIncome   decimal.Decimal `json:"net_income"`
}

// VarianceRowDTO is one account's A-vs-B row. Section subtotals reuse
// this shape with an empty account.
type VarianceRowDTO struct {
	Account     string              `json:"account,omitempty"`
	ValueA      decimal.Decimal     `json:"value_a"`
	ValueB      decimal.Decimal     `json:"value_b"`
	Variance    decimal.Decimal     `json:"variance"`
	VariancePct decimal.NullDecimal `json:"variance_pct"`
}

// VarianceSectionDTO is a section's rows plus subtotal.
type VarianceSectionDTO struct {
	Rows  []VarianceRowDTO `json:"rows"`
	Total VarianceRowDTO   `json:"total"`
}

// TimeseriesPointDTO is one daily point of the selected KPI.
type TimeseriesPointDTO struct {
	Date   string          `json:"date"`
	ValueA decimal.Decimal `json:"value_a"`
	ValueB decimal.Decimal `json:"value_b"`
}

// ComparativeResponseDTO is the full comparison response.
type ComparativeResponseDTO struct {
	KPIsA                KPISetDTO            `json:"kpis_a"`
	KPIsB                KPISetDTO            `json:"kpis_b"`
	Income               VarianceSectionDTO   `json:"income"`
	COGS                 VarianceSectionDTO   `json:"cogs"`
	Expenses             VarianceSectionDTO   `json:"expenses"`
	InconsistentAccounts []string             `json:"inconsistent_accounts,omitempty"`
	Timeseries           []TimeseriesPointDTO `json:"timeseries"`
}

// PropertyDTO is one active property in list responses.
type PropertyDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	GroupKey  string `json:"group_key"`
	UnitCount int    `json:"unit_count"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// DOMAIN -> DTO PROJECTIONS
// =============================================================================

func toPnLDTO(p report.PnL) PnLDTO {
	return PnLDTO{Revenue: p.Revenue, Expenses: p.Expenses, NetIncome: p.NetIncome}
}

func toBookingAggregateDTO(b report.BookingAggregate) BookingAggregateDTO {
	return BookingAggregateDTO{
		Nights:         b.Nights,
		Bookings:       b.Bookings,
		OccupancyPct:   b.OccupancyPct,
		ADR:            b.ADR,
		RevPAR:         b.RevPAR,
		BookingRevenue: b.BookingRevenue,
	}
}

func toPortfolioReportDTO(r *statement.PortfolioReport) PortfolioReportDTO {
	properties := make([]PropertyReportDTO, len(r.Properties))
	for i, p := range r.Properties {
		properties[i] = PropertyReportDTO{
			ID:       p.ID,
			Name:     p.Name,
			GroupKey: p.GroupKey,
			PnL:      toPnLDTO(p.PnL),
			Bookings: toBookingAggregateDTO(p.Bookings),
		}
	}
	return PortfolioReportDTO{
		Company: CompanyDTO{ID: r.Company.ID, Name: r.Company.Name},
		Period:  r.Period,
		Portfolio: PortfolioSummaryDTO{
			PnLDTO:              toPnLDTO(r.Portfolio.PnL),
			BookingAggregateDTO: toBookingAggregateDTO(r.Portfolio.BookingAggregate),
		},
		Properties: properties,
	}
}

func toKPISetDTO(k compare.KPISet) KPISetDTO {
	return KPISetDTO{
		Revenue:     k.Revenue,
		COGS:        k.COGS,
		GrossProfit: k.GrossProfit,
		OpEx:        k.OpEx,
		NetIncome:   k.NetIncome,
	}
}

func toVarianceRowDTO(r compare.VarianceRow) VarianceRowDTO {
	return VarianceRowDTO{
		Account:     r.Account,
		ValueA:      r.ValueA,
		ValueB:      r.ValueB,
		Variance:    r.Variance,
		VariancePct: r.VariancePct,
	}
}

func toVarianceSectionDTO(s compare.VarianceSection) VarianceSectionDTO {
	rows := make([]VarianceRowDTO, len(s.Rows))
	for i, row := range s.Rows {
		rows[i] = toVarianceRowDTO(row)
	}
	return VarianceSectionDTO{Rows: rows, Total: toVarianceRowDTO(s.Total)}
}

func toComparativeResponseDTO(res *compare.Result) ComparativeResponseDTO {
	points := make([]TimeseriesPointDTO, len(res.Timeseries))
	for i, p := range res.Timeseries {
		points[i] = TimeseriesPointDTO{Date: p.Date, ValueA: p.ValueA, ValueB: p.ValueB}
	}
	return ComparativeResponseDTO{
		KPIsA:                toKPISetDTO(res.KPIsA),
		KPIsB:                toKPISetDTO(res.KPIsB),
		Income:               toVarianceSectionDTO(res.Variance.Income),
		COGS:                 toVarianceSectionDTO(res.Variance.COGS),
		Expenses:             toVarianceSectionDTO(res.Variance.Expenses),
		InconsistentAccounts: res.Variance.InconsistentAccounts,
		Timeseries:           points,
	}
}
