/*
Package report provides the core computation engine for portfolio
financial and occupancy reporting.

PURPOSE:
  This package contains the pure, synchronous building blocks that turn
  already-fetched ledger lines and reservation records into exact numeric
  aggregates. It knows nothing about HTTP, storage, or rendering - those
  layers feed it materialized collections and consume its results.

KEY CONCEPTS IN THIS FILE (types.go):
  - ReportingInterval: A timezone-anchored inclusive date window
  - LedgerLine: A raw journal entry line (read-only input)
  - ReservationSpan: A booking with a start/end date span
  - ClippedReservation: The portion of a span inside an interval
  - PnL: Revenue/expense/net-income totals for one group
  - BookingAggregate: Nights, occupancy, ADR, RevPAR for one property

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for every monetary value
  2. Explicit undefined: ADR/RevPAR with no nights are NullDecimal,
     never zero (zero would imply a free stay occurred)
  3. Purity: No internal state, no caching, no clocks - every function
     is a transformation over its arguments

SEE ALSO:
  - calendar.go: Month/range resolution in the anchor timezone
  - clip.go: Reservation clipping against an interval
  - classify.go: Ledger line classification under both sign conventions
  - pnl.go: Grouped P&L aggregation
  - occupancy.go: Occupancy, ADR and RevPAR derivation
*/
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SIGN CONVENTIONS
// =============================================================================

// SignConvention describes how a ledger line encodes its amount.
// Statement feeds carry a single signed amount per line; analysis feeds
// carry separate debit and credit columns. The classifier accepts the
// convention explicitly rather than guessing from the data shape.
type SignConvention string

const (
	// SignedAmount lines carry one positive amount in Amount.
	SignedAmount SignConvention = "signed_amount"

	// DebitCredit lines carry Debit and Credit; the effective amount
	// is credit - debit.
	DebitCredit SignConvention = "debit_credit"
)

// =============================================================================
// LINE CLASSES
// =============================================================================

// LineClass is the classification bucket for a ledger line.
type LineClass int

const (
	ClassUnclassified LineClass = iota
	ClassRevenue
	ClassCOGS
	ClassOpEx
)

func (c LineClass) String() string {
	switch c {
	case ClassRevenue:
		return "revenue"
	case ClassCOGS:
		return "cogs"
	case ClassOpEx:
		return "opex"
	default:
		return "unclassified"
	}
}

// IsExpense reports whether the class contributes to the expense side
// of a P&L (both COGS and operating expenses do).
func (c LineClass) IsExpense() bool {
	return c == ClassCOGS || c == ClassOpEx
}

// =============================================================================
// INPUT TYPES - Produced externally, read-only to this package
// =============================================================================

// LedgerLine is one raw journal entry line as fetched from storage.
type LedgerLine struct {
	GroupKey    string // class / property grouping label; may be blank
	Account     string // raw account label, e.g. "Cleaning Fees"
	AccountType string // e.g. "Income", "Expense", "Cost of Goods Sold"
	Amount      decimal.Decimal
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Date        time.Time // transaction date
}

// ReservationStatus enumerates booking lifecycle states.
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationInquiry   ReservationStatus = "inquiry"
)

// ReservationSpan is a booking with its stay dates. Only confirmed and
// completed spans are eligible for aggregation; that filtering happens
// upstream, but the clipper tolerates any span regardless of status.
type ReservationSpan struct {
	PropertyID   string
	PropertyName string
	Start        time.Time // check-in date
	End          time.Time // check-out date
	TotalNights  int
	ADR          decimal.NullDecimal // explicit nightly rate, if known
	TotalRevenue decimal.NullDecimal
	Status       ReservationStatus
}

// Property is one active rental unit group as fetched from storage.
type Property struct {
	ID        string
	Name      string
	GroupKey  string // ledger class this property's lines book under
	UnitCount int    // number of rentable units; 0 is treated as 1
}

// Units returns the effective unit count (minimum 1).
func (p Property) Units() int {
	if p.UnitCount <= 0 {
		return 1
	}
	return p.UnitCount
}

// =============================================================================
// DERIVED TYPES - Ephemeral, recomputed per request
// =============================================================================

// ClippedReservation is the portion of a reservation attributable to a
// reporting interval.
type ClippedReservation struct {
	Nights  int             // >= 0 always
	ADR     decimal.Decimal // resolved nightly rate, >= 0
	Revenue decimal.Decimal // ADR * Nights
}

// PnL holds revenue/expense/net-income totals for one grouping key.
// NetIncome is always Revenue - Expenses, recomputed at finalization
// rather than accumulated incrementally.
type PnL struct {
	Revenue   decimal.Decimal
	Expenses  decimal.Decimal
	NetIncome decimal.Decimal
}

// BookingAggregate holds per-property booking metrics for one interval.
// ADR and RevPAR are undefined (not zero) when no nights were occupied.
type BookingAggregate struct {
	Nights         int
	Bookings       int
	OccupancyPct   decimal.Decimal // [0, 100]
	ADR            decimal.NullDecimal
	RevPAR         decimal.NullDecimal
	BookingRevenue decimal.Decimal
}
