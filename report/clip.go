/*
clip.go - Reservation clipping against a reporting interval

PURPOSE:
  Computes the overlap between a reservation's stay dates and a
  reporting interval, and the portion of nightly-rate revenue
  attributable to that overlap.

ALGORITHM:
  effectiveStart = max(span.Start, interval.Start)
  effectiveEnd   = min(span.End, interval.End)
  nights         = max(daysBetween(effectiveStart, effectiveEnd), 0)
  revenue        = resolvedADR * nights

  The check-out day is not counted as a night, matching how nightly
  rates are billed.

RATE RESOLUTION:
  An explicit ADR on the span wins. Otherwise the rate is derived as
  TotalRevenue / TotalNights when TotalNights > 0, else zero.

EDGE CASES:
  - Span entirely outside the interval: 0 nights, 0 revenue
  - Span with zero nights and no explicit ADR: rate resolves to 0
  - Span with End before Start: InvalidSpan, never a negative count
*/
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClipReservation computes the portion of a reservation that falls
// inside the interval. It is deterministic and idempotent: clipping the
// same span against the same interval always yields the same result.
func ClipReservation(span ReservationSpan, interval ReportingInterval) (ClippedReservation, error) {
	if DaysBetween(span.Start, span.End) < 0 {
		return ClippedReservation{}, &InvalidSpanError{
			PropertyID: span.PropertyID,
			Start:      span.Start,
			End:        span.End,
		}
	}

	effectiveStart := maxTime(span.Start, interval.Start)
	effectiveEnd := minTime(span.End, interval.End)

	nights := DaysBetween(effectiveStart, effectiveEnd)
	if nights < 0 {
		nights = 0
	}

	adr := resolveADR(span)
	return ClippedReservation{
		Nights:  nights,
		ADR:     adr,
		Revenue: adr.Mul(decimal.NewFromInt(int64(nights))),
	}, nil
}

func resolveADR(span ReservationSpan) decimal.Decimal {
	if span.ADR.Valid {
		return span.ADR.Decimal
	}
	if span.TotalNights > 0 && span.TotalRevenue.Valid {
		return span.TotalRevenue.Decimal.Div(decimal.NewFromInt(int64(span.TotalNights)))
	}
	return decimal.Zero
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
