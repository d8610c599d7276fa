/*
errors.go - Centralized error types for the reporting engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Calling layers wrap these errors with transport-level context.

ERROR CATEGORIES (the taxonomy callers rely on):
  1. Input validation - malformed period, non-existent month, span with
     end before start. Surfaced immediately, never retried or corrected.
  2. Data-quality anomalies - blank group keys, unclassifiable account
     types. These are NOT errors here: the engine recovers locally
     ("unmapped" bucket, exclusion from totals) so one bad row cannot
     block a whole portfolio report.
  3. Aggregation failures - unexpected nil/shape mismatch in an input
     collection. The engine never partially populates a report; these
     abort the whole computation.

USAGE:
  if errors.Is(err, report.ErrInvalidPeriod) {
      // 400 to the client
  }
*/
package report

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPeriod is returned when a period identifier is malformed
	// or denotes a non-existent calendar month.
	ErrInvalidPeriod = errors.New("invalid reporting period")

	// ErrInvalidSpan is returned when a reservation span ends before it
	// starts. Clipping such a span would silently produce a negative
	// night count, so it fails instead.
	ErrInvalidSpan = errors.New("invalid reservation span")

	// ErrAggregationFailed is returned when an input collection has an
	// unexpected shape (nil entries, blank identifiers). The whole
	// report computation aborts; nothing partial is returned.
	ErrAggregationFailed = errors.New("aggregation failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidPeriodError reports why a period identifier was rejected.
type InvalidPeriodError struct {
	Input  string
	Reason string
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("invalid period %q: %s", e.Input, e.Reason)
}

func (e *InvalidPeriodError) Unwrap() error { return ErrInvalidPeriod }

// InvalidSpanError reports a reservation whose end precedes its start.
type InvalidSpanError struct {
	PropertyID string
	Start      time.Time
	End        time.Time
}

func (e *InvalidSpanError) Error() string {
	return fmt.Sprintf("reservation span for property %q ends %s before it starts %s",
		e.PropertyID, e.End.Format("2006-01-02"), e.Start.Format("2006-01-02"))
}

func (e *InvalidSpanError) Unwrap() error { return ErrInvalidSpan }

// AggregationError reports a shape mismatch in an input collection.
type AggregationError struct {
	Collection string // e.g. "properties", "ledger lines"
	Reason     string
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("cannot aggregate %s: %s", e.Collection, e.Reason)
}

func (e *AggregationError) Unwrap() error { return ErrAggregationFailed }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// and should map to a 4xx at the transport layer.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidSpan)
}
