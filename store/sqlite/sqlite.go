/*
Package sqlite provides the SQLite-backed fetch layer for report requests.

PURPOSE:
  Materializes the three input collections every report request needs -
  active properties, journal entry lines bounded by the reporting
  interval, and reservations intersecting it - and hands them to the
  pure computation packages. Nothing computed is ever written back:
  reports are recomputed per request, never persisted or cached.

KEY TABLES:
  properties:          Active rental units with class labels
  journal_entry_lines: Raw ledger lines (signed amount AND debit/credit
                       columns; which pair a query reads depends on the
                       report feature's sign convention)
  reservations:        Booking spans with status and rate data

DATE HANDLING:
  Calendar dates are stored as "YYYY-MM-DD" TEXT in the anchor
  timezone, so lexical comparison in SQL matches chronological order.
  Interval bounds are converted with report.DateKey before querying -
  never compared as raw instants, which is how month-boundary
  off-by-one bugs happen.

DECIMAL HANDLING:
  Monetary values are stored as TEXT and parsed with shopspring
  decimal, preserving exactness end to end. REAL columns would round.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so concurrent report
  requests reading different periods never block each other.

USAGE:
  store, err := sqlite.New("./data/portfolio.db")
  if err != nil {
      return err
  }
  defer store.Close()

SEE ALSO:
  - report: the collection element types this package produces
  - api: the only consumer of these queries
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/harborstay/report-engine/report"
)

// Store wraps the SQLite connection behind report-scoped queries.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database exists per connection; a second pooled
	// connection would see an empty schema.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Properties (active rental units)
	CREATE TABLE IF NOT EXISTS properties (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		group_key TEXT NOT NULL DEFAULT '',
		unit_count INTEGER NOT NULL DEFAULT 1,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);

	CREATE INDEX IF NOT EXISTS idx_properties_company
		ON properties(company_id) WHERE is_active;

	-- Journal entry lines (raw ledger, read-only to the engine)
	CREATE TABLE IF NOT EXISTS journal_entry_lines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id TEXT NOT NULL DEFAULT '',
		group_key TEXT NOT NULL DEFAULT '',
		account TEXT NOT NULL,
		account_type TEXT NOT NULL,
		amount TEXT NOT NULL DEFAULT '0',
		debit TEXT NOT NULL DEFAULT '0',
		credit TEXT NOT NULL DEFAULT '0',
		txn_date TEXT NOT NULL
	);

	-- Interval-bounded fetches are the hot path for both report types
	CREATE INDEX IF NOT EXISTS idx_journal_lines_date
		ON journal_entry_lines(txn_date);
	CREATE INDEX IF NOT EXISTS idx_journal_lines_company_date
		ON journal_entry_lines(company_id, txn_date);
	CREATE INDEX IF NOT EXISTS idx_journal_lines_group
		ON journal_entry_lines(group_key, txn_date);

	-- Reservations (booking spans)
	CREATE TABLE IF NOT EXISTS reservations (
		id TEXT PRIMARY KEY,
		property_id TEXT NOT NULL,
		property_name TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		nights INTEGER NOT NULL DEFAULT 0,
		adr TEXT,
		revenue TEXT,
		status TEXT NOT NULL DEFAULT 'confirmed'
	);

	-- Span-intersection fetches filter on both date columns
	CREATE INDEX IF NOT EXISTS idx_reservations_dates
		ON reservations(start_date, end_date);
	CREATE INDEX IF NOT EXISTS idx_reservations_property
		ON reservations(property_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// FETCH QUERIES - One per input collection of a report request
// =============================================================================

// ListProperties returns active properties, optionally scoped to a
// company and/or an explicit property-id set.
func (s *Store) ListProperties(ctx context.Context, companyID string, propertyIDs []string) ([]report.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, name, group_key, unit_count FROM properties WHERE is_active"
	var args []any
	if companyID != "" {
		query += " AND company_id = ?"
		args = append(args, companyID)
	}
	if len(propertyIDs) > 0 {
		query += " AND id IN (" + placeholders(len(propertyIDs)) + ")"
		for _, id := range propertyIDs {
			args = append(args, id)
		}
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []report.Property
	for rows.Next() {
		var p report.Property
		if err := rows.Scan(&p.ID, &p.Name, &p.GroupKey, &p.UnitCount); err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

// ListStatementLines returns SIGNED_AMOUNT-shaped ledger lines within
// the interval, optionally scoped by company and class labels. The
// debit/credit columns are left zero.
func (s *Store) ListStatementLines(ctx context.Context, interval report.ReportingInterval, companyID string, groupKeys []string) ([]report.LedgerLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT group_key, account, account_type, amount, '0', '0', txn_date FROM journal_entry_lines WHERE txn_date >= ? AND txn_date <= ?"
	args := []any{report.DateKey(interval.Start), report.DateKey(interval.End)}
	if companyID != "" {
		query += " AND company_id = ?"
		args = append(args, companyID)
	}
	if len(groupKeys) > 0 {
		query += " AND group_key IN (" + placeholders(len(groupKeys)) + ")"
		for _, key := range groupKeys {
			args = append(args, key)
		}
	}

	return s.queryLines(ctx, query, args...)
}

// ListAnalysisLines returns DEBIT_CREDIT-shaped ledger lines within the
// interval. A non-blank groupKey scopes the fetch to one property
// class; blank means the whole portfolio. The amount column is left
// zero.
func (s *Store) ListAnalysisLines(ctx context.Context, interval report.ReportingInterval, groupKey string) ([]report.LedgerLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT group_key, account, account_type, '0', debit, credit, txn_date FROM journal_entry_lines WHERE txn_date >= ? AND txn_date <= ?"
	args := []any{report.DateKey(interval.Start), report.DateKey(interval.End)}
	if groupKey != "" {
		query += " AND group_key = ?"
		args = append(args, groupKey)
	}

	return s.queryLines(ctx, query, args...)
}

func (s *Store) queryLines(ctx context.Context, query string, args ...any) ([]report.LedgerLine, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []report.LedgerLine
	for rows.Next() {
		var line report.LedgerLine
		var amount, debit, credit, txnDate string
		if err := rows.Scan(&line.GroupKey, &line.Account, &line.AccountType, &amount, &debit, &credit, &txnDate); err != nil {
			return nil, err
		}
		if line.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("bad amount %q for account %q: %w", amount, line.Account, err)
		}
		if line.Debit, err = decimal.NewFromString(debit); err != nil {
			return nil, fmt.Errorf("bad debit %q for account %q: %w", debit, line.Account, err)
		}
		if line.Credit, err = decimal.NewFromString(credit); err != nil {
			return nil, fmt.Errorf("bad credit %q for account %q: %w", credit, line.Account, err)
		}
		line.Date, err = parseDate(txnDate)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// ListReservations returns confirmed/completed reservations whose span
// intersects the interval, optionally scoped to a property-id set.
func (s *Store) ListReservations(ctx context.Context, interval report.ReportingInterval, propertyIDs []string) ([]report.ReservationSpan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT property_id, property_name, start_date, end_date, nights, adr, revenue, status
		FROM reservations
		WHERE status IN ('confirmed', 'completed') AND start_date <= ? AND end_date >= ?`
	args := []any{report.DateKey(interval.End), report.DateKey(interval.Start)}
	if len(propertyIDs) > 0 {
		query += " AND property_id IN (" + placeholders(len(propertyIDs)) + ")"
		for _, id := range propertyIDs {
			args = append(args, id)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spans []report.ReservationSpan
	for rows.Next() {
		var span report.ReservationSpan
		var start, end, status string
		var adr, revenue sql.NullString
		if err := rows.Scan(&span.PropertyID, &span.PropertyName, &start, &end, &span.TotalNights, &adr, &revenue, &status); err != nil {
			return nil, err
		}
		if span.Start, err = parseDate(start); err != nil {
			return nil, err
		}
		if span.End, err = parseDate(end); err != nil {
			return nil, err
		}
		if span.ADR, err = parseNullDecimal(adr); err != nil {
			return nil, fmt.Errorf("bad adr for reservation on %q: %w", span.PropertyID, err)
		}
		if span.TotalRevenue, err = parseNullDecimal(revenue); err != nil {
			return nil, fmt.Errorf("bad revenue for reservation on %q: %w", span.PropertyID, err)
		}
		span.Status = report.ReservationStatus(status)
		spans = append(spans, span)
	}
	return spans, rows.Err()
}

// ListClasses returns the distinct non-blank class labels present in
// the ledger, trimmed and sorted. Computed per request; the engine
// keeps no ambient class cache.
func (s *Store) ListClasses(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT TRIM(group_key) FROM journal_entry_lines WHERE TRIM(group_key) != '' ORDER BY 1",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []string
	for rows.Next() {
		var class string
		if err := rows.Scan(&class); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

// =============================================================================
// SEED WRITES - Used by scenario loading and fixtures only
// =============================================================================

// PropertyRecord is the full stored shape of a property row.
type PropertyRecord struct {
	ID        string
	CompanyID string
	Name      string
	GroupKey  string
	UnitCount int
	IsActive  bool
}

// JournalLineRecord is the full stored shape of a ledger line row.
type JournalLineRecord struct {
	CompanyID   string
	GroupKey    string
	Account     string
	AccountType string
	Amount      decimal.Decimal
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Date        string // "YYYY-MM-DD"
}

// ReservationRecord is the full stored shape of a reservation row.
type ReservationRecord struct {
	ID           string
	PropertyID   string
	PropertyName string
	StartDate    string // "YYYY-MM-DD"
	EndDate      string // "YYYY-MM-DD"
	Nights       int
	ADR          decimal.NullDecimal
	Revenue      decimal.NullDecimal
	Status       report.ReservationStatus
}

// SaveProperty inserts or replaces a property row.
func (s *Store) SaveProperty(ctx context.Context, p PropertyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO properties (id, company_id, name, group_key, unit_count, is_active)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.CompanyID, p.Name, p.GroupKey, p.UnitCount, p.IsActive,
	)
	return err
}

// SaveJournalLine appends a ledger line row.
func (s *Store) SaveJournalLine(ctx context.Context, l JournalLineRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journal_entry_lines (company_id, group_key, account, account_type, amount, debit, credit, txn_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.CompanyID, l.GroupKey, l.Account, l.AccountType,
		l.Amount.String(), l.Debit.String(), l.Credit.String(), l.Date,
	)
	return err
}

// SaveReservation inserts or replaces a reservation row.
func (s *Store) SaveReservation(ctx context.Context, r ReservationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO reservations (id, property_id, property_name, start_date, end_date, nights, adr, revenue, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.PropertyID, r.PropertyName, r.StartDate, r.EndDate, r.Nights,
		nullDecimalString(r.ADR), nullDecimalString(r.Revenue), string(r.Status),
	)
	return err
}

// Reset deletes all rows from all tables. Dev/demo use only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"properties", "journal_entry_lines", "reservations"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, report.AnchorZone())
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return t, nil
}

func parseNullDecimal(v sql.NullString) (decimal.NullDecimal, error) {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func nullDecimalString(v decimal.NullDecimal) any {
	if !v.Valid {
		return nil
	}
	return v.Decimal.String()
}
