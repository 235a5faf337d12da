/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements the persistence interfaces (RuleSetStore, CalculationLog,
  HolidayStore) using SQLite. The engine never reads the database; the
  factory registry and the API do.

INTERFACES IMPLEMENTED:
  generic.RuleSetStore:   Versioned rule-set documents by year
  generic.CalculationLog: Append-only audit trail of served calculations
  generic.HolidayStore:   Named holiday calendars for the precise DSR count

APPEND-ONLY ENFORCEMENT:
  The calculations table is never updated or deleted from. A calculation ID
  that already exists is rejected with generic.ErrDuplicateRecord.

KEY TABLES:
  rule_sets:    One document per effective year (versioned)
  calculations: Request/response pairs keyed by calculation ID
  holidays:     (calendar, date) -> name, recurring

INDEXES:
  - idx_calculations_kind_created: listing by kind, newest first

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, as SQLite serializes writers anyway.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers never block
  the single writer.

USAGE:
  store, err := sqlite.New("./data/labor.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  registry := factory.NewRegistry(factory.WithStore(store))

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation for testing
  - factory/registry.go: loads rule sets from a store
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

	"github.com/warp/labor-engine/generic"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ generic.RuleSetStore   = (*Store)(nil)
	_ generic.CalculationLog = (*Store)(nil)
	_ generic.HolidayStore   = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each connection to :memory: is a separate database.
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

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Rule sets (one document per year, versioned)
	CREATE TABLE IF NOT EXISTS rule_sets (
		year INTEGER PRIMARY KEY,
		description TEXT NOT NULL DEFAULT '',
		format TEXT NOT NULL,
		document TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Calculations (append-only audit trail)
	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		year INTEGER NOT NULL,
		request_json TEXT NOT NULL,
		response_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calculations_kind_created
		ON calculations(kind, created_at DESC);

	-- Holidays by named calendar
	CREATE TABLE IF NOT EXISTS holidays (
		calendar TEXT NOT NULL,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		recurring INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		PRIMARY KEY (calendar, date)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RULE SET STORE
// =============================================================================

// SaveRuleSet inserts or replaces the document for record.Year.
func (s *Store) SaveRuleSet(ctx context.Context, record generic.RuleSetRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO rule_sets (year, description, format, document, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(year) DO UPDATE SET
			description = excluded.description,
			format = excluded.format,
			document = excluded.document,
			version = rule_sets.version + 1,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx, query,
		record.Year, record.Description, string(record.Format), record.Document, now, now,
	)
	return err
}

// GetRuleSet retrieves the document for year.
func (s *Store) GetRuleSet(ctx context.Context, year int) (*generic.RuleSetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r generic.RuleSetRecord
	var format, createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT year, description, format, document, version, created_at, updated_at FROM rule_sets WHERE year = ?",
		year,
	).Scan(&r.Year, &r.Description, &format, &r.Document, &r.Version, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.Format = generic.DocumentFormat(format)
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &r, nil
}

// ListRuleSets returns all documents ordered by year.
func (s *Store) ListRuleSets(ctx context.Context) ([]generic.RuleSetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT year, description, format, document, version, created_at, updated_at FROM rule_sets ORDER BY year",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []generic.RuleSetRecord
	for rows.Next() {
		var r generic.RuleSetRecord
		var format, createdAt, updatedAt string
		if err := rows.Scan(&r.Year, &r.Description, &format, &r.Document, &r.Version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		r.Format = generic.DocumentFormat(format)
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		r.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteRuleSet removes the document for year.
func (s *Store) DeleteRuleSet(ctx context.Context, year int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM rule_sets WHERE year = ?", year)
	return err
}

// =============================================================================
// CALCULATION LOG
// =============================================================================

// AppendCalculation records a served calculation. Records are immutable.
func (s *Store) AppendCalculation(ctx context.Context, record generic.CalculationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calculations (id, kind, year, request_json, response_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.Kind, record.Year, record.Request, record.Response,
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("calculation %s: %w", record.ID, generic.ErrDuplicateRecord)
	}
	return err
}

// GetCalculation retrieves a calculation by ID.
func (s *Store) GetCalculation(ctx context.Context, id string) (*generic.CalculationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, year, request_json, response_json, created_at
		FROM calculations WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := scanCalculations(rows)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}

// ListCalculations returns the newest calculations first.
func (s *Store) ListCalculations(ctx context.Context, kind string, limit int) ([]generic.CalculationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, kind, year, request_json, response_json, created_at FROM calculations"
	var args []any
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCalculations(rows)
}

func scanCalculations(rows *sql.Rows) ([]generic.CalculationRecord, error) {
	var out []generic.CalculationRecord
	for rows.Next() {
		var c generic.CalculationRecord
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Kind, &c.Year, &c.Request, &c.Response, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

// =============================================================================
// HOLIDAY CALENDARS
// =============================================================================

// SaveHoliday saves a holiday; a second holiday on the same date replaces it.
func (s *Store) SaveHoliday(ctx context.Context, calendar string, h generic.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (calendar, date, name, recurring, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(calendar, date) DO UPDATE SET
			name = excluded.name,
			recurring = excluded.recurring
	`

	_, err := s.db.ExecContext(ctx, query,
		calendar,
		h.Date.String(),
		h.Name,
		h.Recurring,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// DeleteHoliday removes the holiday on date.
func (s *Store) DeleteHoliday(ctx context.Context, calendar string, date generic.TimePoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE calendar = ? AND date = ?", calendar, date.String())
	return err
}

// Holidays returns the holidays of a calendar ordered by date.
func (s *Store) Holidays(ctx context.Context, calendar string) ([]generic.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT date, name, recurring FROM holidays WHERE calendar = ? ORDER BY date",
		calendar,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []generic.Holiday
	for rows.Next() {
		var dateStr, name string
		var recurring bool
		if err := rows.Scan(&dateStr, &name, &recurring); err != nil {
			return nil, err
		}
		date, err := generic.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("holiday %q in %s: %w", dateStr, calendar, err)
		}
		holidays = append(holidays, generic.Holiday{Date: date, Name: name, Recurring: recurring})
	}
	return holidays, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"calculations", "holidays", "rule_sets"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key"))
}
