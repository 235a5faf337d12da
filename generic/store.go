/*
store.go - Persistence interface for versioned rule-set documents

PURPOSE:
  Legal tables are configuration, supplied from outside the engine. The
  RuleSetStore keeps the source documents (YAML or JSON) keyed by effective
  year so that an operator can publish next year's tables without a release.
  The engine itself never touches a store: the factory reads documents,
  validates them into RuleBooks, and hands the books to callers.

VERSIONING:
  Saving a document for a year that already exists replaces it and bumps
  Version. History of older versions is not kept.

CALCULATION LOG:
  Every calculation served by the API can be recorded with its request and
  response. The log is append-only: no updates, no deletes. A calculation is
  reproducible from its record because the rule book year is stored with it.

HOLIDAY CALENDARS:
  Named calendars (a company, a municipality) add dated or recurring
  holidays on top of the national ones for the precise DSR count.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - generic/store/memory.go: in-memory for tests

SEE ALSO:
  - factory/registry.go: loads documents from a store into RuleBooks
*/
package generic

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateRecord is returned when an append-only record already exists.
var ErrDuplicateRecord = errors.New("duplicate record")

// DocumentFormat is the encoding of a rule-set document.
type DocumentFormat string

const (
	FormatYAML DocumentFormat = "yaml"
	FormatJSON DocumentFormat = "json"
)

// RuleSetRecord is one stored rule-set document.
type RuleSetRecord struct {
	Year        int
	Description string
	Format      DocumentFormat
	Document    string
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RuleSetStore persists rule-set documents.
type RuleSetStore interface {
	// SaveRuleSet inserts or replaces the document for record.Year.
	SaveRuleSet(ctx context.Context, record RuleSetRecord) error

	// GetRuleSet returns nil, nil when no document exists for year.
	GetRuleSet(ctx context.Context, year int) (*RuleSetRecord, error)

	// ListRuleSets returns all documents ordered by year.
	ListRuleSets(ctx context.Context) ([]RuleSetRecord, error)

	// DeleteRuleSet removes the document for year.
	DeleteRuleSet(ctx context.Context, year int) error
}

// CalculationRecord is one served calculation.
type CalculationRecord struct {
	ID        string
	Kind      string
	Year      int
	Request   string // JSON
	Response  string // JSON
	CreatedAt time.Time
}

// CalculationLog is the append-only calculation audit trail.
type CalculationLog interface {
	// AppendCalculation fails with ErrDuplicateRecord if the ID exists.
	AppendCalculation(ctx context.Context, record CalculationRecord) error

	// GetCalculation returns nil, nil when the ID is unknown.
	GetCalculation(ctx context.Context, id string) (*CalculationRecord, error)

	// ListCalculations returns the newest records first. An empty kind
	// matches every kind; limit <= 0 means no limit.
	ListCalculations(ctx context.Context, kind string, limit int) ([]CalculationRecord, error)
}

// HolidayStore keeps named holiday calendars.
type HolidayStore interface {
	SaveHoliday(ctx context.Context, calendar string, holiday Holiday) error
	DeleteHoliday(ctx context.Context, calendar string, date TimePoint) error
	Holidays(ctx context.Context, calendar string) ([]Holiday, error)
}

// LoadCalendar returns the national holidays plus those stored under name.
func LoadCalendar(ctx context.Context, s HolidayStore, name string) (ListCalendar, error) {
	cal := NationalHolidays()
	if s == nil || name == "" {
		return cal, nil
	}
	extra, err := s.Holidays(ctx, name)
	if err != nil {
		return ListCalendar{}, err
	}
	cal.Holidays = append(cal.Holidays, extra...)
	return cal, nil
}
