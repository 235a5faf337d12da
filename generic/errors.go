/*
errors.go - Centralized error types for the generic engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Configuration errors - malformed tables, rules or tiers. Reported when
     the table is built, never in the middle of a calculation.
  2. Input errors - negative salaries, negative counts, empty horizons.
  3. Lookup errors - unknown table id or effective year in a RuleBook.

Domain edge cases (a count above every threshold, a base above every
bracket) are NOT errors. They have defined values.

USAGE:
  if errors.Is(err, generic.ErrInvalidInput) {
      // reject the request, the caller sent bad numbers
  }

SEE ALSO:
  - bracket.go, entitlement.go, tier.go: constructors return TableError
  - rulebook.go: returns ErrUnknownTable / ErrUnknownYear
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidTable is returned when a bracket table has gaps, overlaps or
	// non-monotonic bounds.
	ErrInvalidTable = errors.New("invalid bracket table")

	// ErrInvalidRule is returned when an entitlement rule does not partition
	// the non-negative integers.
	ErrInvalidRule = errors.New("invalid entitlement rule")

	// ErrInvalidTier is returned when a benefit tier formula has inconsistent pivots.
	ErrInvalidTier = errors.New("invalid benefit tier")

	// ErrInvalidInput is returned for negative amounts, negative counts or empty horizons.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownTable is returned when a RuleBook has no table with the requested id.
	ErrUnknownTable = errors.New("unknown table")

	// ErrUnknownYear is returned when no RuleBook exists for an effective year.
	ErrUnknownYear = errors.New("no rule book for year")

	// ErrProjectionTerminated is returned when stepping a projection that already ended.
	ErrProjectionTerminated = errors.New("projection already terminated")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// TableError describes which row of a table failed validation.
type TableError struct {
	Table  string
	Index  int
	Reason string
	Kind   error // ErrInvalidTable, ErrInvalidRule or ErrInvalidTier
}

func (e *TableError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v %q: %s", e.Kind, e.Table, e.Reason)
	}
	return fmt.Sprintf("%v %q: row %d: %s", e.Kind, e.Table, e.Index, e.Reason)
}

func (e *TableError) Unwrap() error {
	return e.Kind
}

// InputError describes a rejected caller input.
type InputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// LookupError names the missing table or year.
type LookupError struct {
	Year int
	ID   string
	Kind error // ErrUnknownTable or ErrUnknownYear
}

func (e *LookupError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%v %d", e.Kind, e.Year)
	}
	return fmt.Sprintf("%v %q (year %d)", e.Kind, e.ID, e.Year)
}

func (e *LookupError) Unwrap() error {
	return e.Kind
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidTable) ||
		errors.Is(err, ErrInvalidRule) ||
		errors.Is(err, ErrInvalidTier)
}

// IsNotFound returns true if the error indicates a missing table or year.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownTable) ||
		errors.Is(err, ErrUnknownYear)
}

// RequireNonNegative validates a money input.
func RequireNonNegative(field string, m Money) error {
	if m.IsNegative() {
		return &InputError{Field: field, Value: m.String(), Reason: "must not be negative"}
	}
	return nil
}

// RequireCount validates an integer count input.
func RequireCount(field string, n int) error {
	if n < 0 {
		return &InputError{Field: field, Value: n, Reason: "must not be negative"}
	}
	return nil
}
