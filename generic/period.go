package generic

import "time"

// =============================================================================
// PERIOD - Employment span used for proportional entitlements
// =============================================================================

// Period is an inclusive date range, typically hire date to termination date.
//
// Proportional rules count months differently:
//   - CompletedYears: full anniversaries (proportional notice)
//   - CompletedMonths: full monthiversaries (unemployment insurance)
//   - ProportionalMonths: months with at least N worked days (13th salary, vacation)
type Period struct {
	Start TimePoint
	End   TimePoint
}

// NewPeriod rejects an end before the start.
func NewPeriod(start, end TimePoint) (Period, error) {
	if end.Before(start) {
		return Period{}, &InputError{Field: "end", Value: end.String(), Reason: "before start " + start.String()}
	}
	return Period{Start: start, End: end}, nil
}

// Contains returns true if the time point is within the period [Start, End]
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// CompletedMonths counts whole months from Start up to the day after End.
func (p Period) CompletedMonths() int {
	after := p.End.AddDays(1)
	months := (after.Year()-p.Start.Year())*12 + int(after.Month()-p.Start.Month())
	if after.Day() < p.Start.Day() && !isMonthEndRollover(p.Start, after) {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// isMonthEndRollover treats Jan 31 -> Feb 28/29 as a full month.
func isMonthEndRollover(start, after TimePoint) bool {
	return start.Day() > DaysInMonth(after.Year(), after.Month()) && after.Day() == DaysInMonth(after.Year(), after.Month())
}

// monthAnniversary is start moved n months ahead, clamped to the last day of
// the target month: Jan 31 + 1 is Feb 28, where a completed month ends.
func monthAnniversary(start TimePoint, n int) TimePoint {
	first := StartOfMonth(start.Year(), start.Month()).AddMonths(n)
	day := start.Day()
	if last := DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return NewTimePoint(first.Year(), first.Month(), day)
}

// CompletedYears counts whole anniversaries.
func (p Period) CompletedYears() int {
	return p.CompletedMonths() / 12
}

// ProportionalMonths counts the months of the period that contain at least
// minDays worked days. Fractions are counted per calendar month, starting at
// the anniversary day of Start (the "avos" rule: 15 or more days make a month).
func (p Period) ProportionalMonths(minDays int) int {
	full := p.CompletedMonths()
	tailStart := monthAnniversary(p.Start, full)
	if tailStart.After(p.End) {
		return full
	}
	if DaysBetween(tailStart, p.End)+1 >= minDays {
		return full + 1
	}
	return full
}

// ProportionalMonthsInYear counts the calendar months of year in which at
// least minDays fall inside the period. Used for the 13th salary.
func (p Period) ProportionalMonthsInYear(year int, minDays int) int {
	count := 0
	for m := time.January; m <= time.December; m++ {
		first := StartOfMonth(year, m)
		last := EndOfMonth(year, m)
		if first.Before(p.Start) {
			first = p.Start
		}
		if last.After(p.End) {
			last = p.End
		}
		if last.Before(first) {
			continue
		}
		if DaysBetween(first, last)+1 >= minDays {
			count++
		}
	}
	return count
}
