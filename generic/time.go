package generic

import (
	"fmt"
	"time"
)

// =============================================================================
// TIME POINT - Calendar dates (day granularity, UTC)
// =============================================================================

// TimePoint is a calendar date. The engine never reads the wall clock;
// callers pass dates in.
type TimePoint struct {
	Time time.Time
}

func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses "2006-01-02".
func ParseDate(s string) (TimePoint, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return TimePoint{}, &InputError{Field: "date", Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return TimePoint{Time: t}, nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.normalize().Before(other.normalize()) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.normalize().Equal(other.normalize()) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.normalize().After(other.normalize()) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return tp.Before(other) || tp.Equal(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return tp.After(other) || tp.Equal(other) }

func (tp TimePoint) normalize() time.Time {
	return time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint   { return TimePoint{Time: tp.normalize().AddDate(0, 0, n)} }
func (tp TimePoint) AddMonths(n int) TimePoint { return TimePoint{Time: tp.normalize().AddDate(0, n, 0)} }
func (tp TimePoint) AddYears(n int) TimePoint  { return TimePoint{Time: tp.normalize().AddDate(n, 0, 0)} }

// Properties
func (tp TimePoint) Year() int             { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month     { return tp.Time.Month() }
func (tp TimePoint) Day() int              { return tp.Time.Day() }
func (tp TimePoint) Weekday() time.Weekday { return tp.Time.Weekday() }
func (tp TimePoint) IsSunday() bool        { return tp.Weekday() == time.Sunday }
func (tp TimePoint) IsZero() bool          { return tp.Time.IsZero() }

func (tp TimePoint) String() string { return tp.Time.Format("2006-01-02") }

// MonthLabel renders "2006-01".
func (tp TimePoint) MonthLabel() string { return tp.Time.Format("2006-01") }

// =============================================================================
// HOLIDAY CALENDAR - Rest days for DSR
// =============================================================================

// Holiday is a day off that counts as paid rest.
type Holiday struct {
	Date      TimePoint
	Name      string
	Recurring bool // same month/day every year
}

// HolidayCalendar provides holiday lookup.
type HolidayCalendar interface {
	IsHoliday(date TimePoint) bool
	GetHolidays(year int) []Holiday
}

// NoHolidays is a calendar without holidays.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(TimePoint) bool  { return false }
func (NoHolidays) GetHolidays(int) []Holiday { return nil }

// ListCalendar is a fixed list of holidays, recurring or dated.
type ListCalendar struct {
	Holidays []Holiday
}

func (c ListCalendar) IsHoliday(date TimePoint) bool {
	for _, h := range c.Holidays {
		if h.Recurring {
			if h.Date.Month() == date.Month() && h.Date.Day() == date.Day() {
				return true
			}
			continue
		}
		if h.Date.Equal(date) {
			return true
		}
	}
	return false
}

func (c ListCalendar) GetHolidays(year int) []Holiday {
	var out []Holiday
	for _, h := range c.Holidays {
		switch {
		case h.Recurring:
			out = append(out, Holiday{Date: NewTimePoint(year, h.Date.Month(), h.Date.Day()), Name: h.Name, Recurring: true})
		case h.Date.Year() == year:
			out = append(out, h)
		}
	}
	return out
}

// NationalHolidays returns the fixed-date Brazilian national holidays.
// Movable feasts (Carnival, Good Friday, Corpus Christi) are dated and must be
// added by the caller for the year in question.
func NationalHolidays() ListCalendar {
	fixed := func(m time.Month, d int, name string) Holiday {
		return Holiday{Date: NewTimePoint(2000, m, d), Name: name, Recurring: true}
	}
	return ListCalendar{Holidays: []Holiday{
		fixed(time.January, 1, "Confraternização Universal"),
		fixed(time.April, 21, "Tiradentes"),
		fixed(time.May, 1, "Dia do Trabalho"),
		fixed(time.September, 7, "Independência do Brasil"),
		fixed(time.October, 12, "Nossa Senhora Aparecida"),
		fixed(time.November, 2, "Finados"),
		fixed(time.November, 15, "Proclamação da República"),
		fixed(time.November, 20, "Dia Nacional de Zumbi e da Consciência Negra"),
		fixed(time.December, 25, "Natal"),
	}}
}

// MonthDays splits a month into working days and paid rest days
// (Sundays plus holidays). Saturdays are working days.
func MonthDays(year int, month time.Month, calendar HolidayCalendar) (workdays, restDays int) {
	if calendar == nil {
		calendar = NoHolidays{}
	}
	for d := StartOfMonth(year, month); d.Month() == month; d = d.AddDays(1) {
		if d.IsSunday() || calendar.IsHoliday(d) {
			restDays++
		} else {
			workdays++
		}
	}
	return workdays, restDays
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

func DaysBetween(from, to TimePoint) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}
func StartOfYear(year int) TimePoint                     { return NewTimePoint(year, time.January, 1) }
func EndOfYear(year int) TimePoint                       { return NewTimePoint(year, time.December, 31) }
func StartOfMonth(year int, month time.Month) TimePoint { return NewTimePoint(year, month, 1) }
func EndOfMonth(year int, month time.Month) TimePoint {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return TimePoint{Time: t}
}

// DaysInMonth returns 28-31.
func DaysInMonth(year int, month time.Month) int { return EndOfMonth(year, month).Day() }

// stepLabel names projection step i counted from start.
func stepLabel(start TimePoint, unit StepUnit, i int) string {
	if start.IsZero() {
		return fmt.Sprintf("%s %d", unit, i+1)
	}
	if unit == StepYear {
		return fmt.Sprintf("%d", start.AddYears(i).Year())
	}
	return start.AddMonths(i).MonthLabel()
}
