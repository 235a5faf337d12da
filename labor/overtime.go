/*
overtime.go - Overtime, night differential and DSR reflex

PURPOSE:
  Variable pay on top of the monthly salary. The hourly wage is the monthly
  salary divided by the contractual monthly hours (220 for a 44-hour week).

  Overtime:      hourly * (1 + rate) * hours, 50% on workdays, 100% on rest days
  Night work:    hourly * differential * paid hours, where a night hour is
                 52.5 minutes long, so clock hours convert at 60/52.5
  DSR reflex:    variable pay also earns paid weekly rest; the reflex is
                 variable / workdays * rest days

DSR MODES:
  DSRStandard uses a fixed ratio (25 workdays / 5 rest days unless given).
  DSRPrecise counts the actual month: Sundays and holidays are rest days,
  every other day (Saturdays included) is a workday.

  Both are the same primitive with different day counts; callers choose.

SEE ALSO:
  - generic/time.go: MonthDays and HolidayCalendar
*/
package labor

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/labor-engine/generic"
)

// DSRMode selects how workdays and rest days are counted.
type DSRMode string

const (
	DSRStandard DSRMode = "standard"
	DSRPrecise  DSRMode = "precise"
)

const (
	defaultStandardWorkdays = 25
	defaultStandardRestDays = 5
)

// =============================================================================
// HOURLY WAGE
// =============================================================================

// hourly returns salary / monthly hours as an unrounded decimal.
func hourly(salary generic.Money, monthlyHours int, book *generic.RuleBook) (decimal.Decimal, error) {
	hours := decimal.NewFromInt(int64(monthlyHours))
	if monthlyHours == 0 {
		var err error
		if hours, err = book.Rate(RateMonthlyHours); err != nil {
			return decimal.Zero, err
		}
	}
	if !hours.IsPositive() {
		return decimal.Zero, &generic.InputError{Field: "monthly_hours", Value: monthlyHours, Reason: "must be positive"}
	}
	return salary.Decimal().Div(hours), nil
}

func requireHours(name string, h decimal.Decimal) error {
	if h.IsNegative() {
		return &generic.InputError{Field: name, Value: h.String(), Reason: "must not be negative"}
	}
	return nil
}

// =============================================================================
// OVERTIME (HORAS EXTRAS)
// =============================================================================

type OvertimeInput struct {
	Salary       generic.Money
	MonthlyHours int // zero uses the rule book's monthly_hours

	Hours        decimal.Decimal // overtime on workdays
	RestDayHours decimal.Decimal // overtime on Sundays and holidays

	// Rate and RestDayRate override the rule book's premiums when set.
	Rate        *decimal.Decimal
	RestDayRate *decimal.Decimal
}

type OvertimeResult struct {
	HourlyWage    generic.Money `json:"hourly_wage"`
	Amount        generic.Money `json:"amount"`
	RestDayAmount generic.Money `json:"rest_day_amount"`
	Total         generic.Money `json:"total"`
}

// Overtime computes the overtime pay of one month.
func Overtime(in OvertimeInput, book *generic.RuleBook) (*OvertimeResult, error) {
	if err := bookOrErr(book); err != nil {
		return nil, err
	}
	if err := generic.RequireNonNegative("salary", in.Salary); err != nil {
		return nil, err
	}
	if err := requireHours("hours", in.Hours); err != nil {
		return nil, err
	}
	if err := requireHours("rest_day_hours", in.RestDayHours); err != nil {
		return nil, err
	}

	wage, err := hourly(in.Salary, in.MonthlyHours, book)
	if err != nil {
		return nil, err
	}
	rate, err := rateOr(in.Rate, RateOvertime, book)
	if err != nil {
		return nil, err
	}
	restRate, err := rateOr(in.RestDayRate, RateOvertimeRestDay, book)
	if err != nil {
		return nil, err
	}

	one := decimal.NewFromInt(1)
	res := &OvertimeResult{
		HourlyWage:    generic.NewMoneyFromDecimal(wage),
		Amount:        generic.NewMoneyFromDecimal(wage.Mul(one.Add(rate)).Mul(in.Hours)),
		RestDayAmount: generic.NewMoneyFromDecimal(wage.Mul(one.Add(restRate)).Mul(in.RestDayHours)),
	}
	res.Total = res.Amount + res.RestDayAmount
	return res, nil
}

func rateOr(override *decimal.Decimal, id string, book *generic.RuleBook) (decimal.Decimal, error) {
	if override != nil {
		if override.IsNegative() {
			return decimal.Zero, &generic.InputError{Field: id, Value: override.String(), Reason: "must not be negative"}
		}
		return *override, nil
	}
	return book.Rate(id)
}

// =============================================================================
// NIGHT DIFFERENTIAL (ADICIONAL NOTURNO)
// =============================================================================

type NightInput struct {
	Salary       generic.Money
	MonthlyHours int

	// ClockHours worked between 22:00 and 05:00.
	ClockHours decimal.Decimal

	// Reduced converts clock hours into 52.5-minute night hours.
	Reduced bool

	Rate *decimal.Decimal
}

type NightResult struct {
	HourlyWage   generic.Money   `json:"hourly_wage"`
	PaidHours    decimal.Decimal `json:"paid_hours"`
	Differential generic.Money   `json:"differential"`
}

// NightDifferential computes the night premium of one month.
func NightDifferential(in NightInput, book *generic.RuleBook) (*NightResult, error) {
	if err := bookOrErr(book); err != nil {
		return nil, err
	}
	if err := generic.RequireNonNegative("salary", in.Salary); err != nil {
		return nil, err
	}
	if err := requireHours("clock_hours", in.ClockHours); err != nil {
		return nil, err
	}

	wage, err := hourly(in.Salary, in.MonthlyHours, book)
	if err != nil {
		return nil, err
	}
	rate, err := rateOr(in.Rate, RateNightDifferential, book)
	if err != nil {
		return nil, err
	}

	paid := in.ClockHours
	if in.Reduced {
		minutes, err := book.Rate(RateNightHourMinutes)
		if err != nil {
			return nil, err
		}
		if !minutes.IsPositive() {
			return nil, &generic.TableError{Table: RateNightHourMinutes, Index: -1, Reason: "must be positive", Kind: generic.ErrInvalidRule}
		}
		paid = in.ClockHours.Mul(decimal.NewFromInt(60)).Div(minutes)
	}

	return &NightResult{
		HourlyWage:   generic.NewMoneyFromDecimal(wage),
		PaidHours:    paid.Round(4),
		Differential: generic.NewMoneyFromDecimal(wage.Mul(rate).Mul(paid)),
	}, nil
}

// =============================================================================
// DSR REFLEX (DESCANSO SEMANAL REMUNERADO)
// =============================================================================

type DSRInput struct {
	Variable generic.Money // overtime + night pay of the month
	Mode     DSRMode

	// DSRStandard: the fixed ratio. Zero values use 25/5.
	Workdays int
	RestDays int

	// DSRPrecise: the month to count. A nil Calendar counts Sundays only.
	Year     int
	Month    time.Month
	Calendar generic.HolidayCalendar
}

type DSRResult struct {
	Mode     DSRMode       `json:"mode"`
	Workdays int           `json:"workdays"`
	RestDays int           `json:"rest_days"`
	Reflex   generic.Money `json:"reflex"`
}

// DSRReflex computes the paid-rest reflex of variable pay.
func DSRReflex(in DSRInput) (*DSRResult, error) {
	if err := generic.RequireNonNegative("variable", in.Variable); err != nil {
		return nil, err
	}

	res := &DSRResult{Mode: in.Mode}
	switch in.Mode {
	case DSRStandard, "":
		res.Mode = DSRStandard
		res.Workdays, res.RestDays = in.Workdays, in.RestDays
		if res.Workdays == 0 && res.RestDays == 0 {
			res.Workdays, res.RestDays = defaultStandardWorkdays, defaultStandardRestDays
		}
	case DSRPrecise:
		if in.Year <= 0 || in.Month < time.January || in.Month > time.December {
			return nil, &generic.InputError{Field: "month", Value: in.Month, Reason: "precise mode needs a year and month"}
		}
		res.Workdays, res.RestDays = generic.MonthDays(in.Year, in.Month, in.Calendar)
	default:
		return nil, &generic.InputError{Field: "mode", Value: in.Mode, Reason: "must be standard or precise"}
	}

	if res.Workdays <= 0 || res.RestDays < 0 {
		return nil, &generic.InputError{Field: "workdays", Value: res.Workdays, Reason: "need positive workdays and non-negative rest days"}
	}
	res.Reflex = in.Variable.Ratio(res.RestDays, res.Workdays)
	return res, nil
}
