package labor

import (
	"github.com/warp/labor-engine/generic"
)

// =============================================================================
// MEI REVENUE LIMIT
// =============================================================================

// MEIStatus is the outcome of checking a year's revenue against the limit.
type MEIStatus string

const (
	MEIWithinLimit MEIStatus = "within_limit"
	// MEIExcessTolerated: revenue exceeds the limit by at most the tolerance
	// (20%); the excess is taxed but the registration stays.
	MEIExcessTolerated MEIStatus = "excess_tolerated"
	// MEIExcluded: revenue exceeds the tolerance; the registration is
	// excluded retroactively to January.
	MEIExcluded MEIStatus = "excluded"
)

// MEILimit is the revenue limit for a year with activeMonths months of
// activity: the monthly limit times the months, not a step table.
func MEILimit(activeMonths int, book *generic.RuleBook) (generic.Money, error) {
	if err := bookOrErr(book); err != nil {
		return 0, err
	}
	if activeMonths > 12 {
		return 0, &generic.InputError{Field: "active_months", Value: activeMonths, Reason: "must not exceed 12"}
	}
	monthly, err := book.Amount(AmountMEIMonthlyLimit)
	if err != nil {
		return 0, err
	}
	return generic.ProportionalLimit(monthly, activeMonths)
}

// ActiveMonths counts the months from the opening month through December,
// the opening month included. Openings before year count all twelve.
func ActiveMonths(opening generic.TimePoint, year int) int {
	switch {
	case opening.Year() < year:
		return 12
	case opening.Year() > year:
		return 0
	default:
		return 12 - int(opening.Month()) + 1
	}
}

type MEIResult struct {
	ActiveMonths int           `json:"active_months"`
	Limit        generic.Money `json:"limit"`
	Revenue      generic.Money `json:"revenue"`
	Excess       generic.Money `json:"excess"`
	Status       MEIStatus     `json:"status"`
}

// CheckMEIRevenue classifies a year's revenue against the proportional limit.
func CheckMEIRevenue(revenue generic.Money, activeMonths int, book *generic.RuleBook) (*MEIResult, error) {
	if err := generic.RequireNonNegative("revenue", revenue); err != nil {
		return nil, err
	}
	limit, err := MEILimit(activeMonths, book)
	if err != nil {
		return nil, err
	}
	tolerance, err := book.Rate(RateMEIExcessTolerance)
	if err != nil {
		return nil, err
	}

	res := &MEIResult{
		ActiveMonths: activeMonths,
		Limit:        limit,
		Revenue:      revenue,
		Excess:       (revenue - limit).ClampZero(),
		Status:       MEIWithinLimit,
	}
	switch {
	case res.Excess == 0:
	case res.Excess <= limit.MulRate(tolerance):
		res.Status = MEIExcessTolerated
	default:
		res.Status = MEIExcluded
	}
	return res, nil
}
