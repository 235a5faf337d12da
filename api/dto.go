/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the calculators' Go inputs from the external API contract: field names are
  snake_case, dates are "YYYY-MM-DD" strings, money is a decimal number or
  string ("1234.56") and rates are decimal strings ("0.075").

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

RULE BOOK SELECTION:
  Every calculation request that needs legal tables embeds BookRef. A zero
  year selects the server's default year, or the latest loaded year when no
  default is configured. Rescission defaults to the termination year.

TYPES:
  Envelope:
    CalculationResponse, CalculationMetadata, ErrorResponse

  Generic engine:
    TaxRequest, EntitlementRequest, BenefitRequest, ProjectionRequest

  Labor calculators:
    NetSalaryRequest, IncomeTaxRequest, VacationRequest,
    ProportionalVacationRequest, ThirteenthRequest, UnemploymentRequest,
    OvertimeRequest, NightRequest, DSRRequest, RescissionRequest,
    FGTSRequest, BirthdayWithdrawalRequest, MEIRequest, CLTvsPJRequest

  Administration:
    RuleBookDTO, CalculationDTO, HolidayDTO

VALIDATION:
  DTOs only convert shapes. Range checks live in the calculators, which
  return generic.InputError for handlers to map to 400.

SEE ALSO:
  - handlers.go: Uses these types
  - labor/: calculator inputs these requests convert into
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/labor-engine/generic"
	"github.com/warp/labor-engine/labor"
)

// =============================================================================
// ENVELOPE
// =============================================================================

// CalculationMetadata identifies one served calculation.
type CalculationMetadata struct {
	CalculationID string `json:"calculation_id"`
	Kind          string `json:"kind"`
	Year          int    `json:"year,omitempty"`
	StartedAt     string `json:"started_at"`
	CompletedAt   string `json:"completed_at"`
	DurationMs    int64  `json:"duration_ms"`
}

// CalculationResponse wraps every calculation result.
type CalculationResponse struct {
	Metadata CalculationMetadata `json:"metadata"`
	Result   any                 `json:"result"`
}

// ErrorResponse is returned on failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// BookRef selects the rule book by effective year.
type BookRef struct {
	Year int `json:"year,omitempty"`
}

func (b BookRef) bookYear() int { return b.Year }

// yearer is implemented by requests that need a rule book.
type yearer interface {
	bookYear() int
}

// =============================================================================
// GENERIC ENGINE
// =============================================================================

type TaxRequest struct {
	BookRef
	Table string        `json:"table"`
	Base  generic.Money `json:"base"`
}

type TaxDTO struct {
	Table         string          `json:"table"`
	Base          generic.Money   `json:"base"`
	Tax           generic.Money   `json:"tax"`
	Bracket       int             `json:"bracket"`
	MarginalRate  decimal.Decimal `json:"marginal_rate"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
}

// EntitlementRequest looks up a step rule. A positive Ordinal selects a
// tiered rule instead.
type EntitlementRequest struct {
	BookRef
	Table   string `json:"table"`
	Count   int    `json:"count"`
	Ordinal int    `json:"ordinal,omitempty"`
}

type EntitlementDTO struct {
	Table   string `json:"table"`
	Count   int    `json:"count"`
	Ordinal int    `json:"ordinal,omitempty"`
	Value   int    `json:"value"`
}

type BenefitRequest struct {
	BookRef
	Table string        `json:"table"`
	Base  generic.Money `json:"base"`
}

type BenefitDTO struct {
	Table   string        `json:"table"`
	Base    generic.Money `json:"base"`
	Segment int           `json:"segment"`
	Value   generic.Money `json:"value"`
}

// ProjectionRequest runs the multi-regime projector with declarative flows.
type ProjectionRequest struct {
	BookRef
	Steps       int         `json:"steps"`
	Unit        string      `json:"unit,omitempty"` // "month" (default) or "year"
	Start       string      `json:"start,omitempty"`
	TerminateAt *int        `json:"terminate_at,omitempty"`
	Regimes     []RegimeDTO `json:"regimes"`
}

// RegimeDTO declares one regime. Deposit is fixed per step, plus Yield on
// the balance carried in.
type RegimeDTO struct {
	ID         string              `json:"id"`
	Initial    generic.Money       `json:"initial"`
	Deposit    generic.Money       `json:"deposit"`
	Yield      decimal.Decimal     `json:"yield"`
	Withdrawal *WithdrawalDTO      `json:"withdrawal,omitempty"`
	Cash       *TerminationCashDTO `json:"termination_cash,omitempty"`
}

// WithdrawalDTO draws every Every steps from step Offset. Exactly one of
// Fraction (of the balance) and Table (a bracket table evaluated on the
// balance) is set.
type WithdrawalDTO struct {
	Every    int              `json:"every"`
	Offset   int              `json:"offset"`
	Fraction *decimal.Decimal `json:"fraction,omitempty"`
	Table    string           `json:"table,omitempty"`
}

// TerminationCashDTO selects what a regime pays out on termination.
// "balance" (default) pays the running balance, "balance_plus_fine" adds
// FineRate on total deposits, "fine_only" pays only the fine.
type TerminationCashDTO struct {
	Mode     string          `json:"mode"`
	FineRate decimal.Decimal `json:"fine_rate"`
}

type WordsRequest struct {
	Amount generic.Money `json:"amount"`
}

type WordsDTO struct {
	Amount generic.Money `json:"amount"`
	Words  string        `json:"words"`
}

// =============================================================================
// PAYROLL
// =============================================================================

type NetSalaryRequest struct {
	BookRef
	Gross          generic.Money `json:"gross"`
	Dependents     int           `json:"dependents"`
	Alimony        generic.Money `json:"alimony"`
	OtherDiscounts generic.Money `json:"other_discounts"`
	UseSimplified  bool          `json:"use_simplified"`
}

func (r NetSalaryRequest) input() labor.PayslipInput {
	return labor.PayslipInput{
		Gross:          r.Gross,
		Dependents:     r.Dependents,
		Alimony:        r.Alimony,
		OtherDiscounts: r.OtherDiscounts,
		UseSimplified:  r.UseSimplified,
	}
}

// IncomeTaxRequest computes IRRF alone. A missing social_security is
// computed from the INSS table.
type IncomeTaxRequest struct {
	BookRef
	Gross          generic.Money  `json:"gross"`
	SocialSecurity *generic.Money `json:"social_security,omitempty"`
	Dependents     int            `json:"dependents"`
	Alimony        generic.Money  `json:"alimony"`
	UseSimplified  bool           `json:"use_simplified"`
}

type SocialSecurityRequest struct {
	BookRef
	Gross generic.Money `json:"gross"`
}

type SocialSecurityDTO struct {
	Gross          generic.Money `json:"gross"`
	SocialSecurity generic.Money `json:"social_security"`
}

// =============================================================================
// VACATION AND 13TH
// =============================================================================

type VacationRequest struct {
	BookRef
	Salary          generic.Money `json:"salary"`
	AverageVariable generic.Money `json:"average_variable"`
	Absences        int           `json:"absences"`
	DaysTaken       int           `json:"days_taken"`
	SellDays        int           `json:"sell_days"`
	Dependents      int           `json:"dependents"`
}

func (r VacationRequest) input() labor.VacationInput {
	return labor.VacationInput{
		Salary:          r.Salary,
		AverageVariable: r.AverageVariable,
		Absences:        r.Absences,
		DaysTaken:       r.DaysTaken,
		SellDays:        r.SellDays,
		Dependents:      r.Dependents,
	}
}

type ProportionalVacationRequest struct {
	BookRef
	Salary   generic.Money `json:"salary"`
	Months   int           `json:"months"`
	Absences int           `json:"absences"`
}

type ProportionalVacationDTO struct {
	Months int           `json:"months"`
	Amount generic.Money `json:"amount"`
}

// ThirteenthRequest counts months in the rule book's year.
type ThirteenthRequest struct {
	BookRef
	Salary          generic.Money `json:"salary"`
	AverageVariable generic.Money `json:"average_variable"`
	Admission       string        `json:"admission,omitempty"`
	Termination     string        `json:"termination,omitempty"`
	Months          int           `json:"months,omitempty"`
	Dependents      int           `json:"dependents"`
}

func (r ThirteenthRequest) input(year int) (labor.ThirteenthInput, error) {
	admission, err := parseDate("admission", r.Admission)
	if err != nil {
		return labor.ThirteenthInput{}, err
	}
	termination, err := parseDate("termination", r.Termination)
	if err != nil {
		return labor.ThirteenthInput{}, err
	}
	return labor.ThirteenthInput{
		Salary:          r.Salary,
		AverageVariable: r.AverageVariable,
		Year:            year,
		Admission:       admission,
		Termination:     termination,
		Months:          r.Months,
		Dependents:      r.Dependents,
	}, nil
}

// =============================================================================
// UNEMPLOYMENT
// =============================================================================

// UnemploymentRequest takes either months_worked or the admission and
// dismissal dates.
type UnemploymentRequest struct {
	BookRef
	LastSalaries   []generic.Money `json:"last_salaries"`
	MonthsWorked   int             `json:"months_worked"`
	Admission      string          `json:"admission,omitempty"`
	Dismissal      string          `json:"dismissal,omitempty"`
	RequestOrdinal int             `json:"request_ordinal"`
}

func (r UnemploymentRequest) input() (labor.UnemploymentInput, error) {
	in := labor.UnemploymentInput{
		LastSalaries:   r.LastSalaries,
		MonthsWorked:   r.MonthsWorked,
		RequestOrdinal: r.RequestOrdinal,
	}
	if r.Admission == "" && r.Dismissal == "" {
		return in, nil
	}
	admission, err := parseRequiredDate("admission", r.Admission)
	if err != nil {
		return in, err
	}
	dismissal, err := parseRequiredDate("dismissal", r.Dismissal)
	if err != nil {
		return in, err
	}
	months, err := labor.MonthsWorked(admission, dismissal)
	if err != nil {
		return in, err
	}
	in.MonthsWorked = months
	return in, nil
}

// =============================================================================
// OVERTIME, NIGHT, DSR
// =============================================================================

type OvertimeRequest struct {
	BookRef
	Salary       generic.Money    `json:"salary"`
	MonthlyHours int              `json:"monthly_hours,omitempty"`
	Hours        decimal.Decimal  `json:"hours"`
	RestDayHours decimal.Decimal  `json:"rest_day_hours"`
	Rate         *decimal.Decimal `json:"rate,omitempty"`
	RestDayRate  *decimal.Decimal `json:"rest_day_rate,omitempty"`
}

func (r OvertimeRequest) input() labor.OvertimeInput {
	return labor.OvertimeInput{
		Salary:       r.Salary,
		MonthlyHours: r.MonthlyHours,
		Hours:        r.Hours,
		RestDayHours: r.RestDayHours,
		Rate:         r.Rate,
		RestDayRate:  r.RestDayRate,
	}
}

type NightRequest struct {
	BookRef
	Salary       generic.Money    `json:"salary"`
	MonthlyHours int              `json:"monthly_hours,omitempty"`
	ClockHours   decimal.Decimal  `json:"clock_hours"`
	Reduced      bool             `json:"reduced"`
	Rate         *decimal.Decimal `json:"rate,omitempty"`
}

func (r NightRequest) input() labor.NightInput {
	return labor.NightInput{
		Salary:       r.Salary,
		MonthlyHours: r.MonthlyHours,
		ClockHours:   r.ClockHours,
		Reduced:      r.Reduced,
		Rate:         r.Rate,
	}
}

// DSRRequest needs no rule book. In precise mode, Calendar names a stored
// holiday calendar added to the national holidays; "sundays" counts
// Sundays only.
type DSRRequest struct {
	Variable generic.Money `json:"variable"`
	Mode     string        `json:"mode"`
	Workdays int           `json:"workdays,omitempty"`
	RestDays int           `json:"rest_days,omitempty"`
	Year     int           `json:"year,omitempty"`
	Month    int           `json:"month,omitempty"`
	Calendar string        `json:"calendar,omitempty"`
}

// CalendarSundaysOnly disables holidays in the precise DSR count.
const CalendarSundaysOnly = "sundays"

// =============================================================================
// RESCISSION
// =============================================================================

type RescissionRequest struct {
	BookRef
	Kind                   string        `json:"kind"`
	Salary                 generic.Money `json:"salary"`
	Admission              string        `json:"admission"`
	Termination            string        `json:"termination"`
	NoticeWorked           bool          `json:"notice_worked"`
	NoticeNotServed        bool          `json:"notice_not_served"`
	ExpiredVacationPeriods int           `json:"expired_vacation_periods"`
	Absences               int           `json:"absences"`
	FGTSBalance            generic.Money `json:"fgts_balance"`
	Dependents             int           `json:"dependents"`
}

// bookYear defaults to the termination year.
func (r RescissionRequest) bookYear() int {
	if r.Year != 0 {
		return r.Year
	}
	if t, err := generic.ParseDate(r.Termination); err == nil {
		return t.Year()
	}
	return 0
}

func (r RescissionRequest) input() (labor.RescissionInput, error) {
	admission, err := parseRequiredDate("admission", r.Admission)
	if err != nil {
		return labor.RescissionInput{}, err
	}
	termination, err := parseRequiredDate("termination", r.Termination)
	if err != nil {
		return labor.RescissionInput{}, err
	}
	return labor.RescissionInput{
		Kind:                   labor.TerminationKind(r.Kind),
		Salary:                 r.Salary,
		Admission:              admission,
		Termination:            termination,
		NoticeWorked:           r.NoticeWorked,
		NoticeNotServed:        r.NoticeNotServed,
		ExpiredVacationPeriods: r.ExpiredVacationPeriods,
		Absences:               r.Absences,
		FGTSBalance:            r.FGTSBalance,
		Dependents:             r.Dependents,
	}, nil
}

// RescissionDTO adds the projected end date the domain result keeps as a
// TimePoint.
type RescissionDTO struct {
	*labor.RescissionResult
	ProjectedEnd string `json:"projected_end"`
}

// =============================================================================
// FGTS
// =============================================================================

type FGTSRequest struct {
	BookRef
	Salary         generic.Money    `json:"salary"`
	InitialBalance generic.Money    `json:"initial_balance"`
	Months         int              `json:"months"`
	Start          string           `json:"start,omitempty"`
	BirthdayMonth  int              `json:"birthday_month"`
	AnnualYield    *decimal.Decimal `json:"annual_yield,omitempty"`
	TerminateAt    *int             `json:"terminate_at,omitempty"`
}

func (r FGTSRequest) input() (labor.FGTSInput, error) {
	start, err := parseDate("start", r.Start)
	if err != nil {
		return labor.FGTSInput{}, err
	}
	return labor.FGTSInput{
		Salary:         r.Salary,
		InitialBalance: r.InitialBalance,
		Months:         r.Months,
		Start:          start,
		BirthdayMonth:  r.BirthdayMonth,
		AnnualYield:    r.AnnualYield,
		TerminateAt:    r.TerminateAt,
	}, nil
}

type BirthdayWithdrawalRequest struct {
	BookRef
	Balance generic.Money `json:"balance"`
}

type BirthdayWithdrawalDTO struct {
	Balance    generic.Money `json:"balance"`
	Withdrawal generic.Money `json:"withdrawal"`
}

// =============================================================================
// MEI AND CLT vs PJ
// =============================================================================

// MEIRequest checks a year's revenue. Opening, when set, derives the active
// months in the rule book's year.
type MEIRequest struct {
	BookRef
	Revenue      generic.Money `json:"revenue"`
	ActiveMonths int           `json:"active_months,omitempty"`
	Opening      string        `json:"opening,omitempty"`
}

type CLTvsPJRequest struct {
	BookRef
	Salary          generic.Money   `json:"salary"`
	MonthlyBenefits generic.Money   `json:"monthly_benefits"`
	Dependents      int             `json:"dependents"`
	Revenue         generic.Money   `json:"revenue"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	MonthlyCosts    generic.Money   `json:"monthly_costs"`
	ProLabore       generic.Money   `json:"pro_labore"`
}

func (r CLTvsPJRequest) input() labor.CLTvsPJInput {
	return labor.CLTvsPJInput{
		Salary:          r.Salary,
		MonthlyBenefits: r.MonthlyBenefits,
		Dependents:      r.Dependents,
		Revenue:         r.Revenue,
		TaxRate:         r.TaxRate,
		MonthlyCosts:    r.MonthlyCosts,
		ProLabore:       r.ProLabore,
	}
}

// =============================================================================
// ADMINISTRATION
// =============================================================================

// RuleBookDTO describes a loaded rule book.
type RuleBookDTO struct {
	Year        int                 `json:"year"`
	Description string              `json:"description"`
	Tables      map[string][]string `json:"tables"`
}

// PublishedDTO is returned after a rule book document is stored.
type PublishedDTO struct {
	Year      int       `json:"year"`
	Version   int       `json:"version"`
	Format    string    `json:"format"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CalculationDTO is one entry of the calculation log. Request and
// Response hold the raw JSON documents.
type CalculationDTO struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Year      int       `json:"year,omitempty"`
	Request   rawJSON   `json:"request"`
	Response  rawJSON   `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

type HolidayDTO struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

// rawJSON embeds a stored JSON document verbatim.
type rawJSON string

func (r rawJSON) MarshalJSON() ([]byte, error) {
	if r == "" {
		return []byte("null"), nil
	}
	return []byte(r), nil
}

func (r *rawJSON) UnmarshalJSON(b []byte) error {
	*r = rawJSON(b)
	return nil
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// parseDate returns the zero TimePoint for an empty string.
func parseDate(field, s string) (generic.TimePoint, error) {
	if s == "" {
		return generic.TimePoint{}, nil
	}
	return parseRequiredDate(field, s)
}

func parseRequiredDate(field, s string) (generic.TimePoint, error) {
	tp, err := generic.ParseDate(s)
	if err != nil {
		return generic.TimePoint{}, &generic.InputError{Field: field, Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return tp, nil
}

func toRuleBookDTO(b *generic.RuleBook) RuleBookDTO {
	return RuleBookDTO{Year: b.Year, Description: b.Description, Tables: b.TableIDs()}
}

func toCalculationDTO(r generic.CalculationRecord) CalculationDTO {
	return CalculationDTO{
		ID:        r.ID,
		Kind:      r.Kind,
		Year:      r.Year,
		Request:   rawJSON(r.Request),
		Response:  rawJSON(r.Response),
		CreatedAt: r.CreatedAt,
	}
}

func toHolidayDTO(h generic.Holiday) HolidayDTO {
	return HolidayDTO{Date: h.Date.String(), Name: h.Name, Recurring: h.Recurring}
}
