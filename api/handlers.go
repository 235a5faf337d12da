/*
handlers.go - HTTP API handlers for the labor calculation engine

PURPOSE:
  Exposes the calculators and the generic engine via REST API. Handles HTTP
  request/response, JSON serialization, rule book selection and the
  calculation log, and delegates every figure to the labor and generic
  packages.

ENDPOINTS:
  Calculations (POST, JSON body, CalculationResponse envelope):
    /api/calc/net-salary             Payslip: INSS, IRRF, net, FGTS deposit
    /api/calc/social-security        INSS only
    /api/calc/income-tax             IRRF only
    /api/calc/vacation               Vacation pay with abono
    /api/calc/vacation/proportional  Proportional vacation plus a third
    /api/calc/thirteenth             13th salary installments
    /api/calc/unemployment           Seguro-desemprego installments
    /api/calc/overtime               Overtime premiums
    /api/calc/night                  Night differential
    /api/calc/dsr                    Paid-rest reflex (standard or precise)
    /api/calc/rescission             Termination settlement
    /api/calc/fgts                   Saque-rescisão vs saque-aniversário
    /api/calc/fgts/birthday          One birthday withdrawal
    /api/calc/mei                    MEI revenue limit check
    /api/calc/clt-vs-pj              Annual CLT vs PJ comparison
    /api/calc/words                  Amount in Portuguese words

  Generic engine:
    /api/engine/tax                  Progressive bracket table
    /api/engine/entitlement          Step or tiered entitlement rule
    /api/engine/benefit              Benefit tier
    /api/engine/projection           Multi-regime projection

  Rule books:
    GET    /api/rulebooks            List loaded years
    GET    /api/rulebooks/{year}     Describe one year's tables
    PUT    /api/rulebooks/{year}     Publish a YAML or JSON document
    DELETE /api/rulebooks/{year}     Remove a year

  Calculation log:
    GET    /api/calculations         Newest first (?kind=&limit=)
    GET    /api/calculations/{id}    One record

  Holiday calendars:
    GET    /api/calendars/{name}/holidays
    POST   /api/calendars/{name}/holidays
    DELETE /api/calendars/{name}/holidays/{date}

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Registry: rule books by year
  - Calculations: optional append-only calculation log
  - Holidays: optional named holiday calendars
  - Metrics: optional Prometheus collectors

REQUEST FLOW:
  1. Decode the JSON body (unknown fields are rejected)
  2. Resolve the rule book (request year, default year, latest)
  3. Call the calculator
  4. Wrap the result with calculation metadata
  5. Record it in the calculation log
  6. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, malformed documents
  - 404: Unknown rule book year, table or record
  - 409: Duplicate record
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - metrics.go: Prometheus collectors
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/warp/labor-engine/factory"
	"github.com/warp/labor-engine/generic"
	"github.com/warp/labor-engine/labor"
	"github.com/warp/labor-engine/logging"
	"github.com/warp/labor-engine/words"
)

const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Registry     *factory.Registry
	Calculations generic.CalculationLog
	Holidays     generic.HolidayStore
	Metrics      *Metrics
	Logger       *slog.Logger

	// DefaultYear selects the rule book when a request names none. Zero
	// means the latest loaded year.
	DefaultYear int

	now func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

func WithCalculationLog(l generic.CalculationLog) Option {
	return func(h *Handler) { h.Calculations = l }
}

func WithHolidayStore(s generic.HolidayStore) Option {
	return func(h *Handler) { h.Holidays = s }
}

func WithMetrics(m *Metrics) Option {
	return func(h *Handler) { h.Metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) { h.Logger = l }
}

func WithDefaultYear(year int) Option {
	return func(h *Handler) { h.DefaultYear = year }
}

// NewHandler creates a new handler over the given registry.
func NewHandler(registry *factory.Registry, opts ...Option) *Handler {
	h := &Handler{
		Registry: registry,
		Logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.Metrics.setRuleBooks(len(registry.Years()))
	return h
}

func (h *Handler) ruleBook(year int) (*generic.RuleBook, error) {
	if year == 0 {
		year = h.DefaultYear
	}
	return h.Registry.Resolve(year)
}

// =============================================================================
// CALCULATION PIPELINE
// =============================================================================

// serve adapts a calculation to an http.HandlerFunc. Requests that embed
// BookRef receive the resolved rule book; others receive nil.
func serve[Req any](h *Handler, kind string, calc func(ctx context.Context, req Req, book *generic.RuleBook) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := h.now()

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			h.fail(w, kind, started, http.StatusBadRequest, "Failed to read request body", err)
			return
		}

		var req Req
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			h.fail(w, kind, started, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		var book *generic.RuleBook
		if y, ok := any(req).(yearer); ok {
			book, err = h.ruleBook(y.bookYear())
			if err != nil {
				h.fail(w, kind, started, statusFor(err), "Rule book not available", err)
				return
			}
		}

		result, err := calc(r.Context(), req, book)
		if err != nil {
			h.fail(w, kind, started, statusFor(err), "Calculation failed", err)
			return
		}

		completed := h.now()
		resp := CalculationResponse{
			Metadata: CalculationMetadata{
				CalculationID: uuid.New().String(),
				Kind:          kind,
				StartedAt:     started.UTC().Format(time.RFC3339),
				CompletedAt:   completed.UTC().Format(time.RFC3339),
				DurationMs:    completed.Sub(started).Milliseconds(),
			},
			Result: result,
		}
		if book != nil {
			resp.Metadata.Year = book.Year
		}

		h.record(r.Context(), resp, body, completed)
		h.Metrics.observe(kind, "ok", completed.Sub(started))
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *Handler) fail(w http.ResponseWriter, kind string, started time.Time, status int, message string, err error) {
	outcome := "rejected"
	if status >= http.StatusInternalServerError {
		outcome = "error"
		h.Logger.Error("calculation failed", "kind", kind, "error", err)
	} else {
		h.Logger.Debug("calculation rejected", "kind", kind, "status", status, "error", err)
	}
	h.Metrics.observe(kind, outcome, h.now().Sub(started))
	writeError(w, status, message, err)
}

// record appends the calculation to the log. Failures are logged and never
// fail the request.
func (h *Handler) record(ctx context.Context, resp CalculationResponse, request []byte, at time.Time) {
	if h.Calculations == nil {
		return
	}
	out, err := json.Marshal(resp.Result)
	if err != nil {
		h.Logger.Warn("failed to encode calculation result", "id", resp.Metadata.CalculationID, "error", err)
		return
	}
	rec := generic.CalculationRecord{
		ID:        resp.Metadata.CalculationID,
		Kind:      resp.Metadata.Kind,
		Year:      resp.Metadata.Year,
		Request:   string(bytes.TrimSpace(request)),
		Response:  string(out),
		CreatedAt: at,
	}
	if err := h.Calculations.AppendCalculation(ctx, rec); err != nil {
		h.Logger.Warn("failed to record calculation", "id", rec.ID, "kind", rec.Kind, "error", err)
	}
}

// =============================================================================
// GENERIC ENGINE
// =============================================================================

func (h *Handler) tax(_ context.Context, req TaxRequest, book *generic.RuleBook) (any, error) {
	table, err := book.BracketTable(req.Table)
	if err != nil {
		return nil, err
	}
	tax, err := book.Tax(req.Table, req.Base)
	if err != nil {
		return nil, err
	}
	idx, _ := table.Bracket(req.Base)
	return TaxDTO{
		Table:         req.Table,
		Base:          req.Base,
		Tax:           tax,
		Bracket:       idx,
		MarginalRate:  table.MarginalRate(req.Base),
		EffectiveRate: table.EffectiveRate(req.Base),
	}, nil
}

func (h *Handler) entitlement(_ context.Context, req EntitlementRequest, book *generic.RuleBook) (any, error) {
	var (
		value int
		err   error
	)
	if req.Ordinal > 0 {
		value, err = book.TieredEntitlement(req.Table, req.Count, req.Ordinal)
	} else {
		value, err = book.Entitlement(req.Table, req.Count)
	}
	if err != nil {
		return nil, err
	}
	return EntitlementDTO{Table: req.Table, Count: req.Count, Ordinal: req.Ordinal, Value: value}, nil
}

func (h *Handler) benefit(_ context.Context, req BenefitRequest, book *generic.RuleBook) (any, error) {
	tier, err := book.BenefitTier(req.Table)
	if err != nil {
		return nil, err
	}
	value, err := book.Benefit(req.Table, req.Base)
	if err != nil {
		return nil, err
	}
	return BenefitDTO{Table: req.Table, Base: req.Base, Segment: tier.Segment(req.Base), Value: value}, nil
}

func (h *Handler) projection(_ context.Context, req ProjectionRequest, book *generic.RuleBook) (any, error) {
	start, err := parseDate("start", req.Start)
	if err != nil {
		return nil, err
	}
	regimes := make([]generic.Regime, 0, len(req.Regimes))
	for _, rd := range req.Regimes {
		regime, err := buildRegime(rd, book)
		if err != nil {
			return nil, err
		}
		regimes = append(regimes, regime)
	}
	input := generic.ProjectionInput{
		Regimes: regimes,
		Steps:   req.Steps,
		Unit:    generic.StepUnit(req.Unit),
		Start:   start,
	}
	if req.TerminateAt == nil {
		return generic.RunProjection(input)
	}
	if *req.TerminateAt < 0 {
		return nil, &generic.InputError{Field: "terminate_at", Value: *req.TerminateAt, Reason: "must not be negative"}
	}
	return generic.RunProjectionUntil(input, *req.TerminateAt)
}

func buildRegime(rd RegimeDTO, book *generic.RuleBook) (generic.Regime, error) {
	regime := generic.Regime{ID: generic.RegimeID(rd.ID), Initial: rd.Initial}

	if rd.Yield.IsZero() {
		regime.Deposit = generic.FixedDeposit{Each: rd.Deposit}
	} else {
		regime.Deposit = generic.CompoundingDeposit{Contribution: rd.Deposit, Yield: rd.Yield}
	}

	if w := rd.Withdrawal; w != nil {
		if w.Every <= 0 {
			return regime, &generic.InputError{Field: "withdrawal.every", Value: w.Every, Reason: "must be positive"}
		}
		var draw func(generic.RegimeState) generic.Money
		switch {
		case w.Fraction != nil && w.Table == "":
			draw = generic.FractionOf(*w.Fraction)
		case w.Fraction == nil && w.Table != "":
			table, err := book.BracketTable(w.Table)
			if err != nil {
				return regime, err
			}
			draw = generic.ProgressiveOf(table)
		default:
			return regime, &generic.InputError{Field: "withdrawal", Value: rd.ID, Reason: "exactly one of fraction and table is required"}
		}
		regime.Withdrawal = generic.PeriodicWithdrawal{Every: w.Every, Offset: w.Offset, Draw: draw}
	}

	if c := rd.Cash; c != nil {
		if c.FineRate.IsNegative() {
			return regime, &generic.InputError{Field: "termination_cash.fine_rate", Value: c.FineRate.String(), Reason: "must not be negative"}
		}
		rate := c.FineRate
		switch c.Mode {
		case "", "balance":
		case "balance_plus_fine":
			regime.TerminationCash = func(_ int, st generic.RegimeState) generic.Money {
				return st.Balance + st.Deposited.MulRate(rate)
			}
		case "fine_only":
			regime.TerminationCash = func(_ int, st generic.RegimeState) generic.Money {
				return st.Deposited.MulRate(rate)
			}
		default:
			return regime, &generic.InputError{Field: "termination_cash.mode", Value: c.Mode, Reason: "must be balance, balance_plus_fine or fine_only"}
		}
	}
	return regime, nil
}

func (h *Handler) amountInWords(_ context.Context, req WordsRequest, _ *generic.RuleBook) (any, error) {
	text, err := words.AmountToWords(req.Amount)
	if err != nil {
		return nil, err
	}
	return WordsDTO{Amount: req.Amount, Words: text}, nil
}

// =============================================================================
// LABOR CALCULATORS
// =============================================================================

func (h *Handler) netSalary(_ context.Context, req NetSalaryRequest, book *generic.RuleBook) (any, error) {
	return labor.NetSalary(req.input(), book)
}

func (h *Handler) socialSecurity(_ context.Context, req SocialSecurityRequest, book *generic.RuleBook) (any, error) {
	inss, err := labor.SocialSecurity(req.Gross, book)
	if err != nil {
		return nil, err
	}
	return SocialSecurityDTO{Gross: req.Gross, SocialSecurity: inss}, nil
}

func (h *Handler) incomeTax(_ context.Context, req IncomeTaxRequest, book *generic.RuleBook) (any, error) {
	var inss generic.Money
	if req.SocialSecurity != nil {
		inss = *req.SocialSecurity
	} else {
		var err error
		if inss, err = labor.SocialSecurity(req.Gross, book); err != nil {
			return nil, err
		}
	}
	return labor.IncomeTax(labor.IncomeTaxInput{
		Gross:          req.Gross,
		SocialSecurity: inss,
		Dependents:     req.Dependents,
		Alimony:        req.Alimony,
		UseSimplified:  req.UseSimplified,
	}, book)
}

func (h *Handler) vacation(_ context.Context, req VacationRequest, book *generic.RuleBook) (any, error) {
	return labor.Vacation(req.input(), book)
}

func (h *Handler) proportionalVacation(_ context.Context, req ProportionalVacationRequest, book *generic.RuleBook) (any, error) {
	amount, err := labor.ProportionalVacation(req.Salary, req.Months, req.Absences, book)
	if err != nil {
		return nil, err
	}
	return ProportionalVacationDTO{Months: req.Months, Amount: amount}, nil
}

func (h *Handler) thirteenth(_ context.Context, req ThirteenthRequest, book *generic.RuleBook) (any, error) {
	in, err := req.input(book.Year)
	if err != nil {
		return nil, err
	}
	return labor.Thirteenth(in, book)
}

func (h *Handler) unemployment(_ context.Context, req UnemploymentRequest, book *generic.RuleBook) (any, error) {
	in, err := req.input()
	if err != nil {
		return nil, err
	}
	return labor.Unemployment(in, book)
}

func (h *Handler) overtime(_ context.Context, req OvertimeRequest, book *generic.RuleBook) (any, error) {
	return labor.Overtime(req.input(), book)
}

func (h *Handler) night(_ context.Context, req NightRequest, book *generic.RuleBook) (any, error) {
	return labor.NightDifferential(req.input(), book)
}

func (h *Handler) dsr(ctx context.Context, req DSRRequest, _ *generic.RuleBook) (any, error) {
	in := labor.DSRInput{
		Variable: req.Variable,
		Mode:     labor.DSRMode(req.Mode),
		Workdays: req.Workdays,
		RestDays: req.RestDays,
		Year:     req.Year,
		Month:    time.Month(req.Month),
	}
	if in.Mode == labor.DSRPrecise && req.Calendar != CalendarSundaysOnly {
		cal, err := generic.LoadCalendar(ctx, h.Holidays, req.Calendar)
		if err != nil {
			return nil, err
		}
		in.Calendar = cal
	}
	return labor.DSRReflex(in)
}

func (h *Handler) rescission(_ context.Context, req RescissionRequest, book *generic.RuleBook) (any, error) {
	in, err := req.input()
	if err != nil {
		return nil, err
	}
	res, err := labor.Rescission(in, book)
	if err != nil {
		return nil, err
	}
	return RescissionDTO{RescissionResult: res, ProjectedEnd: res.ProjectedEnd.String()}, nil
}

func (h *Handler) fgts(_ context.Context, req FGTSRequest, book *generic.RuleBook) (any, error) {
	in, err := req.input()
	if err != nil {
		return nil, err
	}
	return labor.CompareFGTSRegimes(in, book)
}

func (h *Handler) birthdayWithdrawal(_ context.Context, req BirthdayWithdrawalRequest, book *generic.RuleBook) (any, error) {
	amount, err := labor.BirthdayWithdrawal(req.Balance, book)
	if err != nil {
		return nil, err
	}
	return BirthdayWithdrawalDTO{Balance: req.Balance, Withdrawal: amount}, nil
}

func (h *Handler) mei(_ context.Context, req MEIRequest, book *generic.RuleBook) (any, error) {
	months := req.ActiveMonths
	switch {
	case req.Opening != "":
		opening, err := parseRequiredDate("opening", req.Opening)
		if err != nil {
			return nil, err
		}
		months = labor.ActiveMonths(opening, book.Year)
	case months == 0:
		months = 12
	}
	return labor.CheckMEIRevenue(req.Revenue, months, book)
}

func (h *Handler) cltVsPJ(_ context.Context, req CLTvsPJRequest, book *generic.RuleBook) (any, error) {
	return labor.CompareCLTvsPJ(req.input(), book)
}

// =============================================================================
// RULE BOOK HANDLERS
// =============================================================================

// ListRuleBooks returns every loaded year.
func (h *Handler) ListRuleBooks(w http.ResponseWriter, r *http.Request) {
	years := h.Registry.Years()
	dtos := make([]RuleBookDTO, 0, len(years))
	for _, year := range years {
		book, err := h.Registry.ForYear(year)
		if err != nil {
			continue // removed concurrently
		}
		dtos = append(dtos, toRuleBookDTO(book))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRuleBook describes one year.
func (h *Handler) GetRuleBook(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	book, err := h.Registry.ForYear(year)
	if err != nil {
		writeError(w, statusFor(err), "Rule book not found", err)
		return
	}
	writeJSON(w, http.StatusOK, toRuleBookDTO(book))
}

// PutRuleBook publishes a rule-set document. The format comes from the
// "format" query parameter or the Content-Type, YAML by default.
func (h *Handler) PutRuleBook(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}
	format := documentFormat(r)

	doc, err := h.Registry.Factory().Decode(data, format)
	if err != nil {
		writeError(w, statusFor(err), "Invalid rule book document", err)
		return
	}
	if doc.Year != year {
		writeError(w, http.StatusBadRequest, "Document year does not match the URL",
			fmt.Errorf("document declares year %d", doc.Year))
		return
	}

	rec, err := h.Registry.Publish(r.Context(), data, format)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			// A table the calculators need is missing from the document.
			status = http.StatusBadRequest
		}
		writeError(w, status, "Failed to publish rule book", err)
		return
	}
	h.Metrics.setRuleBooks(len(h.Registry.Years()))
	h.Logger.Info("rule book published", "year", rec.Year, "version", rec.Version)

	writeJSON(w, http.StatusOK, PublishedDTO{
		Year:      rec.Year,
		Version:   rec.Version,
		Format:    string(rec.Format),
		UpdatedAt: rec.UpdatedAt,
	})
}

// DeleteRuleBook removes a year.
func (h *Handler) DeleteRuleBook(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	if err := h.Registry.Remove(r.Context(), year); err != nil {
		writeError(w, statusFor(err), "Failed to remove rule book", err)
		return
	}
	h.Metrics.setRuleBooks(len(h.Registry.Years()))
	w.WriteHeader(http.StatusNoContent)
}

func documentFormat(r *http.Request) generic.DocumentFormat {
	switch r.URL.Query().Get("format") {
	case "json":
		return generic.FormatJSON
	case "yaml", "yml":
		return generic.FormatYAML
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return generic.FormatJSON
	}
	return generic.FormatYAML
}

// =============================================================================
// CALCULATION LOG HANDLERS
// =============================================================================

// ListCalculations returns recorded calculations, newest first.
func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	if h.Calculations == nil {
		writeError(w, http.StatusNotFound, "Calculation log is not enabled", nil)
		return
	}
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	records, err := h.Calculations.ListCalculations(r.Context(), r.URL.Query().Get("kind"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list calculations", err)
		return
	}
	dtos := make([]CalculationDTO, len(records))
	for i, rec := range records {
		dtos[i] = toCalculationDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCalculation returns one recorded calculation.
func (h *Handler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	if h.Calculations == nil {
		writeError(w, http.StatusNotFound, "Calculation log is not enabled", nil)
		return
	}
	id := chi.URLParam(r, "id")
	rec, err := h.Calculations.GetCalculation(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get calculation", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Calculation not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toCalculationDTO(*rec))
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns the holidays stored under a calendar name.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	if h.Holidays == nil {
		writeError(w, http.StatusNotFound, "Holiday calendars are not enabled", nil)
		return
	}
	list, err := h.Holidays.Holidays(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}
	dtos := make([]HolidayDTO, len(list))
	for i, hol := range list {
		dtos[i] = toHolidayDTO(hol)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday adds or replaces a holiday in a calendar.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	if h.Holidays == nil {
		writeError(w, http.StatusNotFound, "Holiday calendars are not enabled", nil)
		return
	}
	var req HolidayDTO
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := parseRequiredDate("date", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid holiday date", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Holiday name is required", nil)
		return
	}

	hol := generic.Holiday{Date: date, Name: req.Name, Recurring: req.Recurring}
	if err := h.Holidays.SaveHoliday(r.Context(), chi.URLParam(r, "name"), hol); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, toHolidayDTO(hol))
}

// DeleteHoliday removes a holiday from a calendar.
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if h.Holidays == nil {
		writeError(w, http.StatusNotFound, "Holiday calendars are not enabled", nil)
		return
	}
	date, err := parseRequiredDate("date", chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid holiday date", err)
		return
	}
	if err := h.Holidays.DeleteHoliday(r.Context(), chi.URLParam(r, "name"), date); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HEALTH
// =============================================================================

// Health reports liveness and the loaded years.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"years":  h.Registry.Years(),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return 0, false
	}
	return year, true
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case generic.IsNotFound(err):
		return http.StatusNotFound
	case generic.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, generic.ErrDuplicateRecord):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
