/*
scenarios.go - Worked examples for demos and smoke tests

PURPOSE:

	Provides pre-built calculation requests that exercise the main
	calculators with realistic figures. A scenario is replayed through the
	router exactly like a client request, so it goes through decoding, rule
	book resolution, the calculation log and metrics.

AVAILABLE SCENARIOS:

	net-salary:         Payslip for a 5000.00 salary (2025)
	vacation-abono:     30 days, 10 sold, with average variable pay (2025)
	rescission:         Dismissal without cause after two years (2024)
	unemployment:       First request after 20 months (2025)
	fgts-regimes:       Saque-rescisão vs saque-aniversário over 24 months
	clt-vs-pj:          5000.00 CLT salary against a 9000.00 PJ invoice

USAGE VIA API:

	GET  /api/scenarios
	POST /api/scenarios/{id}/run

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, path and request body
 2. Keep the body valid for the path's request type

SEE ALSO:
  - handlers.go: calculation endpoints the scenarios call
  - server.go: route registration
*/
package api

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ScenarioDTO describes a worked example.
type ScenarioDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Path        string  `json:"path"`
	Request     rawJSON `json:"request"`
}

var scenarios = []ScenarioDTO{
	{
		ID:          "net-salary",
		Name:        "Net salary",
		Description: "INSS, IRRF and FGTS deposit on a 5000.00 salary without dependents",
		Path:        "/api/calc/net-salary",
		Request:     `{"year":2025,"gross":"5000.00"}`,
	},
	{
		ID:          "vacation-abono",
		Name:        "Vacation with abono",
		Description: "3000.00 salary plus 600.00 average variable pay, selling 10 of 30 days",
		Path:        "/api/calc/vacation",
		Request:     `{"year":2025,"salary":"3000.00","average_variable":"600.00","sell_days":10}`,
	},
	{
		ID:          "rescission",
		Name:        "Dismissal without cause",
		Description: "3000.00 salary, admitted 2022-01-10, dismissed 2024-06-15 with indemnified notice",
		Path:        "/api/calc/rescission",
		Request:     `{"kind":"without_cause","salary":"3000.00","admission":"2022-01-10","termination":"2024-06-15","fgts_balance":"7200.00"}`,
	},
	{
		ID:          "unemployment",
		Name:        "Unemployment insurance",
		Description: "First request after 20 months, last salaries 2500, 3000 and 3500",
		Path:        "/api/calc/unemployment",
		Request:     `{"year":2025,"last_salaries":["2500.00","3000.00","3500.00"],"months_worked":20,"request_ordinal":1}`,
	},
	{
		ID:          "fgts-regimes",
		Name:        "FGTS withdrawal regimes",
		Description: "3000.00 salary over 24 months without yield, first birthday in December",
		Path:        "/api/calc/fgts",
		Request:     `{"year":2025,"salary":"3000.00","months":24,"start":"2025-01-01","annual_yield":"0"}`,
	},
	{
		ID:          "clt-vs-pj",
		Name:        "CLT vs PJ",
		Description: "5000.00 CLT salary with 1000.00 benefits against a 9000.00 invoice at 6%",
		Path:        "/api/calc/clt-vs-pj",
		Request:     `{"year":2025,"salary":"5000.00","monthly_benefits":"1000.00","revenue":"9000.00","tax_rate":"0.06","monthly_costs":"300.00","pro_labore":"1518.00"}`,
	},
}

func findScenario(id string) (ScenarioDTO, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return ScenarioDTO{}, false
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// RunScenario replays a scenario's request on mux.
func (h *Handler) RunScenario(mux http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := findScenario(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "Scenario not found", nil)
			return
		}

		// Drop the routing context so mux routes the rewritten path afresh.
		ctx := context.WithValue(r.Context(), chi.RouteCtxKey, (*chi.Context)(nil))
		req := r.Clone(ctx)
		req.Method = http.MethodPost
		req.URL.Path = s.Path
		req.URL.RawPath = ""
		req.RequestURI = s.Path
		req.Body = io.NopCloser(strings.NewReader(string(s.Request)))
		req.ContentLength = int64(len(s.Request))
		req.Header.Set("Content-Type", "application/json")

		h.Logger.Info("running scenario", "scenario", s.ID, "path", s.Path)
		mux.ServeHTTP(w, req)
	}
}
