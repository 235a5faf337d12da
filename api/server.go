/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Structured request logging (slog)
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/calc/*         Labor calculators
  /api/engine/*       Generic engine entry points
  /api/rulebooks/*    Rule book administration
  /api/calculations/* Calculation log
  /api/calendars/*    Holiday calendars
  /api/scenarios/*    Worked examples
  /healthz            Liveness
  /metrics            Prometheus (when metrics are enabled)

SECURITY NOTE:
  No authentication middleware. Rule book publication should sit behind a
  gateway in production.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	mux := r

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", h.Health)
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics.Handler())
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Labor calculators
		r.Route("/calc", func(r chi.Router) {
			r.Post("/net-salary", serve(h, "net_salary", h.netSalary))
			r.Post("/social-security", serve(h, "social_security", h.socialSecurity))
			r.Post("/income-tax", serve(h, "income_tax", h.incomeTax))
			r.Post("/vacation", serve(h, "vacation", h.vacation))
			r.Post("/vacation/proportional", serve(h, "proportional_vacation", h.proportionalVacation))
			r.Post("/thirteenth", serve(h, "thirteenth", h.thirteenth))
			r.Post("/unemployment", serve(h, "unemployment", h.unemployment))
			r.Post("/overtime", serve(h, "overtime", h.overtime))
			r.Post("/night", serve(h, "night", h.night))
			r.Post("/dsr", serve(h, "dsr", h.dsr))
			r.Post("/rescission", serve(h, "rescission", h.rescission))
			r.Post("/fgts", serve(h, "fgts", h.fgts))
			r.Post("/fgts/birthday", serve(h, "fgts_birthday", h.birthdayWithdrawal))
			r.Post("/mei", serve(h, "mei", h.mei))
			r.Post("/clt-vs-pj", serve(h, "clt_vs_pj", h.cltVsPJ))
			r.Post("/words", serve(h, "words", h.amountInWords))
		})

		// Generic engine
		r.Route("/engine", func(r chi.Router) {
			r.Post("/tax", serve(h, "tax", h.tax))
			r.Post("/entitlement", serve(h, "entitlement", h.entitlement))
			r.Post("/benefit", serve(h, "benefit", h.benefit))
			r.Post("/projection", serve(h, "projection", h.projection))
		})

		// Rule book routes
		r.Route("/rulebooks", func(r chi.Router) {
			r.Get("/", h.ListRuleBooks)
			r.Get("/{year}", h.GetRuleBook)
			r.Put("/{year}", h.PutRuleBook)
			r.Delete("/{year}", h.DeleteRuleBook)
		})

		// Calculation log routes
		r.Route("/calculations", func(r chi.Router) {
			r.Get("/", h.ListCalculations)
			r.Get("/{id}", h.GetCalculation)
		})

		// Holiday routes
		r.Route("/calendars/{name}/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Delete("/{date}", h.DeleteHoliday)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/{id}/run", h.RunScenario(mux))
		})
	})

	return r
}

// requestLogger logs one line per request with the chi request ID.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
