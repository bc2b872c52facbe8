/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/catalog          Static tables
  /api/calc/*           Stateless calculators
  /api/profiles/*       Profiles, goals, logs and forecasts
  /api/events/*         Shared calendar
  /api/scenarios/*      Demo data sets
  /                     Endpoint index

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.GetCatalog)

		r.Route("/calc", func(r chi.Router) {
			r.Post("/heads", h.CalcHeads)
			r.Post("/wheel", h.CalcWheel)
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", h.ListProfiles)
			r.Post("/", h.CreateProfile)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetProfile)
				r.Put("/", h.UpdateProfile)
				r.Delete("/", h.DeleteProfile)

				r.Post("/goals", h.AddGoal)
				r.Put("/goals/{goalID}", h.UpdateGoal)
				r.Put("/goals/{goalID}/allocation", h.SetGoalAllocation)
				r.Delete("/goals/{goalID}", h.RemoveGoal)

				r.Get("/occurrences", h.ListOccurrences)
				r.Put("/outcomes", h.SetOutcome)
				r.Get("/wheels", h.ListWheels)
				r.Put("/spins", h.SetSpins)

				r.Get("/wheel-plan", h.GetWheelPlan)
				r.Get("/projection", h.GetProjection)
				r.Get("/overview", h.GetOverview)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.ListEvents)
			r.Post("/", h.CreateEvent)
			r.Delete("/{id}", h.DeleteEvent)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Heads Planner</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Heads Planner API</h1>
<ul>
<li><a href="/api/catalog">/api/catalog</a> - Static tables</li>
<li><a href="/api/profiles">/api/profiles</a> - List profiles</li>
<li><a href="/api/events">/api/events</a> - Calendar</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Demo data sets</li>
</ul>
</body>
</html>`))
	})

	return r
}
