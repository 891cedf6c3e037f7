package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		// Planning
		r.Post("/plans", h.HandleCreatePlan)
		r.Post("/batches", h.HandleCreateBatch)
		r.Get("/batches", h.HandleListBatches)
		r.Get("/batches/{batchID}", h.HandleGetBatch)
		r.Get("/customers/{customerID}/plans", h.HandleCustomerPlans)

		// Cost scenarios
		r.Get("/scenarios", h.HandleListScenarios)
		r.Put("/scenarios/current", h.HandleSwitchScenario)
		r.Get("/scenarios/{name}", h.HandleGetScenario)
		r.Put("/scenarios/{name}", h.HandleUpsertScenario)
	})

	return r
}
