package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/einfield/engine/internal/api"
	apiMiddleware "github.com/einfield/engine/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	calculationHandler := api.NewCalculationHandler(app.calc, app.logger)
	systemHandler := api.NewSystemHandler(app.memo)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/calculate", calculationHandler.Calculate)
	})

	r.Get("/health", systemHandler.Health)
	r.Get("/cache/stats", systemHandler.CacheStats)

	return r
}
