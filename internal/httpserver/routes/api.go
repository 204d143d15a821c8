package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/devcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devcat/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/devcat/internal/httpserver/mw"
)

func init() { Register("api", registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
		api.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))

		api.Get("/sites", handlers.Sites(d))
		api.Get("/categories", handlers.Categories(d))
		api.Get("/devices", handlers.Devices(d))
		api.Get("/devices/{id}", handlers.Device(d))
		api.Get("/diagnostics/drift", handlers.Drift(d))

		api.With(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.RateBurst,
			RefillPerIPPerMin: d.RatePerMin,
			MaxEntries:        10000,
			TrustProxy:        d.TrustProxy,
			Logger:            d.Logger,
		})).Post("/classify", handlers.Classify(d))
	})
}
