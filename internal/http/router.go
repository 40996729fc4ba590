package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	corslib "github.com/rs/cors"

	"smart-stadium/internal/http/handlers"
)

// Options tunes the router's outer surfaces.
type Options struct {
	CORSOrigins  []string
	RateLimitRPM int
	AdminToken   string
}

// NewRouter creates and configures the chi router with all middleware and
// routes. The admin route is only mounted when a token is configured, so an
// unconfigured deployment serves 404 there.
func NewRouter(api *handlers.Handler, devices *handlers.DeviceHandler, celebrations *handlers.CelebrationHandler, admin *handlers.AdminHandler, opts Options) *chi.Mux {
	r := chi.NewRouter()

	c := corslib.New(corslib.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "PUT", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	r.Get("/health", api.Health)
	r.Get("/ready", api.Ready)

	r.Route("/api", func(r chi.Router) {
		if opts.RateLimitRPM > 0 {
			r.Use(RateLimitMiddleware(opts.RateLimitRPM, time.Minute))
		}

		r.Get("/status", api.Status)
		r.Get("/contests", api.Contests)
		r.Get("/history", api.History)

		r.Get("/devices", devices.List)
		r.Post("/devices/default-lighting", devices.DefaultLighting)
		r.Put("/devices/{id}/toggle", devices.Toggle)
		r.Post("/devices/{id}/test", devices.Test)

		r.Post("/celebrations/trigger", celebrations.Trigger)

		r.Post("/monitoring/pause", api.Pause)
		r.Post("/monitoring/resume", api.Resume)
	})

	if opts.AdminToken != "" {
		r.Post("/admin/poll", admin.ForcePoll)
	}

	return r
}
