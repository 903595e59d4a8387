// Package http assembles the service's HTTP surface: registration,
// verification, reporting, and the operational endpoints.
package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gatepass/internal/platform/middleware"
)

// RouterConfig carries the transport-level knobs out of the main config.
type RouterConfig struct {
	AdminToken     string
	RequestTimeout time.Duration
}

// NewRouter builds the chi router with the full middleware chain. Admin
// endpoints sit behind the shared-secret header; /metrics and /healthz stay
// open for scrapers and probes.
func NewRouter(h *Handler, logger *slog.Logger, cfg RouterConfig) chi.Router {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.ContentTypeJSON)

	r.Post("/attendees", h.HandleRegister)
	r.Get("/verify", h.HandleVerifyGet)
	r.Post("/verify", h.HandleVerifyPost)
	r.Get("/venues", h.HandleVenues)
	r.Get("/healthz", h.HandleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/admin", func(admin chi.Router) {
		admin.Use(middleware.RequireAdminToken(cfg.AdminToken, logger))
		admin.Get("/attendees", h.HandleListAttendees)
		admin.Get("/checkins", h.HandleListCheckins)
		admin.Get("/attendance", h.HandleAttendance)
	})

	return r
}
