package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tixhook/internal/metrics"
)

type Handlers struct {
	Health   http.HandlerFunc
	GetHooks http.HandlerFunc
	PutHooks http.HandlerFunc
	Fire     http.HandlerFunc
}

func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(metrics.Middleware("tixhook"))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", h.Health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/hooks", h.GetHooks)
		r.Put("/hooks", h.PutHooks)
		r.Post("/fire", h.Fire)
	})
	return r
}
