// Package httpapi assembles the public HTTP surface: platform middleware,
// the primality endpoints, and the operational endpoints.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"primelab/internal/platform/middleware"
	"primelab/internal/primality/handler"
)

// NewRouter wires middleware and all endpoints. Handlers stay thin; business
// logic lives in the service layer.
func NewRouter(h *handler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)

	h.Register(r)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
