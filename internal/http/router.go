// Package http wires the chi router: API routes, request logging, metrics,
// and CORS for browser clients.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"splitledger/internal/http/expense"
	"splitledger/internal/http/group"
	"splitledger/internal/http/settlement"
)

func New(
	groupsV1 *group.Handler,
	expensesV1 *expense.Handler,
	settlementsV1 *settlement.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(requestLogger)
	router.Use(requestMetrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))

		r.Route("/groups", func(r chi.Router) {
			groupsV1.Routes(r)
			r.Route("/{groupID}", func(r chi.Router) {
				groupsV1.ItemRoutes(r)
				settlementsV1.GroupRoutes(r)
				r.Route("/expenses", expensesV1.Routes)
			})
		})

		r.Route("/settlements", settlementsV1.Routes)
	})

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return router
}
