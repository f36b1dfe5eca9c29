package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	ledgerHandler "github.com/akhaled-io/ftaledger/internal/http/ledger"
	reportHandler "github.com/akhaled-io/ftaledger/internal/http/report"
	sessionHandler "github.com/akhaled-io/ftaledger/internal/http/session"
	tbHandler "github.com/akhaled-io/ftaledger/internal/http/trialbalance"
)

func New(
	sessionsV1 *sessionHandler.Handler,
	ledgerV1 *ledgerHandler.Handler,
	trialBalanceV1 *tbHandler.Handler,
	reportV1 *reportHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			sessionsV1.Routes(r)

			r.Route("/{id}/ledger", ledgerV1.Routes)

			r.Route("/{id}/trial-balance", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				trialBalanceV1.Routes(r)
			})

			r.Route("/{id}/report", reportV1.Routes)
		})
	})

	return router
}
