package rest

import (
	"errors"
	"net/http"

	"lever/core"
	"lever/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	marketStore core.IMarketStore,
	liquidationStore core.ILiquidationStore,
	marketService core.IMarketService,
	accountService core.IAccountService,
	balancingService core.IBalancingService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/markets/all", allMarketsHandler(marketStore, marketService))
	router.Get("/markets/{asset}", marketHandler(marketStore, marketService))
	router.Get("/accounts/{user}", accountHandler(accountService))
	router.Get("/accounts/{user}/liquidations", liquidationsHandler(liquidationStore))
	router.Get("/transfers", transfersHandler(balancingService))

	return router
}
