package handler

import (
	"net/http"

	"lever/core"
	"lever/handler/render"
	"lever/handler/rest"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	cfg              *core.Config
	marketStore      core.IMarketStore
	liquidationStore core.ILiquidationStore
	marketService    core.IMarketService
	accountService   core.IAccountService
	balancingService core.IBalancingService
}

// New new server
func New(
	cfg *core.Config,
	marketStore core.IMarketStore,
	liquidationStore core.ILiquidationStore,
	marketService core.IMarketService,
	accountService core.IAccountService,
	balancingService core.IBalancingService,
) Server {
	return Server{
		cfg:              cfg,
		marketStore:      marketStore,
		liquidationStore: liquidationStore,
		marketService:    marketService,
		accountService:   accountService,
		balancingService: balancingService,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(resetRoutePath)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(
		s.marketStore,
		s.liquidationStore,
		s.marketService,
		s.accountService,
		s.balancingService,
	))

	return r
}

func resetRoutePath(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if c := chi.RouteContext(ctx); c != nil {
			c.RoutePath = r.URL.Path
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
