package rest

import (
	"net/http"

	"lever/core"
	"lever/handler/render"
	"lever/handler/views"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func accountHandler(accountSrv core.IAccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user := chi.URLParam(r, "user")

		collateralValue, borrowValue, e := accountSrv.AccountValues(ctx, user)
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		excess, shortfall, e := accountSrv.GetHypotheticalAccountLiquidity(ctx, user, "", decimal.Zero, decimal.Zero)
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		render.JSON(w, &views.Account{
			UserID:          user,
			CollateralValue: collateralValue,
			BorrowValue:     borrowValue,
			Excess:          excess,
			Shortfall:       shortfall,
		})
	}
}

func liquidationsHandler(liquidationStr core.ILiquidationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user := chi.URLParam(r, "user")

		liquidations, e := liquidationStr.FindByUser(ctx, user)
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		render.JSON(w, liquidations)
	}
}
