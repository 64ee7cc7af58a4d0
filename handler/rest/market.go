package rest

import (
	"net/http"

	"lever/core"
	"lever/handler/render"
	"lever/handler/views"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func allMarketsHandler(marketStr core.IMarketStore, marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		markets, e := marketStr.All(ctx)
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		marketViews := make([]*views.Market, 0)
		for _, m := range markets {
			marketViews = append(marketViews, getMarketView(r, m, marketSrv))
		}

		render.JSON(w, marketViews)
	}
}

func marketHandler(marketStr core.IMarketStore, marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		asset := chi.URLParam(r, "asset")
		market, e := marketStr.Find(ctx, asset)
		if e != nil {
			render.NotFoundRequest(w, core.ErrMarketNotFound)
			return
		}

		render.JSON(w, getMarketView(r, market, marketSrv))
	}
}

func getMarketView(r *http.Request, market *core.Market, marketSrv core.IMarketService) *views.Market {
	ctx := r.Context()

	utilizationRate, e := marketSrv.CurUtilizationRate(ctx, market)
	if e != nil {
		utilizationRate = decimal.Zero
	}

	exchangeRate, e := marketSrv.CurExchangeRate(ctx, market)
	if e != nil {
		exchangeRate = decimal.Zero
	}

	borrowRate, e := marketSrv.CurBorrowRatePerBlock(ctx, market)
	if e != nil {
		borrowRate = decimal.Zero
	}

	supplyRate, e := marketSrv.CurSupplyRatePerBlock(ctx, market)
	if e != nil {
		supplyRate = decimal.Zero
	}

	liquidity, e := marketSrv.AvailableLiquidity(ctx, market)
	if e != nil {
		liquidity = decimal.Zero
	}

	return &views.Market{
		Market:             *market,
		UtilizationRate:    utilizationRate,
		ExchangeRate:       exchangeRate,
		BorrowRatePerBlock: borrowRate,
		SupplyRatePerBlock: supplyRate,
		Liquidity:          liquidity,
	}
}
