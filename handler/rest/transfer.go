package rest

import (
	"net/http"

	"lever/core"
	"lever/handler/render"
)

// transfersHandler balancing plan preview, computed but not executed
func transfersHandler(balancingSrv core.IBalancingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		transfers, e := balancingSrv.CollectTransfers(ctx)
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		if transfers == nil {
			transfers = make([]*core.Transfer, 0)
		}

		render.JSON(w, transfers)
	}
}
