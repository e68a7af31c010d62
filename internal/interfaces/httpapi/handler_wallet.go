package httpapi

import (
	"net/http"

	"github.com/riskibarqy/bonk-fanzone/internal/usecase"
)

func (h *Handler) GetWallet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWallet")
	defer span.End()

	fanID := currentFanID(ctx)
	item, err := h.wallets.Get(ctx, fanID)
	if err != nil {
		h.logger.WarnContext(ctx, "get wallet failed", "fan_id", fanID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, walletToDTO(item))
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTransactions")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fanID := currentFanID(ctx)
	txs, err := h.wallets.ListTransactions(ctx, fanID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list transactions failed", "fan_id", fanID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]transactionDTO, 0, len(txs))
	for _, tx := range txs {
		items = append(items, transactionToDTO(tx))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Transfer")
	defer span.End()

	var req transferRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	fanID := currentFanID(ctx)
	result, err := h.wallets.Transfer(ctx, usecase.TransferInput{
		FanID:     fanID,
		ToAddress: req.ToAddress,
		Amount:    req.Amount,
		Memo:      req.Memo,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "transfer failed", "fan_id", fanID, "amount", req.Amount, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, transferDTO{
		Transaction: transactionToDTO(result.Transaction),
		Wallet:      walletToDTO(result.Wallet),
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfile")
	defer span.End()

	fanID := currentFanID(ctx)
	item, err := h.profiles.Get(ctx, fanID)
	if err != nil {
		h.logger.WarnContext(ctx, "get profile failed", "fan_id", fanID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fanProfileToDTO(item))
}
