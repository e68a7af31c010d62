package httpapi

import (
	"net/http"

	"github.com/riskibarqy/bonk-fanzone/internal/usecase"
)

func (h *Handler) ListNFTs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNFTs")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	listedOnly, err := queryBool(r, "listed")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	mine, err := queryBool(r, "mine")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	q := r.URL.Query()
	input := usecase.ListNFTsInput{
		Rarity:     q.Get("rarity"),
		Search:     q.Get("search"),
		ListedOnly: listedOnly,
		Sort:       q.Get("sort"),
		Limit:      limit,
		Offset:     offset,
	}
	if mine {
		input.OwnerID = currentFanID(ctx)
	}

	page, err := h.nfts.List(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "list nfts failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]nftDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, nftToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, nftPageDTO{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

func (h *Handler) GetNFT(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNFT")
	defer span.End()

	nftID := r.PathValue("nftID")
	item, err := h.nfts.Get(ctx, nftID)
	if err != nil {
		h.logger.WarnContext(ctx, "get nft failed", "nft_id", nftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nftToDTO(item))
}

func (h *Handler) LikeNFT(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LikeNFT")
	defer span.End()

	nftID := r.PathValue("nftID")
	item, err := h.nfts.Like(ctx, nftID)
	if err != nil {
		h.logger.WarnContext(ctx, "like nft failed", "nft_id", nftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nftToDTO(item))
}

func (h *Handler) PurchaseNFT(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PurchaseNFT")
	defer span.End()

	fanID := currentFanID(ctx)
	nftID := r.PathValue("nftID")
	result, err := h.nfts.Purchase(ctx, fanID, nftID)
	if err != nil {
		h.logger.WarnContext(ctx, "purchase nft failed", "fan_id", fanID, "nft_id", nftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nftPurchaseToDTO(result))
}

func (h *Handler) MintNFT(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MintNFT")
	defer span.End()

	var req mintNFTRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	fanID := currentFanID(ctx)
	result, err := h.nfts.Mint(ctx, usecase.MintInput{
		FanID:      fanID,
		Title:      req.Title,
		Collection: req.Collection,
		Rarity:     req.Rarity,
		Price:      req.Price,
		List:       req.List,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "mint nft failed", "fan_id", fanID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, nftPurchaseToDTO(result))
}
