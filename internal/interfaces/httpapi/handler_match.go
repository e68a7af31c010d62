package httpapi

import (
	"net/http"

	"github.com/riskibarqy/bonk-fanzone/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	q := r.URL.Query()
	items, err := h.matches.List(ctx, usecase.ListMatchesInput{
		Status: q.Get("status"),
		League: q.Get("league"),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.matches.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) GetMyPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPrediction")
	defer span.End()

	fanID := currentFanID(ctx)
	matchID := r.PathValue("matchID")
	item, exists, err := h.matches.GetPrediction(ctx, fanID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get prediction failed", "fan_id", fanID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(item))
}

func (h *Handler) PredictMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PredictMatch")
	defer span.End()

	var req predictRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	fanID := currentFanID(ctx)
	matchID := r.PathValue("matchID")
	item, err := h.matches.Predict(ctx, usecase.PredictInput{
		FanID:     fanID,
		MatchID:   matchID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "predict match failed", "fan_id", fanID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, predictionToDTO(item))
}

func (h *Handler) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchResult")
	defer span.End()

	var req matchResultRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	item, err := h.matches.RecordResult(ctx, usecase.RecordResultInput{
		MatchID:   matchID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
		Final:     req.Final,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record match result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "match result recorded",
		"match_id", item.ID,
		"status", item.Status,
		"home_score", *item.HomeScore,
		"away_score", *item.AwayScore,
	)
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) SettleMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SettleMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	result, err := h.matches.Settle(ctx, matchID)
	if err != nil {
		h.logger.ErrorContext(ctx, "settle match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "match settled",
		"match_id", result.MatchID,
		"winners", result.Winners,
		"payout_each", result.PayoutEach,
		"settled", result.Settled,
	)
	writeSuccess(ctx, w, http.StatusOK, settlementDTO{
		MatchID:     result.MatchID,
		Predictions: result.Predictions,
		Winners:     result.Winners,
		PayoutEach:  result.PayoutEach,
		PointsEach:  result.PointsEach,
		Settled:     result.Settled,
	})
}
