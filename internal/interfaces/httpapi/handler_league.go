package httpapi

import (
	"net/http"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/leaguetable"
	"github.com/riskibarqy/bonk-fanzone/internal/usecase"
)

func (h *Handler) ListRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRankings")
	defer span.End()

	q := r.URL.Query()
	result, err := h.rankings.Table(ctx, leaguetable.Filter{
		Search: q.Get("search"),
		League: q.Get("league"),
		City:   q.Get("city"),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "rank teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	standings := make([]standingDTO, 0, len(result.Standings))
	for _, s := range result.Standings {
		standings = append(standings, standingToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, rankingDTO{
		Standings: standings,
		Total:     result.Total,
		Leagues:   result.Leagues,
		Cities:    result.Cities,
	})
}

func (h *Handler) GetTeamRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRanking")
	defer span.End()

	teamID := r.PathValue("teamID")
	standing, err := h.rankings.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team ranking failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingToDTO(standing))
}

func (h *Handler) EstimateReward(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EstimateReward")
	defer span.End()

	principal, err := queryFloat(r, "principal", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	apy, err := queryFloat(r, "apy", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	days, err := queryInt(r, "days", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	estimate, err := h.calculator.EstimateReward(ctx, usecase.RewardEstimateInput{
		Principal: principal,
		APY:       apy,
		Days:      days,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rewardEstimateDTO{
		Principal: estimate.Principal,
		APY:       estimate.APY,
		DailyRate: estimate.DailyRate,
		Days:      estimate.Days,
		Reward:    estimate.Reward,
	})
}

func (h *Handler) ListTiers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTiers")
	defer span.End()

	tiers := h.calculator.Tiers()
	items := make([]tierDTO, 0, len(tiers))
	for _, t := range tiers {
		items = append(items, tierToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTierProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTierProgress")
	defer span.End()

	points, err := queryInt64(r, "points", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	progress, err := h.calculator.TierProgress(ctx, points)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tierProgressToDTO(progress))
}
