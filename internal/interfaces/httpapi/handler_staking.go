package httpapi

import (
	"net/http"

	"github.com/riskibarqy/bonk-fanzone/internal/usecase"
)

func (h *Handler) ListStakingPools(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStakingPools")
	defer span.End()

	pools, err := h.staking.ListPools(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list staking pools failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]poolDTO, 0, len(pools))
	for _, p := range pools {
		items = append(items, poolToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) EstimateStake(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EstimateStake")
	defer span.End()

	amount, err := queryInt64(r, "amount", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	days, err := queryInt(r, "days", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	poolID := r.PathValue("poolID")
	estimate, err := h.staking.Estimate(ctx, poolID, amount, days)
	if err != nil {
		h.logger.WarnContext(ctx, "estimate stake failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, poolEstimateDTO{
		PoolID: estimate.PoolID,
		Amount: estimate.Amount,
		Days:   estimate.Days,
		APY:    estimate.APY,
		Reward: estimate.Reward,
	})
}

func (h *Handler) Stake(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Stake")
	defer span.End()

	var req stakeRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	fanID := currentFanID(ctx)
	result, err := h.staking.Stake(ctx, usecase.StakeInput{
		FanID:  fanID,
		PoolID: req.PoolID,
		Amount: req.Amount,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "stake failed", "fan_id", fanID, "pool_id", req.PoolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, stakeDTO{
		Position:    positionToDTO(result.Position),
		Transaction: transactionToDTO(result.Transaction),
		Wallet:      walletToDTO(result.Wallet),
	})
}

func (h *Handler) ListMyStakes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyStakes")
	defer span.End()

	fanID := currentFanID(ctx)
	views, err := h.staking.ListPositions(ctx, fanID)
	if err != nil {
		h.logger.WarnContext(ctx, "list stakes failed", "fan_id", fanID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]positionDTO, 0, len(views))
	for _, v := range views {
		items = append(items, positionViewToDTO(v))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) Unstake(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Unstake")
	defer span.End()

	fanID := currentFanID(ctx)
	positionID := r.PathValue("positionID")
	result, err := h.staking.Unstake(ctx, fanID, positionID)
	if err != nil {
		h.logger.WarnContext(ctx, "unstake failed", "fan_id", fanID, "position_id", positionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, unstakeDTO{
		Position:    positionToDTO(result.Position),
		Transaction: transactionToDTO(result.Transaction),
		Payout:      result.Payout,
	})
}

func (h *Handler) GetAccrualSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAccrualSnapshot")
	defer span.End()

	snapshot, err := h.staking.SnapshotAccruals(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "snapshot accruals failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, accrualSnapshotDTO{
		At:           formatTime(snapshot.At),
		Positions:    snapshot.Positions,
		TotalStaked:  snapshot.TotalStaked,
		TotalAccrued: snapshot.TotalAccrued,
		ByPool:       snapshot.ByPool,
	})
}
