package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/reward"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/tier"
)

const maxEstimateDays = 10 * reward.DaysPerYear

type RewardEstimateInput struct {
	Principal float64
	// APY is a fraction: 0.12 means 12%.
	APY  float64
	Days int
}

type RewardEstimate struct {
	Principal float64
	APY       float64
	DailyRate float64
	Days      int
	Reward    int64
}

type CalculatorService struct {
	tiers []tier.Tier
}

func NewCalculatorService(tiers []tier.Tier) (*CalculatorService, error) {
	if len(tiers) == 0 {
		tiers = tier.DefaultTiers()
	}
	if err := tier.Validate(tiers); err != nil {
		return nil, fmt.Errorf("validate tiers: %w", err)
	}
	return &CalculatorService{tiers: append([]tier.Tier(nil), tiers...)}, nil
}

// EstimateReward clamps negative or non-finite inputs to 0 like the calculator does.
func (s *CalculatorService) EstimateReward(ctx context.Context, input RewardEstimateInput) (RewardEstimate, error) {
	_, span := startUsecaseSpan(ctx, "usecase.CalculatorService.EstimateReward")
	defer span.End()

	if input.Days > maxEstimateDays {
		return RewardEstimate{}, fmt.Errorf("%w: days must be <= %d", ErrInvalidInput, maxEstimateDays)
	}

	principal := nonNegative(input.Principal)
	apy := nonNegative(input.APY)
	days := max(input.Days, 0)

	return RewardEstimate{
		Principal: principal,
		APY:       apy,
		DailyRate: reward.DailyRate(apy),
		Days:      days,
		Reward:    reward.Estimate(principal, apy, days),
	}, nil
}

func (s *CalculatorService) TierProgress(ctx context.Context, points int64) (tier.Progress, error) {
	_, span := startUsecaseSpan(ctx, "usecase.CalculatorService.TierProgress")
	defer span.End()

	progress, err := tier.Resolve(points, s.tiers)
	if err != nil {
		return tier.Progress{}, fmt.Errorf("resolve tier: %w", err)
	}
	return progress, nil
}

func (s *CalculatorService) Tiers() []tier.Tier {
	return append([]tier.Tier(nil), s.tiers...)
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
