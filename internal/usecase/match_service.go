package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/leaguetable"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/match"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/profile"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/id"
)

const maxPredictedGoals = 30

type ListMatchesInput struct {
	Status string
	League string
}

type PredictInput struct {
	FanID     string
	MatchID   string
	HomeScore int
	AwayScore int
}

type RecordResultInput struct {
	MatchID   string
	HomeScore int
	AwayScore int
	Final     bool
}

type SettlementResult struct {
	MatchID     string
	Predictions int
	Winners     int
	PayoutEach  int64
	PointsEach  int64
	Settled     int
}

type MatchService struct {
	matches     match.Repository
	predictions match.PredictionRepository
	wallets     wallet.Repository
	profiles    profile.Repository
	pay         *paymentFlow
	clock       clockwork.Clock
}

func NewMatchService(
	matches match.Repository,
	predictions match.PredictionRepository,
	wallets wallet.Repository,
	txs wallet.TransactionRepository,
	profiles profile.Repository,
	ledger wallet.Ledger,
	ids id.Generator,
	clock clockwork.Clock,
) *MatchService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MatchService{
		matches:     matches,
		predictions: predictions,
		wallets:     wallets,
		profiles:    profiles,
		pay:         newPaymentFlow(wallets, txs, ledger, ids, clock),
		clock:       clock,
	}
}

func (s *MatchService) List(ctx context.Context, input ListMatchesInput) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	var status match.Status
	if raw := strings.TrimSpace(input.Status); raw != "" && !strings.EqualFold(raw, leaguetable.AllFilter) {
		parsed, ok := match.ParseStatus(raw)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported status=%s", ErrInvalidInput, raw)
		}
		status = parsed
	}
	league := strings.TrimSpace(input.League)
	if strings.EqualFold(league, leaguetable.AllFilter) {
		league = ""
	}

	items, err := s.matches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		if status != "" && item.Status != status {
			continue
		}
		if league != "" && !strings.EqualFold(item.League, league) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	return s.mustMatch(ctx, matchID)
}

func (s *MatchService) GetPrediction(ctx context.Context, fanID, matchID string) (match.Prediction, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetPrediction")
	defer span.End()

	if _, err := s.mustMatch(ctx, matchID); err != nil {
		return match.Prediction{}, false, err
	}
	item, exists, err := s.predictions.Get(ctx, strings.TrimSpace(fanID), strings.TrimSpace(matchID))
	if err != nil {
		return match.Prediction{}, false, fmt.Errorf("get prediction: %w", err)
	}
	return item, exists, nil
}

func (s *MatchService) Predict(ctx context.Context, input PredictInput) (match.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Predict")
	defer span.End()

	input.FanID = strings.TrimSpace(input.FanID)
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return match.Prediction{}, fmt.Errorf("%w: scores must be >= 0", ErrInvalidInput)
	}
	if input.HomeScore > maxPredictedGoals || input.AwayScore > maxPredictedGoals {
		return match.Prediction{}, fmt.Errorf("%w: scores must be <= %d", ErrInvalidInput, maxPredictedGoals)
	}

	if _, err := lookupWallet(ctx, s.wallets, input.FanID); err != nil {
		return match.Prediction{}, err
	}

	item, err := s.mustMatch(ctx, input.MatchID)
	if err != nil {
		return match.Prediction{}, err
	}
	if item.Status != match.StatusScheduled {
		return match.Prediction{}, fmt.Errorf("%w: predictions are closed for %s match=%s", ErrConflict, item.Status, item.ID)
	}

	prediction := match.Prediction{
		FanID:     input.FanID,
		MatchID:   item.ID,
		HomeScore: input.HomeScore,
		AwayScore: input.AwayScore,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.predictions.Insert(ctx, prediction); err != nil {
		if errors.Is(err, match.ErrPredictionExists) {
			return match.Prediction{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return match.Prediction{}, fmt.Errorf("insert prediction: %w", err)
	}
	return prediction, nil
}

// RecordResult updates the score; a final result marks the match finished,
// otherwise it is live. Finished and postponed matches keep their label.
func (s *MatchService) RecordResult(ctx context.Context, input RecordResultInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordResult")
	defer span.End()

	if input.HomeScore < 0 || input.AwayScore < 0 {
		return match.Match{}, fmt.Errorf("%w: scores must be >= 0", ErrInvalidInput)
	}

	item, err := s.mustMatch(ctx, input.MatchID)
	if err != nil {
		return match.Match{}, err
	}
	switch item.Status {
	case match.StatusFinished:
		return match.Match{}, fmt.Errorf("%w: match=%s is already finished", ErrConflict, item.ID)
	case match.StatusPostponed:
		return match.Match{}, fmt.Errorf("%w: match=%s is postponed", ErrConflict, item.ID)
	}

	status := match.StatusLive
	if input.Final {
		status = match.StatusFinished
	}
	updated, err := s.matches.SetResult(ctx, item.ID, input.HomeScore, input.AwayScore, status)
	if err != nil {
		return match.Match{}, fmt.Errorf("record match result: %w", err)
	}
	return updated, nil
}

// Settle pays a finished match's reward pool to the exact-score predictions.
// The pool is split evenly with integer division across every winner of the
// match, so retries and concurrent calls never pay out more than the pool.
// Predictions are claimed before paying; a second call pays nothing.
func (s *MatchService) Settle(ctx context.Context, matchID string) (SettlementResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Settle")
	defer span.End()

	item, err := s.mustMatch(ctx, matchID)
	if err != nil {
		return SettlementResult{}, err
	}
	if !item.HasFinalScore() {
		return SettlementResult{}, fmt.Errorf("%w: match=%s is %s without a final score", ErrConflict, item.ID, item.Status)
	}

	predictions, err := s.predictions.ListByMatch(ctx, item.ID)
	if err != nil {
		return SettlementResult{}, fmt.Errorf("list predictions: %w", err)
	}

	result := SettlementResult{MatchID: item.ID, Predictions: len(predictions)}
	for _, p := range predictions {
		if p.Matches(item) {
			result.Winners++
		}
	}
	if result.Winners > 0 {
		result.PayoutEach = item.RewardPool / int64(result.Winners)
		result.PointsEach = item.WinnerReward
	}

	claimed, err := s.predictions.ClaimUnsettled(ctx, item.ID)
	if err != nil {
		return result, fmt.Errorf("claim predictions: %w", err)
	}

	for i, p := range claimed {
		p.Correct = p.Matches(item)
		if p.Correct {
			p.Payout = result.PayoutEach
			if _, err := s.pay.receive(ctx, p.FanID, wallet.KindPredictionReward, p.Payout, item.ID, predictionMemo(item), ""); err != nil {
				payErr := fmt.Errorf("pay prediction reward fan=%s: %w", p.FanID, err)
				unpaid := claimed[i+1:]
				if !errors.Is(err, errCreditApplied) {
					unpaid = claimed[i:]
				}
				return result, s.releaseClaims(ctx, unpaid, payErr)
			}
		}
		if err := s.predictions.Update(ctx, p); err != nil {
			return result, s.releaseClaims(ctx, claimed[i+1:], fmt.Errorf("mark prediction settled fan=%s: %w", p.FanID, err))
		}
		result.Settled++

		if p.Correct && item.WinnerReward > 0 {
			if _, err := s.profiles.AddPoints(ctx, p.FanID, item.WinnerReward); err != nil {
				return result, s.releaseClaims(ctx, claimed[i+1:], fmt.Errorf("award prediction points fan=%s: %w", p.FanID, err))
			}
		}
	}

	return result, nil
}

// releaseClaims hands unpaid predictions back so a later Settle can pay them.
func (s *MatchService) releaseClaims(ctx context.Context, unpaid []match.Prediction, cause error) error {
	ctx = context.WithoutCancel(ctx)
	errs := []error{cause}
	for _, p := range unpaid {
		p.Settled = false
		p.Correct = false
		p.Payout = 0
		if err := s.predictions.Update(ctx, p); err != nil {
			errs = append(errs, fmt.Errorf("release prediction fan=%s: %w", p.FanID, err))
		}
	}
	return errors.Join(errs...)
}

func (s *MatchService) mustMatch(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

func predictionMemo(m match.Match) string {
	return fmt.Sprintf("%s %d-%d %s", m.HomeTeam, *m.HomeScore, *m.AwayScore, m.AwayTeam)
}
