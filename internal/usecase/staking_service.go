package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/staking"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/id"
)

const defaultAccrualWorkers = 8

type StakeInput struct {
	FanID  string
	PoolID string
	Amount int64
}

type StakeResult struct {
	Position    staking.Position
	Transaction wallet.Transaction
	Wallet      wallet.Wallet
}

type PoolEstimate struct {
	PoolID string
	Amount int64
	Days   int
	APY    float64
	Reward int64
}

type PositionView struct {
	Position staking.Position
	Accrued  int64
	Unlocked bool
	Payout   int64
}

type UnstakeResult struct {
	Position    staking.Position
	Transaction wallet.Transaction
	Payout      int64
}

type AccrualSnapshot struct {
	At           time.Time
	Positions    int
	TotalStaked  int64
	TotalAccrued int64
	ByPool       map[string]int64
}

type StakingService struct {
	pools     staking.PoolRepository
	positions staking.PositionRepository
	wallets   wallet.Repository
	ledger    wallet.Ledger
	pay       *paymentFlow
	ids       id.Generator
	clock     clockwork.Clock
	workers   int
}

func NewStakingService(
	pools staking.PoolRepository,
	positions staking.PositionRepository,
	wallets wallet.Repository,
	txs wallet.TransactionRepository,
	ledger wallet.Ledger,
	ids id.Generator,
	clock clockwork.Clock,
	workers int,
) *StakingService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if workers <= 0 {
		workers = defaultAccrualWorkers
	}
	return &StakingService{
		pools:     pools,
		positions: positions,
		wallets:   wallets,
		ledger:    ledger,
		pay:       newPaymentFlow(wallets, txs, ledger, ids, clock),
		ids:       ids,
		clock:     clock,
		workers:   workers,
	}
}

func (s *StakingService) ListPools(ctx context.Context) ([]staking.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StakingService.ListPools")
	defer span.End()

	pools, err := s.pools.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staking pools: %w", err)
	}
	return pools, nil
}

// Estimate projects the reward for amount over days; days == 0 means the pool lock period.
func (s *StakingService) Estimate(ctx context.Context, poolID string, amount int64, days int) (PoolEstimate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StakingService.Estimate")
	defer span.End()

	if amount < 0 {
		return PoolEstimate{}, fmt.Errorf("%w: amount must be >= 0", ErrInvalidInput)
	}
	if days < 0 {
		return PoolEstimate{}, fmt.Errorf("%w: days must be >= 0", ErrInvalidInput)
	}

	pool, err := s.getPool(ctx, poolID)
	if err != nil {
		return PoolEstimate{}, err
	}
	if days == 0 {
		days = pool.LockDays
	}

	return PoolEstimate{
		PoolID: pool.ID,
		Amount: amount,
		Days:   days,
		APY:    pool.APY,
		Reward: pool.Estimate(amount, days),
	}, nil
}

func (s *StakingService) Stake(ctx context.Context, input StakeInput) (StakeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StakingService.Stake")
	defer span.End()

	if input.Amount <= 0 {
		return StakeResult{}, fmt.Errorf("%w: amount must be greater than 0", ErrInvalidInput)
	}

	pool, err := s.getPool(ctx, input.PoolID)
	if err != nil {
		return StakeResult{}, err
	}
	if input.Amount < pool.MinStake {
		return StakeResult{}, fmt.Errorf("%w: %v: min=%d amount=%d", ErrInvalidInput, staking.ErrBelowMinimum, pool.MinStake, input.Amount)
	}

	fan, err := lookupWallet(ctx, s.wallets, input.FanID)
	if err != nil {
		return StakeResult{}, err
	}
	if input.Amount > fan.Balance {
		return StakeResult{}, fmt.Errorf("%w: balance=%d amount=%d", ErrInsufficientBalance, fan.Balance, input.Amount)
	}

	positionID, err := s.ids.NewID()
	if err != nil {
		return StakeResult{}, fmt.Errorf("generate stake id: %w", err)
	}

	tx, updated, err := s.pay.spend(ctx, payment{
		FanID:        fan.FanID,
		From:         fan.Address,
		To:           poolVaultAddress(pool.ID),
		Kind:         wallet.KindStake,
		Amount:       input.Amount,
		Counterparty: pool.ID,
		Memo:         "stake " + pool.Name,
	})
	if err != nil {
		return StakeResult{Transaction: tx, Wallet: updated}, fmt.Errorf("stake: %w", err)
	}

	now := s.clock.Now().UTC()
	position := staking.Position{
		ID:        positionID,
		FanID:     fan.FanID,
		PoolID:    pool.ID,
		Amount:    input.Amount,
		APY:       pool.APY,
		LockDays:  pool.LockDays,
		StartedAt: now,
		UnlocksAt: now.AddDate(0, 0, pool.LockDays),
	}
	if err := s.positions.Insert(ctx, position); err != nil {
		if reverseErr := s.pay.reverse(ctx, tx, "stake position not stored"); reverseErr != nil {
			return StakeResult{}, errors.Join(fmt.Errorf("insert stake position: %w", err), reverseErr)
		}
		return StakeResult{}, fmt.Errorf("insert stake position: %w", err)
	}
	if _, err := s.pools.AddTotal(ctx, pool.ID, input.Amount); err != nil {
		return StakeResult{}, fmt.Errorf("update pool total: %w", err)
	}

	return StakeResult{Position: position, Transaction: tx, Wallet: updated}, nil
}

func (s *StakingService) ListPositions(ctx context.Context, fanID string) ([]PositionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StakingService.ListPositions")
	defer span.End()

	fanID = strings.TrimSpace(fanID)
	if fanID == "" {
		return nil, fmt.Errorf("%w: fan id is required", ErrInvalidInput)
	}

	items, err := s.positions.ListByFan(ctx, fanID)
	if err != nil {
		return nil, fmt.Errorf("list stake positions: %w", err)
	}

	now := s.clock.Now()
	out := make([]PositionView, 0, len(items))
	for _, item := range items {
		out = append(out, PositionView{
			Position: item,
			Accrued:  item.Accrued(now),
			Unlocked: item.IsUnlocked(now),
			Payout:   item.PayoutAt(now),
		})
	}
	sortPositionsNewestFirst(out)
	return out, nil
}

func (s *StakingService) Unstake(ctx context.Context, fanID, positionID string) (UnstakeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StakingService.Unstake")
	defer span.End()

	positionID = strings.TrimSpace(positionID)
	if positionID == "" {
		return UnstakeResult{}, fmt.Errorf("%w: stake id is required", ErrInvalidInput)
	}

	fan, err := lookupWallet(ctx, s.wallets, fanID)
	if err != nil {
		return UnstakeResult{}, err
	}

	position, exists, err := s.positions.GetByID(ctx, positionID)
	if err != nil {
		return UnstakeResult{}, fmt.Errorf("get stake position: %w", err)
	}
	if !exists || position.FanID != fan.FanID {
		return UnstakeResult{}, fmt.Errorf("%w: stake=%s", ErrNotFound, positionID)
	}
	if position.IsClosed() {
		return UnstakeResult{}, fmt.Errorf("%w: %v", ErrConflict, staking.ErrAlreadyClosed)
	}

	now := s.clock.Now().UTC()
	if !position.IsUnlocked(now) {
		return UnstakeResult{}, fmt.Errorf("%w: %v: unlocks_at=%s", ErrConflict, staking.ErrStillLocked, position.UnlocksAt.Format(time.RFC3339))
	}

	payout := position.PayoutAt(now)
	receipt, err := s.ledger.Settle(ctx, wallet.TransferRequest{
		Kind:   wallet.KindUnstake,
		From:   poolVaultAddress(position.PoolID),
		To:     fan.Address,
		Amount: payout,
	})
	if err != nil {
		return UnstakeResult{}, fmt.Errorf("%w: settle unstake: %v", ErrDependencyUnavailable, err)
	}

	closed := position
	closed.ClosedAt = &now
	if err := s.positions.Close(ctx, position.ID, closed); err != nil {
		if errors.Is(err, staking.ErrAlreadyClosed) {
			return UnstakeResult{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return UnstakeResult{}, fmt.Errorf("close stake position: %w", err)
	}
	if _, err := s.pools.AddTotal(ctx, position.PoolID, -position.Amount); err != nil {
		return UnstakeResult{}, fmt.Errorf("update pool total: %w", err)
	}

	tx, err := s.pay.receive(ctx, fan.FanID, wallet.KindUnstake, payout, position.PoolID, "unstake", receipt.Signature)
	if err != nil {
		return UnstakeResult{}, fmt.Errorf("unstake: %w", err)
	}

	return UnstakeResult{Position: closed, Transaction: tx, Payout: payout}, nil
}

// SnapshotAccruals totals rewards accrued so far across all open positions.
func (s *StakingService) SnapshotAccruals(ctx context.Context) (AccrualSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StakingService.SnapshotAccruals")
	defer span.End()

	open, err := s.positions.ListOpen(ctx)
	if err != nil {
		return AccrualSnapshot{}, fmt.Errorf("list open positions: %w", err)
	}

	now := s.clock.Now().UTC()
	snapshot := AccrualSnapshot{At: now, Positions: len(open), ByPool: make(map[string]int64)}
	if len(open) == 0 {
		return snapshot, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return AccrualSnapshot{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		totalStaked  atomic.Int64
		totalAccrued atomic.Int64
		mu           sync.Mutex
		workers      sync.WaitGroup
	)
	for _, position := range open {
		position := position
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			accrued := position.Accrued(now)
			totalStaked.Add(position.Amount)
			totalAccrued.Add(accrued)

			mu.Lock()
			snapshot.ByPool[position.PoolID] += accrued
			mu.Unlock()
		}); err != nil {
			workers.Done()
			workers.Wait()
			return AccrualSnapshot{}, fmt.Errorf("submit accrual task to worker pool: %w", err)
		}
	}
	workers.Wait()

	snapshot.TotalStaked = totalStaked.Load()
	snapshot.TotalAccrued = totalAccrued.Load()
	return snapshot, nil
}

func (s *StakingService) getPool(ctx context.Context, poolID string) (staking.Pool, error) {
	poolID = strings.TrimSpace(poolID)
	if poolID == "" {
		return staking.Pool{}, fmt.Errorf("%w: pool id is required", ErrInvalidInput)
	}

	pool, exists, err := s.pools.GetByID(ctx, poolID)
	if err != nil {
		return staking.Pool{}, fmt.Errorf("get staking pool: %w", err)
	}
	if !exists {
		return staking.Pool{}, fmt.Errorf("%w: pool=%s", ErrNotFound, poolID)
	}
	return pool, nil
}

func poolVaultAddress(poolID string) string {
	return "vault:" + poolID
}

func sortPositionsNewestFirst(items []PositionView) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position.StartedAt.After(items[j].Position.StartedAt)
	})
}
