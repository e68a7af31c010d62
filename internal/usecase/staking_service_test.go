package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
	"github.com/riskibarqy/bonk-fanzone/internal/infrastructure/repository/memory"
)

func newTestStakingService(balance int64, clock clockwork.Clock) (*StakingService, *memory.WalletRepository, *memory.StakingPoolRepository) {
	wallets := memory.NewWalletRepository(memory.SeedWallets(testFanID, testFanAddress, balance))
	pools := memory.NewStakingPoolRepository(memory.SeedStakingPools())
	service := NewStakingService(
		pools,
		memory.NewStakePositionRepository(),
		wallets,
		memory.NewTransactionRepository(),
		&instantLedger{},
		&sequenceIDGenerator{prefix: "stk-"},
		clock,
		4,
	)
	return service, wallets, pools
}

func TestStakingService_StakeRejections(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestStakingService(2_000, clockwork.NewFakeClockAt(testNow))

	cases := []struct {
		name  string
		input StakeInput
		want  error
	}{
		{name: "zero amount", input: StakeInput{FanID: testFanID, PoolID: "season-30"}, want: ErrInvalidInput},
		{name: "below minimum", input: StakeInput{FanID: testFanID, PoolID: "season-30", Amount: 999}, want: ErrInvalidInput},
		{name: "above balance", input: StakeInput{FanID: testFanID, PoolID: "season-30", Amount: 2_001}, want: ErrInsufficientBalance},
		{name: "unknown pool", input: StakeInput{FanID: testFanID, PoolID: "nope", Amount: 1_000}, want: ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.Stake(t.Context(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestStakingService_StakeAccrueAndUnstake(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(testNow)
	service, wallets, pools := newTestStakingService(5_000, clock)

	staked, err := service.Stake(t.Context(), StakeInput{FanID: testFanID, PoolID: "season-30", Amount: 1_000})
	require.NoError(t, err)
	require.Equal(t, int64(4_000), staked.Wallet.Balance)
	require.Equal(t, wallet.KindStake, staked.Transaction.Kind)
	require.Equal(t, testNow.AddDate(0, 0, 30), staked.Position.UnlocksAt)

	pool, _, _ := pools.GetByID(t.Context(), "season-30")
	require.Equal(t, int64(4_201_000), pool.TotalStaked)

	_, err = service.Unstake(t.Context(), testFanID, staked.Position.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict while locked, got %v", err)
	}

	clock.Advance(15 * 24 * time.Hour)
	views, err := service.ListPositions(t.Context(), testFanID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, int64(5), views[0].Accrued)
	require.False(t, views[0].Unlocked)

	clock.Advance(45 * 24 * time.Hour)
	result, err := service.Unstake(t.Context(), testFanID, staked.Position.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1_010), result.Payout)
	require.True(t, result.Position.IsClosed())

	w, _, _ := wallets.GetByFan(t.Context(), testFanID)
	require.Equal(t, int64(5_010), w.Balance)

	_, err = service.Unstake(t.Context(), testFanID, staked.Position.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second unstake, got %v", err)
	}

	pool, _, _ = pools.GetByID(t.Context(), "season-30")
	require.Equal(t, int64(4_200_000), pool.TotalStaked)
}

func TestStakingService_UnstakeOtherFansPositionIsNotFound(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestStakingService(5_000, clockwork.NewFakeClockAt(testNow))
	staked, err := service.Stake(t.Context(), StakeInput{FanID: testFanID, PoolID: "flex", Amount: 500})
	require.NoError(t, err)

	if _, err := service.Unstake(t.Context(), memory.FanIDRivalUltra, staked.Position.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStakingService_Estimate(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestStakingService(0, clockwork.NewFakeClockAt(testNow))

	got, err := service.Estimate(t.Context(), "season-30", 1_000, 0)
	require.NoError(t, err)
	require.Equal(t, 30, got.Days)
	require.Equal(t, int64(10), got.Reward)

	if _, err := service.Estimate(t.Context(), "season-30", -1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStakingService_SnapshotAccruals(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(testNow)
	service, _, _ := newTestStakingService(100_000, clock)

	for _, input := range []StakeInput{
		{FanID: testFanID, PoolID: "season-30", Amount: 36_500},
		{FanID: testFanID, PoolID: "season-30", Amount: 36_500},
		{FanID: testFanID, PoolID: "season-90", Amount: 10_000},
	} {
		if _, err := service.Stake(t.Context(), input); err != nil {
			t.Fatalf("stake %+v: %v", input, err)
		}
	}

	clock.Advance(10 * 24 * time.Hour)
	snapshot, err := service.SnapshotAccruals(t.Context())
	require.NoError(t, err)
	require.Equal(t, 3, snapshot.Positions)
	require.Equal(t, int64(83_000), snapshot.TotalStaked)
	// 36500 * 0.12 / 365 * 10 = 120 per season-30 stake; 10000 * 0.18 / 365 * 10 = 4.93 -> 5.
	require.Equal(t, int64(240), snapshot.ByPool["season-30"])
	require.Equal(t, int64(5), snapshot.ByPool["season-90"])
	require.Equal(t, int64(245), snapshot.TotalAccrued)
}
