package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/staking"
	"github.com/riskibarqy/bonk-fanzone/internal/infrastructure/repository/memory"
)

type failingPositionRepository struct {
	staking.PositionRepository
}

func (failingPositionRepository) ListByFan(context.Context, string) ([]staking.Position, error) {
	return nil, errors.New("positions store offline")
}

func TestProfileService_GetAssemblesProfile(t *testing.T) {
	t.Parallel()

	positions := memory.NewStakePositionRepository()
	closedAt := testNow
	for _, p := range []staking.Position{
		{ID: "s1", FanID: testFanID, PoolID: "season-30", Amount: 2_000, StartedAt: testNow},
		{ID: "s2", FanID: testFanID, PoolID: "season-90", Amount: 7_000, StartedAt: testNow},
		{ID: "s3", FanID: testFanID, PoolID: "flex", Amount: 999, StartedAt: testNow, ClosedAt: &closedAt},
	} {
		if err := positions.Insert(t.Context(), p); err != nil {
			t.Fatalf("insert position: %v", err)
		}
	}

	service := NewProfileService(
		memory.NewProfileRepository(memory.SeedProfiles(testFanID, testNow), memory.SeedAchievements(testFanID, testNow)),
		memory.NewWalletRepository(memory.SeedWallets(testFanID, testFanAddress, 42_000)),
		positions,
		nil,
	)

	got, err := service.Get(t.Context(), testFanID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.Profile.DisplayName != "Nordkurve Niko" {
		t.Fatalf("display name = %s", got.Profile.DisplayName)
	}
	if got.Tier.Current.Name != "Silver" {
		t.Fatalf("tier = %s, want Silver for 3250 points", got.Tier.Current.Name)
	}
	if got.Balance != 42_000 || got.WalletAddress != testFanAddress {
		t.Fatalf("wallet = %s/%d", got.WalletAddress, got.Balance)
	}
	if got.TotalStaked != 9_000 || got.OpenStakes != 2 {
		t.Fatalf("staked = %d across %d, want 9000 across 2", got.TotalStaked, got.OpenStakes)
	}
	if len(got.Achievements) != 4 || got.UnlockedCount != 2 {
		t.Fatalf("achievements = %d unlocked = %d, want 4 and 2", len(got.Achievements), got.UnlockedCount)
	}
}

func TestProfileService_GetFailsWhenAnySubqueryFails(t *testing.T) {
	t.Parallel()

	service := NewProfileService(
		memory.NewProfileRepository(memory.SeedProfiles(testFanID, testNow), nil),
		memory.NewWalletRepository(memory.SeedWallets(testFanID, testFanAddress, 0)),
		failingPositionRepository{},
		nil,
	)

	if _, err := service.Get(t.Context(), testFanID); err == nil {
		t.Fatalf("expected an error when positions are unavailable")
	}
}

func TestProfileService_GetUnknownFan(t *testing.T) {
	t.Parallel()

	service := NewProfileService(
		memory.NewProfileRepository(nil, nil),
		memory.NewWalletRepository(nil),
		memory.NewStakePositionRepository(),
		nil,
	)

	if _, err := service.Get(t.Context(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
