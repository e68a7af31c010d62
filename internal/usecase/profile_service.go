package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/profile"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/staking"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/tier"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
)

type FanProfile struct {
	Profile       profile.Profile
	Tier          tier.Progress
	Achievements  []profile.Achievement
	UnlockedCount int
	WalletAddress string
	Balance       int64
	TotalStaked   int64
	OpenStakes    int
}

type ProfileService struct {
	profiles  profile.Repository
	wallets   wallet.Repository
	positions staking.PositionRepository
	tiers     []tier.Tier
}

func NewProfileService(
	profiles profile.Repository,
	wallets wallet.Repository,
	positions staking.PositionRepository,
	tiers []tier.Tier,
) *ProfileService {
	if len(tiers) == 0 {
		tiers = tier.DefaultTiers()
	}
	return &ProfileService{
		profiles:  profiles,
		wallets:   wallets,
		positions: positions,
		tiers:     append([]tier.Tier(nil), tiers...),
	}
}

// Get assembles the profile screen. Sub-queries run concurrently and the first
// failure cancels the rest.
func (s *ProfileService) Get(ctx context.Context, fanID string) (FanProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Get")
	defer span.End()

	fanID = strings.TrimSpace(fanID)
	if fanID == "" {
		return FanProfile{}, fmt.Errorf("%w: fan id is required", ErrInvalidInput)
	}

	var (
		out    FanProfile
		exists bool
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		item, ok, err := s.profiles.GetByFan(ctx, fanID)
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		out.Profile, exists = item, ok
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.profiles.ListAchievements(ctx, fanID)
		if err != nil {
			return fmt.Errorf("list achievements: %w", err)
		}
		out.Achievements = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		w, ok, err := s.wallets.GetByFan(ctx, fanID)
		if err != nil {
			return fmt.Errorf("get wallet: %w", err)
		}
		if ok {
			out.WalletAddress = w.Address
			out.Balance = w.Balance
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.positions.ListByFan(ctx, fanID)
		if err != nil {
			return fmt.Errorf("list stake positions: %w", err)
		}
		for _, item := range items {
			if item.IsClosed() {
				continue
			}
			out.TotalStaked += item.Amount
			out.OpenStakes++
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return FanProfile{}, err
	}
	if !exists {
		return FanProfile{}, fmt.Errorf("%w: profile for fan=%s", ErrNotFound, fanID)
	}

	progress, err := tier.Resolve(out.Profile.Points, s.tiers)
	if err != nil {
		return FanProfile{}, fmt.Errorf("resolve tier: %w", err)
	}
	out.Tier = progress

	for _, a := range out.Achievements {
		if a.Unlocked() {
			out.UnlockedCount++
		}
	}

	return out, nil
}
