package staking

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/reward"
)

var (
	ErrBelowMinimum  = errors.New("amount below pool minimum")
	ErrStillLocked   = errors.New("stake is still locked")
	ErrAlreadyClosed = errors.New("stake already closed")
)

// Pool is a BONK staking pool paying simple linear interest.
type Pool struct {
	ID          string
	Name        string
	APY         float64
	LockDays    int
	MinStake    int64
	TotalStaked int64
}

func (p Pool) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("pool id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("pool name is required")
	}
	if p.APY < 0 {
		return fmt.Errorf("pool apy must be >= 0")
	}
	if p.LockDays < 0 {
		return fmt.Errorf("pool lock days must be >= 0")
	}
	return nil
}

// Estimate is the reward for staking amount for days in this pool.
func (p Pool) Estimate(amount int64, days int) int64 {
	return reward.Estimate(float64(amount), p.APY, days)
}

// Position is one fan's stake in a pool.
type Position struct {
	ID        string
	FanID     string
	PoolID    string
	Amount    int64
	APY       float64
	LockDays  int
	StartedAt time.Time
	UnlocksAt time.Time
	ClosedAt  *time.Time
}

func (p Position) IsClosed() bool {
	return p.ClosedAt != nil
}

func (p Position) IsUnlocked(now time.Time) bool {
	return !now.Before(p.UnlocksAt)
}

// ElapsedDays counts whole days staked, capped at the lock period.
func (p Position) ElapsedDays(now time.Time) int {
	if now.Before(p.StartedAt) {
		return 0
	}
	days := int(now.Sub(p.StartedAt) / (24 * time.Hour))
	if p.LockDays > 0 && days > p.LockDays {
		days = p.LockDays
	}
	return days
}

// Accrued is the reward earned so far.
func (p Position) Accrued(now time.Time) int64 {
	return reward.Estimate(float64(p.Amount), p.APY, p.ElapsedDays(now))
}

// Payout is principal plus the reward for the full lock period.
func (p Position) Payout() int64 {
	return p.Amount + reward.Estimate(float64(p.Amount), p.APY, p.LockDays)
}

// PayoutAt is what unstaking at now returns. Flexible positions (no lock)
// earn for the days actually staked.
func (p Position) PayoutAt(now time.Time) int64 {
	if p.LockDays == 0 {
		return p.Amount + p.Accrued(now)
	}
	return p.Payout()
}
