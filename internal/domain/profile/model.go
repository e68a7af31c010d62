package profile

import (
	"context"
	"time"
)

// Achievement is a badge a fan can unlock for engagement.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Points      int64
	UnlockedAt  *time.Time
}

func (a Achievement) Unlocked() bool {
	return a.UnlockedAt != nil
}

// Profile is the fan identity shown on the profile screen.
type Profile struct {
	FanID        string
	DisplayName  string
	FavoriteTeam string
	Points       int64
	JoinedAt     time.Time
}

// Repository describes profile persistence needs from use cases.
type Repository interface {
	GetByFan(ctx context.Context, fanID string) (Profile, bool, error)
	ListAchievements(ctx context.Context, fanID string) ([]Achievement, error)
	AddPoints(ctx context.Context, fanID string, delta int64) (Profile, error)
}
