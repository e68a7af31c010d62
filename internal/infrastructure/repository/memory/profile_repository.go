package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/profile"
)

type ProfileRepository struct {
	mu           sync.RWMutex
	profiles     map[string]profile.Profile
	achievements map[string][]profile.Achievement
}

func NewProfileRepository(profiles []profile.Profile, achievements map[string][]profile.Achievement) *ProfileRepository {
	r := &ProfileRepository{
		profiles:     make(map[string]profile.Profile, len(profiles)),
		achievements: make(map[string][]profile.Achievement, len(achievements)),
	}
	for _, p := range profiles {
		r.profiles[p.FanID] = p
	}
	for fanID, items := range achievements {
		r.achievements[fanID] = append([]profile.Achievement(nil), items...)
	}
	return r
}

func (r *ProfileRepository) GetByFan(_ context.Context, fanID string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[fanID]
	return p, ok, nil
}

func (r *ProfileRepository) ListAchievements(_ context.Context, fanID string) ([]profile.Achievement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.achievements[fanID]
	out := make([]profile.Achievement, 0, len(items))
	for _, a := range items {
		copied := a
		if a.UnlockedAt != nil {
			v := *a.UnlockedAt
			copied.UnlockedAt = &v
		}
		out = append(out, copied)
	}
	return out, nil
}

func (r *ProfileRepository) AddPoints(_ context.Context, fanID string, delta int64) (profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[fanID]
	if !ok {
		return profile.Profile{}, fmt.Errorf("profile for fan %s not found", fanID)
	}
	p.Points += delta
	if p.Points < 0 {
		p.Points = 0
	}
	r.profiles[fanID] = p
	return p, nil
}
