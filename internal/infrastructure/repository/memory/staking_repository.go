package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/staking"
)

type StakingPoolRepository struct {
	mu    sync.RWMutex
	pools []staking.Pool
}

func NewStakingPoolRepository(pools []staking.Pool) *StakingPoolRepository {
	return &StakingPoolRepository{pools: append([]staking.Pool(nil), pools...)}
}

func (r *StakingPoolRepository) List(_ context.Context) ([]staking.Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]staking.Pool(nil), r.pools...), nil
}

func (r *StakingPoolRepository) GetByID(_ context.Context, poolID string) (staking.Pool, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.pools {
		if p.ID == poolID {
			return p, true, nil
		}
	}
	return staking.Pool{}, false, nil
}

func (r *StakingPoolRepository) AddTotal(_ context.Context, poolID string, delta int64) (staking.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.pools {
		if r.pools[i].ID != poolID {
			continue
		}
		next := r.pools[i].TotalStaked + delta
		if next < 0 {
			next = 0
		}
		r.pools[i].TotalStaked = next
		return r.pools[i], nil
	}
	return staking.Pool{}, fmt.Errorf("staking pool %s not found", poolID)
}

type StakePositionRepository struct {
	mu    sync.RWMutex
	items map[string]staking.Position
	order []string
}

func NewStakePositionRepository() *StakePositionRepository {
	return &StakePositionRepository{items: make(map[string]staking.Position)}
}

func (r *StakePositionRepository) ListByFan(_ context.Context, fanID string) ([]staking.Position, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]staking.Position, 0)
	for _, id := range r.order {
		if item := r.items[id]; item.FanID == fanID {
			out = append(out, clonePosition(item))
		}
	}
	return out, nil
}

func (r *StakePositionRepository) ListOpen(_ context.Context) ([]staking.Position, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]staking.Position, 0, len(r.order))
	for _, id := range r.order {
		if item := r.items[id]; !item.IsClosed() {
			out = append(out, clonePosition(item))
		}
	}
	return out, nil
}

func (r *StakePositionRepository) GetByID(_ context.Context, positionID string) (staking.Position, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[positionID]
	if !ok {
		return staking.Position{}, false, nil
	}
	return clonePosition(item), true, nil
}

func (r *StakePositionRepository) Insert(_ context.Context, p staking.Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; exists {
		return fmt.Errorf("stake position %s already exists", p.ID)
	}
	r.items[p.ID] = clonePosition(p)
	r.order = append(r.order, p.ID)
	return nil
}

func (r *StakePositionRepository) Close(_ context.Context, positionID string, closed staking.Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[positionID]
	if !ok {
		return fmt.Errorf("stake position %s not found", positionID)
	}
	if current.IsClosed() {
		return staking.ErrAlreadyClosed
	}
	if closed.ClosedAt == nil {
		return fmt.Errorf("stake position %s: closed_at is required", positionID)
	}
	r.items[positionID] = clonePosition(closed)
	return nil
}

func clonePosition(p staking.Position) staking.Position {
	copied := p
	if p.ClosedAt != nil {
		v := *p.ClosedAt
		copied.ClosedAt = &v
	}
	return copied
}
