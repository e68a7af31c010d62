package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/leaguetable"
)

// TeamRepository keeps league table rows in insertion order so stable sorting is meaningful.
type TeamRepository struct {
	mu    sync.RWMutex
	teams []leaguetable.Team
	index map[string]int
}

func NewTeamRepository(teams []leaguetable.Team) *TeamRepository {
	r := &TeamRepository{index: make(map[string]int, len(teams))}
	for _, item := range teams {
		r.upsertLocked(item)
	}
	return r
}

func (r *TeamRepository) List(_ context.Context) ([]leaguetable.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]leaguetable.Team, 0, len(r.teams))
	out = append(out, r.teams...)
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (leaguetable.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.index[teamID]
	if !ok {
		return leaguetable.Team{}, false, nil
	}
	return r.teams[idx], true, nil
}

func (r *TeamRepository) UpsertTeams(_ context.Context, items []leaguetable.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.upsertLocked(item)
	}
	return nil
}

func (r *TeamRepository) upsertLocked(item leaguetable.Team) {
	id := strings.TrimSpace(item.ID)
	if id == "" {
		return
	}
	if idx, ok := r.index[id]; ok {
		r.teams[idx] = item
		return
	}
	r.index[id] = len(r.teams)
	r.teams = append(r.teams, item)
}
