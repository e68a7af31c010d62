package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
}

func NewMatchRepository(items []match.Match) *MatchRepository {
	matches := make(map[string]match.Match, len(items))
	for _, item := range items {
		matches[item.ID] = item.Clone()
	}
	return &MatchRepository{matches: matches}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, item := range r.matches {
		out = append(out, item.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *MatchRepository) SetResult(_ context.Context, matchID string, homeScore, awayScore int, status match.Status) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, fmt.Errorf("match %s not found", matchID)
	}
	item.HomeScore = &homeScore
	item.AwayScore = &awayScore
	item.Status = status
	r.matches[matchID] = item
	return item.Clone(), nil
}

type PredictionRepository struct {
	mu    sync.RWMutex
	items map[string]match.Prediction
	order []string
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{items: make(map[string]match.Prediction)}
}

func (r *PredictionRepository) ListByMatch(_ context.Context, matchID string) ([]match.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Prediction, 0)
	for _, key := range r.order {
		if item := r.items[key]; item.MatchID == matchID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *PredictionRepository) Get(_ context.Context, fanID, matchID string) (match.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[predictionKey(fanID, matchID)]
	return item, ok, nil
}

func (r *PredictionRepository) Insert(_ context.Context, p match.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := predictionKey(p.FanID, p.MatchID)
	if _, exists := r.items[key]; exists {
		return match.ErrPredictionExists
	}
	r.items[key] = p
	r.order = append(r.order, key)
	return nil
}

func (r *PredictionRepository) Update(_ context.Context, p match.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := predictionKey(p.FanID, p.MatchID)
	if _, exists := r.items[key]; !exists {
		return fmt.Errorf("prediction fan=%s match=%s not found", p.FanID, p.MatchID)
	}
	r.items[key] = p
	return nil
}

func (r *PredictionRepository) ClaimUnsettled(_ context.Context, matchID string) ([]match.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]match.Prediction, 0)
	for _, key := range r.order {
		item := r.items[key]
		if item.MatchID != matchID || item.Settled {
			continue
		}
		item.Settled = true
		r.items[key] = item
		out = append(out, item)
	}
	return out, nil
}

func predictionKey(fanID, matchID string) string {
	return fanID + "::" + matchID
}
