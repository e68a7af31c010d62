package cache

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/leaguetable"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/match"
	basecache "github.com/riskibarqy/bonk-fanzone/internal/platform/cache"
)

const (
	teamListKey   = "team:list"
	teamIDPrefix  = "team:id:"
	matchListKey  = "match:list"
	matchIDPrefix = "match:id:"
)

type cachedByID[T any] struct {
	value  T
	exists bool
}

type TeamRepository struct {
	next  leaguetable.Repository
	lists *basecache.Store[[]leaguetable.Team]
	byID  *basecache.Store[cachedByID[leaguetable.Team]]
}

func NewTeamRepository(next leaguetable.Repository, ttl time.Duration, clock clockwork.Clock) *TeamRepository {
	return &TeamRepository{
		next:  next,
		lists: basecache.NewStore[[]leaguetable.Team](ttl, clock),
		byID:  basecache.NewStore[cachedByID[leaguetable.Team]](ttl, clock),
	}
}

func (r *TeamRepository) List(ctx context.Context) ([]leaguetable.Team, error) {
	items, err := r.lists.GetOrLoad(ctx, teamListKey, func(ctx context.Context) ([]leaguetable.Team, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]leaguetable.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]leaguetable.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (leaguetable.Team, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, teamIDPrefix+teamID, func(ctx context.Context) (cachedByID[leaguetable.Team], error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return cachedByID[leaguetable.Team]{}, err
		}
		return cachedByID[leaguetable.Team]{value: item, exists: exists}, nil
	})
	if err != nil {
		return leaguetable.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

type MatchRepository struct {
	next  match.Repository
	lists *basecache.Store[[]match.Match]
	byID  *basecache.Store[cachedByID[match.Match]]
}

func NewMatchRepository(next match.Repository, ttl time.Duration, clock clockwork.Clock) *MatchRepository {
	return &MatchRepository{
		next:  next,
		lists: basecache.NewStore[[]match.Match](ttl, clock),
		byID:  basecache.NewStore[cachedByID[match.Match]](ttl, clock),
	}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	items, err := r.lists.GetOrLoad(ctx, matchListKey, func(ctx context.Context) ([]match.Match, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cloneMatches(items), nil
	})
	if err != nil {
		return nil, err
	}
	return cloneMatches(items), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, matchIDPrefix+matchID, func(ctx context.Context) (cachedByID[match.Match], error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return cachedByID[match.Match]{}, err
		}
		return cachedByID[match.Match]{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}
	return cached.value.Clone(), cached.exists, nil
}

// SetResult writes through and evicts the list and the match entry.
func (r *MatchRepository) SetResult(ctx context.Context, matchID string, homeScore, awayScore int, status match.Status) (match.Match, error) {
	item, err := r.next.SetResult(ctx, matchID, homeScore, awayScore, status)
	r.lists.Delete(ctx, matchListKey)
	r.byID.Delete(ctx, matchIDPrefix+matchID)
	if err != nil {
		return match.Match{}, err
	}
	return item, nil
}

func cloneMatches(items []match.Match) []match.Match {
	out := make([]match.Match, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

var (
	_ leaguetable.Repository = (*TeamRepository)(nil)
	_ match.Repository       = (*MatchRepository)(nil)
)
