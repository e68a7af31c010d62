package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/match"
	qb "github.com/riskibarqy/bonk-fanzone/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.IsNull("deleted_at")).
		OrderBy("kickoff_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select matches query")
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select matches")
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, crerr.Wrap(err, "build select match by id query")
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, crerr.Wrap(err, "get match by id")
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) SetResult(ctx context.Context, matchID string, homeScore, awayScore int, status match.Status) (match.Match, error) {
	query, args, err := qb.Update("matches").
		Set("home_score", homeScore).
		Set("away_score", awayScore).
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return match.Match{}, crerr.Wrap(err, "build update match result query")
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, crerr.Newf("match %s not found", matchID)
		}
		return match.Match{}, crerr.Wrap(err, "update match result")
	}
	return matchFromRow(row), nil
}

// InsertMatches adds catalog rows; existing public ids are left as they are.
func (r *MatchRepository) InsertMatches(ctx context.Context, items []match.Match) error {
	for _, item := range items {
		query, args, err := qb.InsertModel("matches", matchInsertModel{
			PublicID:     item.ID,
			League:       item.League,
			HomeTeam:     item.HomeTeam,
			AwayTeam:     item.AwayTeam,
			HomeScore:    intPtrToInt64Ptr(item.HomeScore),
			AwayScore:    intPtrToInt64Ptr(item.AwayScore),
			KickoffAt:    item.KickoffAt.UTC(),
			Venue:        item.Venue,
			Status:       string(item.Status),
			RewardPool:   item.RewardPool,
			WinnerReward: item.WinnerReward,
		}, `ON CONFLICT (public_id) DO NOTHING`)
		if err != nil {
			return crerr.Wrap(err, "build insert match query")
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "insert match %s", item.ID)
		}
	}
	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	status, ok := match.ParseStatus(row.Status)
	if !ok {
		status = match.StatusScheduled
	}
	return match.Match{
		ID:           row.PublicID,
		League:       row.League,
		HomeTeam:     row.HomeTeam,
		AwayTeam:     row.AwayTeam,
		HomeScore:    nullInt64ToIntPtr(row.HomeScore),
		AwayScore:    nullInt64ToIntPtr(row.AwayScore),
		KickoffAt:    row.KickoffAt.UTC(),
		Venue:        row.Venue,
		Status:       status,
		RewardPool:   row.RewardPool,
		WinnerReward: row.WinnerReward,
	}
}
