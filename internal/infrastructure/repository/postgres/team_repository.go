package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/leaguetable"
	qb "github.com/riskibarqy/bonk-fanzone/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]leaguetable.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select teams query")
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select teams")
	}

	out := make([]leaguetable.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (leaguetable.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return leaguetable.Team{}, false, crerr.Wrap(err, "build select team by id query")
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return leaguetable.Team{}, false, nil
		}
		return leaguetable.Team{}, false, crerr.Wrap(err, "get team by id")
	}
	return teamFromRow(row), true, nil
}

// UpsertTeams writes the table rows, replacing tallies of existing teams.
func (r *TeamRepository) UpsertTeams(ctx context.Context, items []leaguetable.Team) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin upsert teams tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return crerr.Wrap(err, "validate team")
		}
		query, args, err := qb.InsertModel("teams", teamInsertModel{
			PublicID:     item.ID,
			Name:         item.Name,
			League:       item.League,
			Division:     item.Division,
			City:         item.City,
			Won:          item.Won,
			Drawn:        item.Drawn,
			Lost:         item.Lost,
			GoalsFor:     item.GoalsFor,
			GoalsAgainst: item.GoalsAgainst,
		}, `ON CONFLICT (public_id) DO UPDATE SET
    name = EXCLUDED.name,
    league = EXCLUDED.league,
    division = EXCLUDED.division,
    city = EXCLUDED.city,
    won = EXCLUDED.won,
    drawn = EXCLUDED.drawn,
    lost = EXCLUDED.lost,
    goals_for = EXCLUDED.goals_for,
    goals_against = EXCLUDED.goals_against,
    updated_at = NOW(),
    deleted_at = NULL`)
		if err != nil {
			return crerr.Wrap(err, "build upsert team query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "upsert team %s", item.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit upsert teams tx")
	}
	return nil
}

func teamFromRow(row teamTableModel) leaguetable.Team {
	return leaguetable.Team{
		ID:           row.PublicID,
		Name:         row.Name,
		League:       row.League,
		Division:     row.Division,
		City:         row.City,
		Won:          row.Won,
		Drawn:        row.Drawn,
		Lost:         row.Lost,
		GoalsFor:     row.GoalsFor,
		GoalsAgainst: row.GoalsAgainst,
	}
}
