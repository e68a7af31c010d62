package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/bonk-fanzone/internal/infrastructure/repository/memory"
)

// BootstrapSeed fills an empty catalog with the demo league table and fixtures.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams WHERE deleted_at IS NULL`); err != nil {
		return crerr.Wrap(err, "count teams for bootstrap seed")
	}
	if count > 0 {
		return nil
	}

	if err := NewTeamRepository(db).UpsertTeams(ctx, memory.SeedTeams()); err != nil {
		return crerr.Wrap(err, "seed teams")
	}
	if err := NewMatchRepository(db).InsertMatches(ctx, memory.SeedMatches(now)); err != nil {
		return crerr.Wrap(err, "seed matches")
	}
	return nil
}
