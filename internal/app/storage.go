package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/bonk-fanzone/internal/config"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/leaguetable"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/match"
	"github.com/riskibarqy/bonk-fanzone/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/bonk-fanzone/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/bonk-fanzone/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/logging"
)

// catalogStorage holds the league table and match catalog, the two stores
// that can live in Postgres.
type catalogStorage struct {
	teams   leaguetable.Repository
	matches match.Repository
	db      *sqlx.DB
}

func (s catalogStorage) close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func buildCatalogStorage(ctx context.Context, cfg config.Config, logger *logging.Logger, clock clockwork.Clock, now time.Time) (catalogStorage, error) {
	var store catalogStorage

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return catalogStorage{}, err
		}
		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db, now); err != nil {
				_ = db.Close()
				return catalogStorage{}, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		logger.Info("postgres catalog storage ready", "db_name", dbNameFromURL(cfg.DBURL))
		store = catalogStorage{
			teams:   postgres.NewTeamRepository(db),
			matches: postgres.NewMatchRepository(db),
			db:      db,
		}
	default:
		store = catalogStorage{
			teams:   memory.NewTeamRepository(memory.SeedTeams()),
			matches: memory.NewMatchRepository(memory.SeedMatches(now)),
		}
	}

	if cfg.CacheEnabled {
		store.teams = cache.NewTeamRepository(store.teams, cfg.CacheTTL, clock)
		store.matches = cache.NewMatchRepository(store.matches, cfg.CacheTTL, clock)
	}
	return store, nil
}
