package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/bonk-fanzone/internal/config"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/nft"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/tier"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
	"github.com/riskibarqy/bonk-fanzone/internal/infrastructure/ledger"
	"github.com/riskibarqy/bonk-fanzone/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/bonk-fanzone/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/bonk-fanzone/internal/platform/id"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/logging"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/resilience"
	"github.com/riskibarqy/bonk-fanzone/internal/usecase"
)

// App owns the HTTP server, the live stream ticker and the optional database.
type App struct {
	cfg         config.Config
	logger      *logging.Logger
	server      *http.Server
	liveStreams *usecase.LiveStreamService
	db          *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	return newWithClock(ctx, cfg, logger, clockwork.NewRealClock())
}

func newWithClock(ctx context.Context, cfg config.Config, logger *logging.Logger, clock clockwork.Clock) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	now := clock.Now().UTC()
	store, err := buildCatalogStorage(ctx, cfg, logger, clock, now)
	if err != nil {
		return nil, err
	}

	walletRepo := memory.NewWalletRepository(memory.SeedWallets(cfg.DemoFanID, cfg.DemoFanAddress, cfg.DemoFanBalance))
	txRepo := memory.NewTransactionRepository()
	profileRepo := memory.NewProfileRepository(memory.SeedProfiles(cfg.DemoFanID, now), memory.SeedAchievements(cfg.DemoFanID, now))
	positionRepo := memory.NewStakePositionRepository()

	settle := buildLedger(cfg, logger, clock)
	tiers := tier.DefaultTiers()

	calculatorSvc, err := usecase.NewCalculatorService(tiers)
	if err != nil {
		_ = store.close()
		return nil, fmt.Errorf("build calculator: %w", err)
	}

	liveStreamSvc := usecase.NewLiveStreamService(
		memory.NewLiveStreamRepository(memory.SeedLiveStreams(now)),
		clock,
		logger.Named("livestream"),
		usecase.LiveStreamConfig{
			TickInterval:  cfg.LiveStreamTickInterval,
			MaxViewerBump: cfg.LiveStreamMaxViewerBump,
		},
	)

	handler := httpapi.NewHandler(httpapi.HandlerDeps{
		Wallets: usecase.NewWalletService(walletRepo, txRepo, settle, idgen.NewUUIDGenerator("tx_"), clock),
		Staking: usecase.NewStakingService(
			memory.NewStakingPoolRepository(memory.SeedStakingPools()),
			positionRepo,
			walletRepo,
			txRepo,
			settle,
			idgen.NewUUIDGenerator("stk_"),
			clock,
			cfg.StakingWorkers,
		),
		NFTs: usecase.NewNFTService(
			memory.NewNFTRepository(nft.Generate(cfg.NFTCount, cfg.NFTSeed, now)),
			walletRepo,
			txRepo,
			settle,
			idgen.NewUUIDGenerator("nft_"),
			clock,
			usecase.NFTServiceConfig{MintFee: cfg.NFTMintFee},
		),
		Matches: usecase.NewMatchService(
			store.matches,
			memory.NewPredictionRepository(),
			walletRepo,
			txRepo,
			profileRepo,
			settle,
			idgen.NewUUIDGenerator("tx_"),
			clock,
		),
		Rankings:       usecase.NewRankingService(store.teams),
		Calculator:     calculatorSvc,
		Social:         usecase.NewSocialService(memory.NewPostRepository(memory.SeedPosts(now)), profileRepo, idgen.NewUUIDGenerator("post_"), clock),
		Profiles:       usecase.NewProfileService(profileRepo, walletRepo, positionRepo, tiers),
		LiveStreams:    liveStreamSvc,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}, logger.Named("httpapi"))

	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		DemoFanID:           cfg.DemoFanID,
		CaptureRequestBody:  cfg.UptraceEnabled && cfg.UptraceCaptureRequestBody,
		RequestBodyMaxBytes: cfg.UptraceRequestBodyMaxBytes,
	})

	logger.Info("app wired",
		"storage", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"ledger_circuit_enabled", cfg.LedgerCircuitEnabled,
		"demo_fan_id", cfg.DemoFanID,
	)

	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		liveStreams: liveStreamSvc,
		db:          store.db,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP and ticks live streams until ctx is cancelled, then shuts
// the server down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	tickCtx, stopTicker := context.WithCancel(ctx)
	var wg conc.WaitGroup
	wg.Go(func() { a.liveStreams.Run(tickCtx) })
	defer wg.Wait()
	defer stopTicker()

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := a.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	a.logger.Info("http server stopped")
	return <-serveErr
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func buildLedger(cfg config.Config, logger *logging.Logger, clock clockwork.Clock) wallet.Ledger {
	sim := ledger.NewSimulator(ledger.Config{
		ConfirmDelay: cfg.LedgerConfirmDelay,
		MaxAmount:    cfg.LedgerMaxAmount,
	}, clock)
	if !cfg.LedgerCircuitEnabled {
		return sim
	}

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: cfg.LedgerCircuitFailureCount,
		OpenTimeout:      cfg.LedgerCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.LedgerCircuitHalfOpenMax,
	}, clock)
	return ledger.NewGuarded(sim, breaker, logger.Named("ledger"))
}
