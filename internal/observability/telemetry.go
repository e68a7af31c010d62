package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/riskibarqy/bonk-fanzone/internal/config"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/logging"
)

// Telemetry owns the process-wide exporters: Uptrace traces, Pyroscope
// profiles and the debug pprof listener. Disabled parts are nil.
type Telemetry struct {
	logger        *logging.Logger
	traces        func(context.Context) error
	profiler      *pyroscope.Profiler
	pprofServer   *http.Server
	pprofShutdown time.Duration
}

// Start enables each exporter switched on in cfg. On error everything that
// already started is stopped again.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger, pprofShutdown: cfg.ShutdownTimeout}

	t.traces = startUptrace(cfg, logger)

	profiler, err := startPyroscope(cfg, logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("start pyroscope: %w", err), t.Shutdown(context.Background()))
	}
	t.profiler = profiler

	t.pprofServer = startPprof(cfg, logger)
	return t, nil
}

// Shutdown flushes spans and stops the profiler and pprof server.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.pprofServer != nil {
		timeout := t.pprofShutdown
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		stopCtx, cancel := context.WithTimeout(ctx, timeout)
		if err := t.pprofServer.Shutdown(stopCtx); err != nil {
			errs = append(errs, fmt.Errorf("stop pprof server: %w", err))
		} else {
			t.logger.Info("pprof server stopped")
		}
		cancel()
	}
	if t.profiler != nil {
		if err := t.profiler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
		}
	}
	if t.traces != nil {
		if err := t.traces(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown uptrace: %w", err))
		}
	}
	return errors.Join(errs...)
}

func startUptrace(cfg config.Config, logger *logging.Logger) func(context.Context) error {
	switch {
	case !cfg.UptraceEnabled:
		logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return nil
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"capture_request_body", cfg.UptraceCaptureRequestBody,
	)
	return uptrace.Shutdown
}

func startPyroscope(cfg config.Config, logger *logging.Logger) (*pyroscope.Profiler, error) {
	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return nil, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"storage": cfg.StorageDriver,
		},
		// The ledger simulator and stream ticker are mutex and goroutine heavy.
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockDuration,
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
	)
	return profiler, nil
}

func startPprof(cfg config.Config, logger *logging.Logger) *http.Server {
	if !cfg.PprofEnabled {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)

	srv := &http.Server{
		Addr:              cfg.PprofAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("pprof server starting", "addr", cfg.PprofAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()
	return srv
}
