package httpapi

import (
	"net/http"

	"github.com/riskibarqy/bonk-fanzone/internal/platform/logging"
)

type RouterConfig struct {
	CORSAllowedOrigins  []string
	DemoFanID           string
	CaptureRequestBody  bool
	RequestBodyMaxBytes int
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerLeagueRoutes(mux, handler)
	registerCalculatorRoutes(mux, handler)
	registerMatchRoutes(mux, handler)
	registerNFTRoutes(mux, handler)
	registerStakingRoutes(mux, handler)
	registerWalletRoutes(mux, handler)
	registerSocialRoutes(mux, handler)
	registerLiveStreamRoutes(mux, handler)

	inner := WithFan(cfg.DemoFanID, recoverPanic(logger, mux))
	inner = CaptureRequestBody(cfg.CaptureRequestBody, cfg.RequestBodyMaxBytes, inner)
	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, inner)))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
