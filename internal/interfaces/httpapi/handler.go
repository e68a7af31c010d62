package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/bonk-fanzone/internal/platform/logging"
	"github.com/riskibarqy/bonk-fanzone/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

type HandlerDeps struct {
	Wallets     *usecase.WalletService
	Staking     *usecase.StakingService
	NFTs        *usecase.NFTService
	Matches     *usecase.MatchService
	Rankings    *usecase.RankingService
	Calculator  *usecase.CalculatorService
	Social      *usecase.SocialService
	Profiles    *usecase.ProfileService
	LiveStreams *usecase.LiveStreamService
	// AllowedOrigins gates websocket upgrades with the same list as CORS.
	AllowedOrigins []string
}

type Handler struct {
	wallets     *usecase.WalletService
	staking     *usecase.StakingService
	nfts        *usecase.NFTService
	matches     *usecase.MatchService
	rankings    *usecase.RankingService
	calculator  *usecase.CalculatorService
	social      *usecase.SocialService
	profiles    *usecase.ProfileService
	liveStreams *usecase.LiveStreamService
	upgrader    websocket.Upgrader
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(deps HandlerDeps, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	origins := newOriginPolicy(deps.AllowedOrigins)
	return &Handler{
		wallets:     deps.Wallets,
		staking:     deps.Staking,
		nfts:        deps.NFTs,
		matches:     deps.Matches,
		rankings:    deps.Rankings,
		calculator:  deps.Calculator,
		social:      deps.Social,
		profiles:    deps.Profiles,
		liveStreams: deps.LiveStreams,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				return origin == "" || origins.allows(origin)
			},
		},
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON reads the body into a pooled buffer, rejects unknown fields and
// validates the result.
func (h *Handler) decodeJSON(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body exceeds %d bytes", usecase.ErrInvalidInput, tooLarge.Limit)
		}
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
		}
	}
	if len(strings.TrimSpace(string(buf.B))) == 0 {
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := strictJSON.Unmarshal(buf.B, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func currentFanID(ctx context.Context) string {
	fanID, _ := fanIDFromContext(ctx)
	return fanID
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func queryInt64(r *http.Request, name string, fallback int64) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func queryFloat(r *http.Request, name string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false", usecase.ErrInvalidInput, name)
	}
	return v, nil
}
