package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/livestream"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/logging"
)

const (
	defaultViewerBump    = 25
	subscriberBufferSize = 4
)

type LiveStreamConfig struct {
	TickInterval time.Duration
	// MaxViewerBump is the upper bound of the random viewer increment per tick.
	MaxViewerBump int64
	Seed          uint64
}

type LiveStreamService struct {
	repo   livestream.Repository
	clock  clockwork.Clock
	logger *logging.Logger
	cfg    LiveStreamConfig

	rngMu sync.Mutex
	rng   *rand.Rand

	subMu  sync.RWMutex
	subs   map[string]map[int]chan livestream.Stream
	nextID int
}

func NewLiveStreamService(repo livestream.Repository, clock clockwork.Clock, logger *logging.Logger, cfg LiveStreamConfig) *LiveStreamService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxViewerBump <= 0 {
		cfg.MaxViewerBump = defaultViewerBump
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(clock.Now().UnixNano())
	}
	return &LiveStreamService{
		repo:   repo,
		clock:  clock,
		logger: logger,
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		subs:   make(map[string]map[int]chan livestream.Stream),
	}
}

func (s *LiveStreamService) List(ctx context.Context) ([]livestream.Stream, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveStreamService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list live streams: %w", err)
	}
	return items, nil
}

func (s *LiveStreamService) Get(ctx context.Context, streamID string) (livestream.Stream, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveStreamService.Get")
	defer span.End()

	streamID = strings.TrimSpace(streamID)
	if streamID == "" {
		return livestream.Stream{}, fmt.Errorf("%w: stream id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, streamID)
	if err != nil {
		return livestream.Stream{}, fmt.Errorf("get live stream: %w", err)
	}
	if !exists {
		return livestream.Stream{}, fmt.Errorf("%w: stream=%s", ErrNotFound, streamID)
	}
	return item, nil
}

// Tick adds a random viewer increment to every live stream and publishes the
// new snapshots to subscribers.
func (s *LiveStreamService) Tick(ctx context.Context) ([]livestream.Stream, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list live streams: %w", err)
	}

	updated := make([]livestream.Stream, 0, len(items))
	for _, item := range items {
		if !item.IsLive {
			continue
		}
		next, err := s.repo.AddViewers(ctx, item.ID, s.viewerBump())
		if err != nil {
			return updated, fmt.Errorf("add viewers stream=%s: %w", item.ID, err)
		}
		updated = append(updated, next)
		s.publish(next)
	}
	return updated, nil
}

// Run ticks until ctx is cancelled.
func (s *LiveStreamService) Run(ctx context.Context) {
	if s.cfg.TickInterval <= 0 {
		return
	}

	ticker := s.clock.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if _, err := s.Tick(ctx); err != nil {
				s.logger.WarnContext(ctx, "live stream tick failed", "error", err)
			}
		}
	}
}

// Subscribe returns a channel of snapshots for one stream. Slow readers miss
// snapshots instead of blocking the ticker. Call cancel to unsubscribe.
func (s *LiveStreamService) Subscribe(streamID string) (<-chan livestream.Stream, func()) {
	ch := make(chan livestream.Stream, subscriberBufferSize)

	s.subMu.Lock()
	s.nextID++
	subID := s.nextID
	if s.subs[streamID] == nil {
		s.subs[streamID] = make(map[int]chan livestream.Stream)
	}
	s.subs[streamID][subID] = ch
	s.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs[streamID], subID)
			if len(s.subs[streamID]) == 0 {
				delete(s.subs, streamID)
			}
			s.subMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *LiveStreamService) publish(item livestream.Stream) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for _, ch := range s.subs[item.ID] {
		select {
		case ch <- item:
		default:
		}
	}
}

func (s *LiveStreamService) viewerBump() int64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	return s.rng.Int64N(s.cfg.MaxViewerBump + 1)
}
