package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/livestream"
)

type LiveStreamRepository struct {
	mu      sync.RWMutex
	streams []livestream.Stream
}

func NewLiveStreamRepository(streams []livestream.Stream) *LiveStreamRepository {
	return &LiveStreamRepository{streams: append([]livestream.Stream(nil), streams...)}
}

func (r *LiveStreamRepository) List(_ context.Context) ([]livestream.Stream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]livestream.Stream(nil), r.streams...), nil
}

func (r *LiveStreamRepository) GetByID(_ context.Context, streamID string) (livestream.Stream, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.streams {
		if s.ID == streamID {
			return s, true, nil
		}
	}
	return livestream.Stream{}, false, nil
}

func (r *LiveStreamRepository) AddViewers(_ context.Context, streamID string, delta int64) (livestream.Stream, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.streams {
		if r.streams[i].ID != streamID {
			continue
		}
		if !r.streams[i].IsLive {
			return r.streams[i], nil
		}
		next := r.streams[i].Viewers + delta
		if next < 0 {
			next = 0
		}
		r.streams[i].Viewers = next
		return r.streams[i], nil
	}
	return livestream.Stream{}, fmt.Errorf("live stream %s not found", streamID)
}
