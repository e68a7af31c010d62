package livestream

import (
	"context"
	"time"
)

// Stream is a live broadcast attached to a match.
type Stream struct {
	ID        string
	MatchID   string
	Title     string
	Viewers   int64
	IsLive    bool
	StartedAt time.Time
}

// Repository describes live stream persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Stream, error)
	GetByID(ctx context.Context, streamID string) (Stream, bool, error)
	// AddViewers bumps the viewer count of a live stream; offline streams are left alone.
	AddViewers(ctx context.Context, streamID string, delta int64) (Stream, error)
}
