package staking

import "context"

// PoolRepository describes staking pool persistence needs from use cases.
type PoolRepository interface {
	List(ctx context.Context) ([]Pool, error)
	GetByID(ctx context.Context, poolID string) (Pool, bool, error)
	AddTotal(ctx context.Context, poolID string, delta int64) (Pool, error)
}

// PositionRepository stores fan stake positions.
type PositionRepository interface {
	ListByFan(ctx context.Context, fanID string) ([]Position, error)
	ListOpen(ctx context.Context) ([]Position, error)
	GetByID(ctx context.Context, positionID string) (Position, bool, error)
	Insert(ctx context.Context, p Position) error
	// Close marks the position closed; it fails with ErrAlreadyClosed on a second call.
	Close(ctx context.Context, positionID string, closed Position) error
}
