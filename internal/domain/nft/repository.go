package nft

import "context"

// Repository describes marketplace persistence needs from use cases.
type Repository interface {
	Query(ctx context.Context, q Query) ([]NFT, int, error)
	GetByID(ctx context.Context, nftID string) (NFT, bool, error)
	Insert(ctx context.Context, item NFT) error
	// Update applies fn to the stored item under the repository lock.
	Update(ctx context.Context, nftID string, fn func(*NFT) error) (NFT, error)
}
