package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/nft"
)

type NFTRepository struct {
	mu    sync.RWMutex
	items map[string]nft.NFT
	order []string
}

func NewNFTRepository(items []nft.NFT) *NFTRepository {
	r := &NFTRepository{items: make(map[string]nft.NFT, len(items))}
	for _, item := range items {
		if _, exists := r.items[item.ID]; !exists {
			r.order = append(r.order, item.ID)
		}
		r.items[item.ID] = item
	}
	return r
}

// Query returns one page of matching NFTs and the total number of matches.
func (r *NFTRepository) Query(_ context.Context, q nft.Query) ([]nft.NFT, int, error) {
	r.mu.RLock()
	search := strings.ToLower(strings.TrimSpace(q.Search))
	matched := make([]nft.NFT, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if q.Rarity != "" && item.Rarity != q.Rarity {
			continue
		}
		if q.ListedOnly && !item.Listed {
			continue
		}
		if q.OwnerID != "" && item.OwnerID != q.OwnerID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Title), search) &&
			!strings.Contains(strings.ToLower(item.Collection), search) {
			continue
		}
		matched = append(matched, item)
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch q.Sort {
		case nft.SortPriceAsc:
			return a.Price < b.Price
		case nft.SortPriceDesc:
			return a.Price > b.Price
		case nft.SortLikes:
			return a.Likes > b.Likes
		default:
			return a.MintedAt.After(b.MintedAt)
		}
	})

	total := len(matched)
	start := q.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}

	return matched[start:end], total, nil
}

func (r *NFTRepository) GetByID(_ context.Context, nftID string) (nft.NFT, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[nftID]
	return item, ok, nil
}

func (r *NFTRepository) Insert(_ context.Context, item nft.NFT) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("nft %s already exists", item.ID)
	}
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return nil
}

func (r *NFTRepository) Update(_ context.Context, nftID string, fn func(*nft.NFT) error) (nft.NFT, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[nftID]
	if !ok {
		return nft.NFT{}, fmt.Errorf("nft %s not found", nftID)
	}
	if err := fn(&item); err != nil {
		return nft.NFT{}, err
	}
	r.items[nftID] = item
	return item, nil
}
