package nft

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotListed     = errors.New("nft is not listed for sale")
	ErrAlreadyOwned  = errors.New("nft is already owned by buyer")
	ErrUnknownRarity = errors.New("unknown rarity")
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

var AllRarities = map[Rarity]struct{}{
	RarityCommon:    {},
	RarityRare:      {},
	RarityEpic:      {},
	RarityLegendary: {},
}

func ParseRarity(value string) (Rarity, bool) {
	r := Rarity(strings.ToLower(strings.TrimSpace(value)))
	_, ok := AllRarities[r]
	return r, ok
}

// MarketplaceOwner holds NFTs that have not been sold to a fan yet.
const MarketplaceOwner = "marketplace"

// NFT is a mock collectible; nothing about it lives on chain.
type NFT struct {
	ID         string
	Title      string
	Collection string
	Rarity     Rarity
	Price      int64
	Likes      int64
	Views      int64
	OwnerID    string
	Listed     bool
	MintedAt   time.Time
}

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortLikes     SortOrder = "likes"
)

func ParseSortOrder(value string) (SortOrder, bool) {
	switch s := SortOrder(strings.ToLower(strings.TrimSpace(value))); s {
	case "":
		return SortNewest, true
	case SortNewest, SortPriceAsc, SortPriceDesc, SortLikes:
		return s, true
	default:
		return "", false
	}
}

// Query narrows and orders the marketplace listing.
type Query struct {
	Rarity     Rarity
	Search     string
	ListedOnly bool
	OwnerID    string
	Sort       SortOrder
	Limit      int
	Offset     int
}
