package nft

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const DefaultSeedCount = 350

var (
	collections = []string{"Stadium Legends", "Golden Boots", "Derby Moments", "Ultras Banners", "BONK Kits"}
	subjects    = []string{"Striker", "Keeper", "Captain", "Winger", "Playmaker", "Ultra", "Mascot", "Coach"}
	moods       = []string{"Thunder", "Midnight", "Neon", "Classic", "Rainy Derby", "Final Whistle", "Golden Hour"}
)

type rarityBand struct {
	rarity   Rarity
	weight   int
	minPrice int64
	maxPrice int64
}

var bands = []rarityBand{
	{rarity: RarityCommon, weight: 60, minPrice: 500, maxPrice: 5_000},
	{rarity: RarityRare, weight: 25, minPrice: 5_000, maxPrice: 25_000},
	{rarity: RarityEpic, weight: 10, minPrice: 25_000, maxPrice: 100_000},
	{rarity: RarityLegendary, weight: 5, minPrice: 100_000, maxPrice: 1_000_000},
}

// Generate builds count placeholder NFTs. The same seed always yields the same set.
func Generate(count int, seed uint64, base time.Time) []NFT {
	if count <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	out := make([]NFT, 0, count)
	for i := 0; i < count; i++ {
		band := pickBand(rng)
		out = append(out, NFT{
			ID:         fmt.Sprintf("nft-%04d", i+1),
			Title:      fmt.Sprintf("%s %s #%d", moods[rng.IntN(len(moods))], subjects[rng.IntN(len(subjects))], i+1),
			Collection: collections[rng.IntN(len(collections))],
			Rarity:     band.rarity,
			Price:      band.minPrice + rng.Int64N(band.maxPrice-band.minPrice+1),
			Likes:      rng.Int64N(5_000),
			Views:      rng.Int64N(50_000),
			OwnerID:    MarketplaceOwner,
			Listed:     true,
			MintedAt:   base.Add(-time.Duration(count-i) * time.Hour).UTC(),
		})
	}
	return out
}

func pickBand(rng *rand.Rand) rarityBand {
	total := 0
	for _, b := range bands {
		total += b.weight
	}
	roll := rng.IntN(total)
	for _, b := range bands {
		if roll < b.weight {
			return b
		}
		roll -= b.weight
	}
	return bands[0]
}
