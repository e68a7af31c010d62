package nft

import (
	"testing"
	"time"
)

func TestGenerate_ReproducibleForSeed(t *testing.T) {
	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	a := Generate(DefaultSeedCount, 42, base)
	b := Generate(DefaultSeedCount, 42, base)

	if len(a) != DefaultSeedCount {
		t.Fatalf("expected %d nfts, got %d", DefaultSeedCount, len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("nft %d differs between runs with the same seed: %+v vs %+v", i, a[i], b[i])
		}
	}

	c := Generate(DefaultSeedCount, 43, base)
	same := 0
	for i := range a {
		if a[i].Title == c[i].Title && a[i].Price == c[i].Price {
			same++
		}
	}
	if same == len(a) {
		t.Fatalf("different seeds produced identical sets")
	}
}

func TestGenerate_PriceRangesAndOwnership(t *testing.T) {
	items := Generate(1000, 7, time.Now())
	seen := make(map[Rarity]int)
	ids := make(map[string]struct{}, len(items))

	for _, item := range items {
		seen[item.Rarity]++
		if _, dup := ids[item.ID]; dup {
			t.Fatalf("duplicate id %s", item.ID)
		}
		ids[item.ID] = struct{}{}

		var band rarityBand
		for _, b := range bands {
			if b.rarity == item.Rarity {
				band = b
			}
		}
		if item.Price < band.minPrice || item.Price > band.maxPrice {
			t.Fatalf("price %d outside %s band [%d,%d]", item.Price, item.Rarity, band.minPrice, band.maxPrice)
		}
		if item.OwnerID != MarketplaceOwner || !item.Listed {
			t.Fatalf("seeded nft must be listed by the marketplace: %+v", item)
		}
	}

	for r := range AllRarities {
		if seen[r] == 0 {
			t.Fatalf("expected at least one %s nft in 1000 draws", r)
		}
	}
	if seen[RarityCommon] <= seen[RarityLegendary] {
		t.Fatalf("common should outnumber legendary: %v", seen)
	}
}

func TestGenerate_NonPositiveCount(t *testing.T) {
	if got := Generate(0, 1, time.Now()); got != nil {
		t.Fatalf("expected nil for zero count, got %d items", len(got))
	}
}

func TestParseSortOrder(t *testing.T) {
	if s, ok := ParseSortOrder(""); !ok || s != SortNewest {
		t.Fatalf("empty sort should default to newest")
	}
	if _, ok := ParseSortOrder("cheapest"); ok {
		t.Fatalf("unknown sort must be rejected")
	}
}
