package tier

import (
	"errors"
	"fmt"
	"slices"
)

var ErrInvalidTiers = errors.New("invalid tier list")

// Tier is a membership level unlocked at Threshold points.
type Tier struct {
	Name      string
	Threshold int64
}

// Progress is the resolved position of a point total on a tier ladder.
type Progress struct {
	Points        int64
	Current       Tier
	Next          *Tier
	Percent       float64
	PointsToNext  int64
	IsHighestTier bool
}

func DefaultTiers() []Tier {
	return []Tier{
		{Name: "Bronze", Threshold: 0},
		{Name: "Silver", Threshold: 1000},
		{Name: "Gold", Threshold: 5000},
		{Name: "Platinum", Threshold: 15000},
		{Name: "Diamond", Threshold: 50000},
	}
}

// Validate requires a non-empty ladder with strictly ascending thresholds.
func Validate(tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: at least one tier is required", ErrInvalidTiers)
	}
	for i, t := range tiers {
		if t.Name == "" {
			return fmt.Errorf("%w: tier %d has no name", ErrInvalidTiers, i)
		}
		if i > 0 && t.Threshold <= tiers[i-1].Threshold {
			return fmt.Errorf("%w: threshold %d for %s is not above %d", ErrInvalidTiers, t.Threshold, t.Name, tiers[i-1].Threshold)
		}
	}
	return nil
}

// Resolve finds the greatest threshold <= points and the progress toward the next one.
// Points below the first threshold resolve to the first tier at 0%.
func Resolve(points int64, tiers []Tier) (Progress, error) {
	if len(tiers) == 0 {
		return Progress{}, fmt.Errorf("%w: at least one tier is required", ErrInvalidTiers)
	}

	ladder := slices.Clone(tiers)
	slices.SortStableFunc(ladder, func(a, b Tier) int {
		switch {
		case a.Threshold < b.Threshold:
			return -1
		case a.Threshold > b.Threshold:
			return 1
		default:
			return 0
		}
	})
	if err := Validate(ladder); err != nil {
		return Progress{}, err
	}

	idx := 0
	for i, t := range ladder {
		if points >= t.Threshold {
			idx = i
		}
	}

	out := Progress{
		Points:  points,
		Current: ladder[idx],
	}
	if idx == len(ladder)-1 {
		out.Percent = 100
		out.IsHighestTier = true
		return out, nil
	}

	next := ladder[idx+1]
	out.Next = &next
	out.PointsToNext = next.Threshold - points
	span := float64(next.Threshold - out.Current.Threshold)
	out.Percent = clampPercent(float64(points-out.Current.Threshold) / span * 100)

	return out, nil
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
