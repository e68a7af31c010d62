package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/leaguetable"
)

type RankingResult struct {
	Standings []leaguetable.Standing
	Total     int
	Leagues   []string
	Cities    []string
}

type RankingService struct {
	teamRepo leaguetable.Repository
}

func NewRankingService(teamRepo leaguetable.Repository) *RankingService {
	return &RankingService{teamRepo: teamRepo}
}

// Table ranks every team and then applies the filter, so filtered rows keep
// their real position.
func (s *RankingService) Table(ctx context.Context, filter leaguetable.Filter) (RankingResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Table")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return RankingResult{}, fmt.Errorf("list teams: %w", err)
	}

	standings := leaguetable.Rank(teams)
	return RankingResult{
		Standings: leaguetable.Apply(standings, filter),
		Total:     len(standings),
		Leagues:   leaguetable.Leagues(teams),
		Cities:    leaguetable.Cities(teams),
	}, nil
}

func (s *RankingService) GetTeam(ctx context.Context, teamID string) (leaguetable.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return leaguetable.Standing{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return leaguetable.Standing{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return leaguetable.Standing{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return leaguetable.Standing{}, fmt.Errorf("list teams: %w", err)
	}
	for _, row := range leaguetable.Rank(teams) {
		if row.Team.ID == teamID {
			return row, nil
		}
	}
	return leaguetable.Standing{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
}
