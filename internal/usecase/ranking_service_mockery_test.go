package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/leaguetable"
	leaguetablemock "github.com/riskibarqy/bonk-fanzone/internal/mocks/domain/leaguetable"
)

func rankingTeams() []leaguetable.Team {
	return []leaguetable.Team{
		{ID: "t-herne", Name: "FC Herne", League: "Kreisliga A", City: "Herne", Won: 5, Drawn: 1, Lost: 4, GoalsFor: 20, GoalsAgainst: 18},
		{ID: "t-dortmund", Name: "SV Dortmund", League: "Kreisliga A", City: "Dortmund", Won: 8, Drawn: 0, Lost: 2, GoalsFor: 25, GoalsAgainst: 10},
		{ID: "t-bochum", Name: "VfB Bochum", League: "Kreisliga B", City: "Bochum", Won: 8, Drawn: 0, Lost: 2, GoalsFor: 22, GoalsAgainst: 7},
	}
}

func TestRankingService_TableKeepsPositionsWhenFilteredUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "trace_id", "trace-789")
	teamRepo := leaguetablemock.NewRepository(t)
	teamRepo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(rankingTeams(), nil).
		Once()

	service := NewRankingService(teamRepo)
	got, err := service.Table(ctx, leaguetable.Filter{City: "Herne", League: leaguetable.AllFilter})
	if err != nil {
		t.Fatalf("ranking table: %v", err)
	}
	if got.Total != 3 {
		t.Fatalf("total = %d, want 3", got.Total)
	}
	if len(got.Standings) != 1 {
		t.Fatalf("filtered rows = %d, want 1", len(got.Standings))
	}
	if got.Standings[0].Position != 3 || got.Standings[0].Team.ID != "t-herne" {
		t.Fatalf("unexpected row: %+v", got.Standings[0])
	}
	if len(got.Leagues) != 2 || len(got.Cities) != 3 {
		t.Fatalf("unexpected filter options: leagues=%v cities=%v", got.Leagues, got.Cities)
	}
}

func TestRankingService_TableOrdersByGoalDifferenceUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := leaguetablemock.NewRepository(t)
	teamRepo.On("List", mock.Anything).Return(rankingTeams(), nil).Once()

	got, err := NewRankingService(teamRepo).Table(context.Background(), leaguetable.Filter{})
	if err != nil {
		t.Fatalf("ranking table: %v", err)
	}
	// Dortmund and Bochum tie on points and goal difference; Dortmund scored more.
	wantOrder := []string{"t-dortmund", "t-bochum", "t-herne"}
	for i, id := range wantOrder {
		if got.Standings[i].Team.ID != id || got.Standings[i].Position != i+1 {
			t.Fatalf("row %d = %s (pos %d), want %s", i, got.Standings[i].Team.ID, got.Standings[i].Position, id)
		}
	}
}

func TestRankingService_GetTeamUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := leaguetablemock.NewRepository(t)
	teamRepo.On("GetByID", mock.Anything, "t-bochum").Return(rankingTeams()[2], true, nil).Once()
	teamRepo.On("List", mock.Anything).Return(rankingTeams(), nil).Once()
	teamRepo.On("GetByID", mock.Anything, "t-missing").Return(leaguetable.Team{}, false, nil).Once()

	service := NewRankingService(teamRepo)

	row, err := service.GetTeam(context.Background(), "t-bochum")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if row.Position != 2 {
		t.Fatalf("bochum position = %d, want 2", row.Position)
	}

	if _, err := service.GetTeam(context.Background(), "t-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
