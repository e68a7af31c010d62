package leaguetable

import "fmt"

// AllFilter disables the league or city filter.
const AllFilter = "all"

// Team is one row of the amateur football league table.
type Team struct {
	ID           string
	Name         string
	League       string
	Division     string
	City         string
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
}

func (t Team) Played() int {
	return t.Won + t.Drawn + t.Lost
}

func (t Team) Points() int {
	return 3*t.Won + t.Drawn
}

func (t Team) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.League == "" {
		return fmt.Errorf("team league is required")
	}
	if t.Won < 0 || t.Drawn < 0 || t.Lost < 0 || t.GoalsFor < 0 || t.GoalsAgainst < 0 {
		return fmt.Errorf("team %s has negative tallies", t.ID)
	}

	return nil
}

// Standing is a team with its table position.
type Standing struct {
	Position int
	Team     Team
}

// Filter narrows the table. Empty fields or AllFilter match everything.
type Filter struct {
	Search string
	League string
	City   string
}
