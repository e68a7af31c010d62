package leaguetable

import (
	"cmp"
	"slices"
	"strings"
)

// Compare orders by points desc, then goal difference desc, then goals for desc.
func Compare(a, b Team) int {
	if c := cmp.Compare(b.Points(), a.Points()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalDifference(), a.GoalDifference()); c != 0 {
		return c
	}
	return cmp.Compare(b.GoalsFor, a.GoalsFor)
}

// Sort returns a stably sorted copy; fully tied teams keep their input order.
func Sort(teams []Team) []Team {
	out := slices.Clone(teams)
	slices.SortStableFunc(out, Compare)
	return out
}

// Rank sorts the teams and assigns positions 1..n.
func Rank(teams []Team) []Standing {
	sorted := Sort(teams)
	out := make([]Standing, 0, len(sorted))
	for i, t := range sorted {
		out = append(out, Standing{Position: i + 1, Team: t})
	}
	return out
}

// Apply keeps the standings matching f. Positions are left untouched.
func Apply(standings []Standing, f Filter) []Standing {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	league := normalizeFilter(f.League)
	city := normalizeFilter(f.City)

	out := make([]Standing, 0, len(standings))
	for _, s := range standings {
		if league != "" && !strings.EqualFold(s.Team.League, league) {
			continue
		}
		if city != "" && !strings.EqualFold(s.Team.City, city) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Team.Name), search) &&
			!strings.Contains(strings.ToLower(s.Team.City), search) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Leagues lists distinct league names in first-seen order.
func Leagues(teams []Team) []string {
	return distinct(teams, func(t Team) string { return t.League })
}

// Cities lists distinct city names in first-seen order.
func Cities(teams []Team) []string {
	return distinct(teams, func(t Team) string { return t.City })
}

func distinct(teams []Team, key func(Team) string) []string {
	seen := make(map[string]struct{}, len(teams))
	out := make([]string, 0)
	for _, t := range teams {
		k := key(t)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func normalizeFilter(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, AllFilter) {
		return ""
	}
	return v
}
