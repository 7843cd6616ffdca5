package core

import (
	"fmt"
	"slices"
	"testing"
)

// Creates numGroups ranked groups of groupSize teams.
// The team ids are "<group><place>" (e.g. "B3") and the
// points of a team are lower the worse the place and
// the later the group.
func rankedGroups(numGroups, groupSize int) [][]GroupRankedEntry {
	groups := make([][]GroupRankedEntry, 0, numGroups)
	for g := range numGroups {
		groups = append(groups, rankedGroup(g, groupSize))
	}
	return groups
}

func rankedGroup(g, groupSize int) []GroupRankedEntry {
	label := string(rune('A' + g))
	rows := make([]TeamStanding, 0, groupSize)
	for place := range groupSize {
		id := fmt.Sprintf("%v%d", label, place+1)
		points := 100 - 10*place - g
		rows = append(rows, newStanding(id, label, points, 0, 0, 0))
	}
	return RankStandings(rows)
}

func containsTeam(entries []GroupRankedEntry, id string) bool {
	return slices.ContainsFunc(entries, func(e GroupRankedEntry) bool { return e.TeamId == id })
}

func assertPartition(t *testing.T, groups [][]GroupRankedEntry, cohort SeedingCohort) {
	t.Helper()

	numTeams := 0
	for _, g := range groups {
		numTeams += len(g)
		for _, e := range g {
			inUpper := containsTeam(cohort.Upper, e.TeamId)
			inLower := containsTeam(cohort.Lower, e.TeamId)
			if inUpper == inLower {
				t.Fatalf("Team %v is not in exactly one of the cohorts", e.TeamId)
			}
		}
	}

	if len(cohort.Upper)+len(cohort.Lower) != numTeams {
		t.Fatal("The cohorts do not contain every team exactly once")
	}
}

func assertSorted(t *testing.T, entries []GroupRankedEntry) {
	t.Helper()

	sorted := slices.IsSortedFunc(entries, func(a, b GroupRankedEntry) int {
		return CompareStandings(&a.TeamStanding, &b.TeamStanding)
	})
	if !sorted {
		t.Fatal("The cohort is not sorted across the groups")
	}
}

func TestStandardScheme(t *testing.T) {
	groups := rankedGroups(4, 4)
	cohort := BuildSeedingCohort(groups, SchemeStandard)

	if len(cohort.Upper) != 8 || len(cohort.Lower) != 8 {
		t.Fatalf("The standard scheme split 16 teams into %v and %v", len(cohort.Upper), len(cohort.Lower))
	}

	for _, e := range cohort.Upper {
		if e.Rank != 1 && e.Rank != 2 {
			t.Fatal("A team below the 2nd place got into the upper cohort")
		}
	}

	assertPartition(t, groups, cohort)
	assertSorted(t, cohort.Upper)
	assertSorted(t, cohort.Lower)

	expected := []string{"A1", "B1", "C1", "D1", "A2", "B2", "C2", "D2"}
	if !slices.Equal(rankedIds(cohort.Upper), expected) {
		t.Fatalf("The upper cohort is ordered as %v", rankedIds(cohort.Upper))
	}
}

func TestExtendedScheme(t *testing.T) {
	groups := rankedGroups(6, 4)
	cohort := BuildSeedingCohort(groups, SchemeExtended)

	if len(cohort.Upper) != 16 || len(cohort.Lower) != 8 {
		t.Fatalf("The extended scheme split 24 teams into %v and %v", len(cohort.Upper), len(cohort.Lower))
	}

	assertPartition(t, groups, cohort)
	assertSorted(t, cohort.Upper)
	assertSorted(t, cohort.Lower)

	for _, id := range []string{"A3", "B3", "C3", "D3"} {
		if !containsTeam(cohort.Upper, id) {
			t.Fatalf("The best 3rd place %v did not get into the upper cohort", id)
		}
	}
	for _, id := range []string{"E3", "F3"} {
		if !containsTeam(cohort.Lower, id) {
			t.Fatalf("The 3rd place %v got into the upper cohort", id)
		}
	}

	numFourths := 0
	for _, e := range cohort.Lower {
		if e.Rank == 4 {
			numFourths += 1
		}
	}
	if numFourths != 6 {
		t.Fatal("Not all 4th places are in the lower cohort")
	}
}

func TestExtendedSchemeManualRankAmongThirds(t *testing.T) {
	groups := rankedGroups(6, 4)

	// Give the worst 3rd place a manual rank. It takes precedence
	// in the cross-group comparison of the 3rd places.
	f3 := &groups[5][2]
	f3.ManualRank = 3

	cohort := BuildSeedingCohort(groups, SchemeExtended)

	if !containsTeam(cohort.Upper, "F3") {
		t.Fatal("The manually ranked 3rd place did not get into the upper cohort")
	}
	if !containsTeam(cohort.Lower, "D3") {
		t.Fatal("The manually ranked 3rd place did not push out the 4th best 3rd place")
	}
}

func TestUnevenGroups(t *testing.T) {
	groups := rankedGroups(3, 4)
	groups[2] = groups[2][:3]
	groups = append(groups, rankedGroup(3, 5))

	cohort := BuildSeedingCohort(groups, SchemeStandard)
	if len(cohort.Upper) != 8 || len(cohort.Lower) != 8 {
		t.Fatal("The uneven groups were not split by their rank labels")
	}
	assertPartition(t, groups, cohort)

	cohort = BuildSeedingCohort(groups[:2], SchemeExtended)
	if len(cohort.Upper) != 6 || len(cohort.Lower) != 2 {
		t.Fatal("Fewer 3rd places than best-third slots were not all moved up")
	}
	assertPartition(t, groups[:2], cohort)
}

func TestEmptyCohort(t *testing.T) {
	cohort := BuildSeedingCohort(nil, SchemeStandard)
	if len(cohort.Upper) != 0 || len(cohort.Lower) != 0 {
		t.Fatal("Zero groups did not produce an empty cohort")
	}

	cohort = BuildSeedingCohort([][]GroupRankedEntry{}, SchemeExtended)
	if len(cohort.Upper) != 0 || len(cohort.Lower) != 0 {
		t.Fatal("Zero groups did not produce an empty cohort")
	}
}

func TestTournamentConfig(t *testing.T) {
	config := NewTournamentConfig("MD Open", "XD")

	if config.SchemeFor("md open") != SchemeExtended || config.SchemeFor(" XD ") != SchemeExtended {
		t.Fatal("The configured categories did not map to the extended scheme")
	}
	if config.SchemeFor("WS") != SchemeStandard {
		t.Fatal("An unconfigured category did not default to the standard scheme")
	}

	groups := make([]GroupStandings, 0, 6)
	for _, g := range rankedGroups(6, 4) {
		rows := make([]TeamStanding, 0, len(g))
		// Reverse to check that the config ranks the rows itself
		for _, e := range slices.Backward(g) {
			e.TeamStanding.Group = ""
			rows = append(rows, e.TeamStanding)
		}
		groups = append(groups, GroupStandings{Group: g[0].Group, Rows: rows})
	}

	cohort := config.SeedingCohort("XD", groups)
	if len(cohort.Upper) != 16 || len(cohort.Lower) != 8 {
		t.Fatal("The config did not apply the extended scheme")
	}
	if cohort.Upper[0].Group != "A" {
		t.Fatal("The group label was not carried into the ranked entries")
	}

	cohort = config.SeedingCohort("WS", groups)
	if len(cohort.Upper) != 12 || len(cohort.Lower) != 12 {
		t.Fatal("The config did not apply the standard scheme")
	}

	config.BestThirdCount = 2
	cohort = config.SeedingCohort("XD", groups)
	if len(cohort.Upper) != 14 {
		t.Fatal("The configured best-third count was not used")
	}
}
