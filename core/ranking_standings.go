package core

import (
	"cmp"
	"math"
	"slices"
)

// Compares two standings for ranking purposes.
// A negative result means a ranks before b.
//
// The comparison operates in this order:
//   - Manual rank, ascending. A team without manual
//     rank is placed after every manually ranked team
//   - Points, descending
//   - Set difference, descending
//   - Score difference, descending
//   - Score for (points scored), descending
//   - Display name, ascending
//   - Team ID, ascending
//
// The first criterion that is not equal decides.
func CompareStandings(a, b *TeamStanding) int {
	if a.HasManualRank() || b.HasManualRank() {
		if c := cmp.Compare(effectiveManualRank(a), effectiveManualRank(b)); c != 0 {
			return c
		}
	}

	metrics := []func(s *TeamStanding) int{
		func(s *TeamStanding) int { return s.Points },
		func(s *TeamStanding) int { return s.SetDiff },
		func(s *TeamStanding) int { return s.ScoreDiff },
		func(s *TeamStanding) int { return s.ScoreFor },
	}
	for _, getter := range metrics {
		if c := cmp.Compare(getter(b), getter(a)); c != 0 {
			return c
		}
	}

	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}

	return cmp.Compare(a.TeamId, b.TeamId)
}

func effectiveManualRank(s *TeamStanding) int {
	if !s.HasManualRank() {
		return math.MaxInt
	}
	return s.ManualRank
}

// Ranks the standings of one group.
//
// The returned entries are ordered by [CompareStandings]
// and carry their 1-based position as Rank.
// The input is not modified.
func RankStandings(rows []TeamStanding) []GroupRankedEntry {
	sorted := slices.Clone(rows)
	slices.SortFunc(sorted, func(a, b TeamStanding) int { return CompareStandings(&a, &b) })

	ranked := make([]GroupRankedEntry, 0, len(sorted))
	for i, s := range sorted {
		ranked = append(ranked, GroupRankedEntry{TeamStanding: s, Rank: i + 1})
	}

	return ranked
}

// Sorts ranked entries from different groups against each
// other using [CompareStandings]. The group-local Rank of
// the entries is kept as is.
func sortAcrossGroups(entries []GroupRankedEntry) {
	slices.SortFunc(entries, func(a, b GroupRankedEntry) int {
		return CompareStandings(&a.TeamStanding, &b.TeamStanding)
	})
}
