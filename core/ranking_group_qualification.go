package core

import (
	"slices"
	"strings"

	"github.com/elliotchance/pie/v2"
)

// The number of 3rd placed teams that join the upper
// cohort under the extended scheme
const DefaultBestThirdCount = 4

// A QualificationScheme decides how the ranked teams of
// a category's groups are split into the upper and lower
// knockout cohorts.
type QualificationScheme int

const (
	// The 1st and 2nd of every group go to the upper cohort,
	// everyone else to the lower cohort
	SchemeStandard QualificationScheme = iota

	// Like SchemeStandard but the best 3rd placed teams across
	// all groups also go to the upper cohort
	SchemeExtended
)

func (s QualificationScheme) String() string {
	switch s {
	case SchemeExtended:
		return "extended"
	default:
		return "standard"
	}
}

// The upper and lower knockout cohorts of one category
type SeedingCohort struct {
	Upper []GroupRankedEntry
	Lower []GroupRankedEntry
}

// Splits the ranked groups of a category into the upper and lower
// cohort according to the scheme.
//
// The split only looks at the group-local Rank of each entry so it
// works for any number of groups and uneven group sizes.
// Both cohorts are sorted across groups by [CompareStandings].
func BuildSeedingCohort(groupedRankings [][]GroupRankedEntry, scheme QualificationScheme) SeedingCohort {
	return buildSeedingCohort(groupedRankings, scheme, DefaultBestThirdCount)
}

func buildSeedingCohort(
	groupedRankings [][]GroupRankedEntry,
	scheme QualificationScheme,
	bestThirdCount int,
) SeedingCohort {
	entries := slices.Concat(groupedRankings...)

	upper := pie.Filter(entries, func(e GroupRankedEntry) bool { return isTopTwo(e) })
	lower := pie.Filter(entries, func(e GroupRankedEntry) bool { return !isTopTwo(e) })

	if scheme == SchemeExtended {
		thirds := pie.Filter(lower, func(e GroupRankedEntry) bool { return e.Rank == 3 })
		sortAcrossGroups(thirds)

		numBest := min(bestThirdCount, len(thirds))
		bestThirds := thirds[:numBest]

		upper = append(upper, bestThirds...)
		lower = slices.DeleteFunc(lower, func(e GroupRankedEntry) bool {
			return slices.ContainsFunc(bestThirds, func(b GroupRankedEntry) bool { return sameEntry(e, b) })
		})
	}

	sortAcrossGroups(upper)
	sortAcrossGroups(lower)

	return SeedingCohort{Upper: upper, Lower: lower}
}

func isTopTwo(e GroupRankedEntry) bool {
	return e.Rank == 1 || e.Rank == 2
}

func sameEntry(a, b GroupRankedEntry) bool {
	return a.TeamId == b.TeamId && a.Group == b.Group
}

// Points awarded per group match result
type PointsConfig struct {
	Win, Draw, Loss int
}

// The default 2 points for a win, 1 for a draw and 0 for a loss
var DefaultPoints = PointsConfig{Win: 2, Draw: 1, Loss: 0}

// The tournament configuration that the seeding depends on.
// It is passed explicitly to every operation that needs it.
type TournamentConfig struct {
	// Names of the categories that use SchemeExtended.
	// All other categories use SchemeStandard.
	ExtendedCategories []string

	// How many 3rd placed teams join the upper cohort under
	// SchemeExtended. Zero means DefaultBestThirdCount.
	BestThirdCount int

	Points PointsConfig
}

func NewTournamentConfig(extendedCategories ...string) TournamentConfig {
	return TournamentConfig{
		ExtendedCategories: extendedCategories,
		BestThirdCount:     DefaultBestThirdCount,
		Points:             DefaultPoints,
	}
}

// Returns the qualification scheme of the category.
// Category names are compared case-insensitively.
func (c TournamentConfig) SchemeFor(category string) QualificationScheme {
	for _, extended := range c.ExtendedCategories {
		if strings.EqualFold(strings.TrimSpace(extended), strings.TrimSpace(category)) {
			return SchemeExtended
		}
	}
	return SchemeStandard
}

// Ranks each group of standings with [RankStandings]
func (c TournamentConfig) RankGroups(groups []GroupStandings) [][]GroupRankedEntry {
	ranked := make([][]GroupRankedEntry, 0, len(groups))
	for _, g := range groups {
		rows := slices.Clone(g.Rows)
		for i := range rows {
			if rows[i].Group == "" {
				rows[i].Group = g.Group
			}
		}
		ranked = append(ranked, RankStandings(rows))
	}
	return ranked
}

// Ranks the groups of the category and splits them into
// the cohorts using the category's scheme
func (c TournamentConfig) SeedingCohort(category string, groups []GroupStandings) SeedingCohort {
	bestThirdCount := c.BestThirdCount
	if bestThirdCount <= 0 {
		bestThirdCount = DefaultBestThirdCount
	}
	return buildSeedingCohort(c.RankGroups(groups), c.SchemeFor(category), bestThirdCount)
}
