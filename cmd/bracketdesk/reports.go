package main

import (
	"context"
	"runtime"

	"github.com/elliotchance/pie/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ezBadminton/bracketdesk/core"
	"github.com/ezBadminton/bracketdesk/internal/feed"
)

type groupRanking struct {
	Group   string                  `json:"group"`
	Entries []core.GroupRankedEntry `json:"entries"`
}

type standingsReport struct {
	Category string         `json:"category"`
	Groups   []groupRanking `json:"groups"`
}

type seedReport struct {
	Category      string             `json:"category"`
	Scheme        string             `json:"scheme"`
	Cohort        core.SeedingCohort `json:"cohort"`
	UpperPairings []core.SeedPairing `json:"upperPairings"`
	LowerPairings []core.SeedPairing `json:"lowerPairings"`
}

type treeLink struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type treeReport struct {
	Category string                `json:"category"`
	Rounds   []core.RoundStructure `json:"rounds"`
	Links    []treeLink            `json:"links"`
}

// Runs fn for every item concurrently. The results keep the
// order of the items.
func mapConcurrently[T, R any](ctx context.Context, items []T, fn func(T) (R, error)) ([]R, error) {
	results := make([]R, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := fn(item)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func buildStandingsReports(ctx context.Context, tournament core.TournamentConfig, categories []feed.CategoryStandings) ([]standingsReport, error) {
	return mapConcurrently(ctx, categories, func(c feed.CategoryStandings) (standingsReport, error) {
		ranked := tournament.RankGroups(c.Groups)
		groups := make([]groupRanking, 0, len(ranked))
		for i, entries := range ranked {
			groups = append(groups, groupRanking{Group: c.Groups[i].Group, Entries: entries})
		}
		return standingsReport{Category: c.Category, Groups: groups}, nil
	})
}

func buildSeedReports(ctx context.Context, tournament core.TournamentConfig, categories []feed.CategoryStandings) ([]seedReport, error) {
	return mapConcurrently(ctx, categories, func(c feed.CategoryStandings) (seedReport, error) {
		cohort := tournament.SeedingCohort(c.Category, c.Groups)
		return seedReport{
			Category:      c.Category,
			Scheme:        tournament.SchemeFor(c.Category).String(),
			Cohort:        cohort,
			UpperPairings: core.SeedPairings(cohort.Upper),
			LowerPairings: core.SeedPairings(cohort.Lower),
		}, nil
	})
}

func buildTreeReports(ctx context.Context, categories []feed.CategoryMatches) ([]treeReport, error) {
	return mapConcurrently(ctx, categories, func(c feed.CategoryMatches) (treeReport, error) {
		rounds := core.SynthesizeBracketRounds(core.GroupKnockoutRounds(c.Knockout))
		tree := core.NewBracketTree(rounds)

		matches := tree.Matches()
		links := make([]treeLink, 0, len(matches))
		for _, m := range matches {
			if next, ok := tree.Successor(m.Id); ok {
				links = append(links, treeLink{From: m.Id, To: next.Id})
			}
		}

		return treeReport{Category: c.Category, Rounds: rounds, Links: links}, nil
	})
}

// Derives the standings of the match feed's categories.
// Categories without group matches are left out.
func standingsFromMatches(categories []feed.CategoryMatches, points core.PointsConfig) []feed.CategoryStandings {
	withGroups := pie.Filter(categories, func(c feed.CategoryMatches) bool { return len(c.Group) > 0 })
	return pie.Map(withGroups, func(c feed.CategoryMatches) feed.CategoryStandings {
		return c.Standings(points)
	})
}
