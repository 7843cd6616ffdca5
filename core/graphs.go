// This file contains a thin wrapper around the graph module
// for linking the matches of a bracket into a tree.
package core

import (
	"cmp"
	"slices"

	"github.com/dominikbraun/graph"
)

func getMatchId(m BracketMatch) string {
	return m.Id
}

type matchPosition struct {
	round, side, index int
}

func (p matchPosition) compare(o matchPosition) int {
	if c := cmp.Compare(p.round, o.round); c != 0 {
		return c
	}
	if c := cmp.Compare(p.side, o.side); c != 0 {
		return c
	}
	return cmp.Compare(p.index, o.index)
}

// The BracketTree has all matches of a knockout bracket as its
// nodes. The directed edges model the path that the winners
// take towards the final like a conventional tournament tree.
//
// Match i of a side advances into match i/2 of the same side
// in the following round. All matches of the round before the
// final advance into the final.
type BracketTree struct {
	graph.Graph[string, BracketMatch]

	positions    map[string]matchPosition
	adjacencyMap map[string]map[string]graph.Edge[string]
	predecessors map[string]map[string]graph.Edge[string]
}

// Builds the tree of the given rounds. The rounds are expected
// in progression order like [SynthesizeBracketRounds] returns them.
func NewBracketTree(rounds []RoundStructure) *BracketTree {
	tree := &BracketTree{
		Graph:     graph.New(getMatchId, graph.Directed(), graph.Acyclic()),
		positions: make(map[string]matchPosition),
	}

	for roundIndex, round := range rounds {
		for _, side := range []BracketSide{SideTop, SideBottom, SideNone} {
			for i, m := range round.Side(side) {
				if err := tree.AddVertex(m); err != nil {
					continue
				}
				tree.positions[m.Id] = matchPosition{roundIndex, int(side), i}
			}
		}
	}

	for i := 1; i < len(rounds); i += 1 {
		tree.linkRounds(&rounds[i-1], &rounds[i])
	}

	tree.adjacencyMap, _ = tree.Graph.AdjacencyMap()
	tree.predecessors, _ = tree.Graph.PredecessorMap()

	return tree
}

func (t *BracketTree) linkRounds(round, following *RoundStructure) {
	if following.Round == Final {
		finals := slices.Concat(following.Unknown, following.Top, following.Bottom)
		if len(finals) == 0 {
			return
		}
		for _, side := range []BracketSide{SideTop, SideBottom, SideNone} {
			for _, m := range round.Side(side) {
				_ = t.AddEdge(m.Id, finals[0].Id)
			}
		}
		return
	}

	for _, side := range []BracketSide{SideTop, SideBottom, SideNone} {
		matches := round.Side(side)
		followingMatches := following.Side(side)
		for i, m := range matches {
			next := i / 2
			if next >= len(followingMatches) {
				continue
			}
			_ = t.AddEdge(m.Id, followingMatches[next].Id)
		}
	}
}

// Returns the match that the winner of the given match advances to.
// The second return value is false for the final or unknown ids.
func (t *BracketTree) Successor(id string) (BracketMatch, bool) {
	for target := range t.adjacencyMap[id] {
		m, err := t.Vertex(target)
		return m, err == nil
	}
	return BracketMatch{}, false
}

// Returns the matches whose winners advance into the given match
// ordered by their position in the bracket.
func (t *BracketTree) Feeders(id string) []BracketMatch {
	inEdges := t.predecessors[id]
	feeders := make([]BracketMatch, 0, len(inEdges))
	for source := range inEdges {
		m, err := t.Vertex(source)
		if err == nil {
			feeders = append(feeders, m)
		}
	}

	slices.SortFunc(feeders, func(a, b BracketMatch) int {
		return t.positions[a.Id].compare(t.positions[b.Id])
	})

	return feeders
}

// Returns the matches from the given one up to the final
func (t *BracketTree) PathToFinal(id string) []BracketMatch {
	start, err := t.Vertex(id)
	if err != nil {
		return nil
	}

	path := []BracketMatch{start}
	for next, ok := t.Successor(id); ok; next, ok = t.Successor(next.Id) {
		path = append(path, next)
	}
	return path
}

// Returns all matches ordered by round, side and index
func (t *BracketTree) Matches() []BracketMatch {
	ids := make([]string, 0, len(t.positions))
	for id := range t.positions {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int { return t.positions[a].compare(t.positions[b]) })

	matches := make([]BracketMatch, 0, len(ids))
	for _, id := range ids {
		m, _ := t.Vertex(id)
		matches = append(matches, m)
	}
	return matches
}
