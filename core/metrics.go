package core

import (
	"cmp"
	"errors"
	"slices"
)

var ErrUndecided = errors.New("the score has no winner")

type MatchMetrics struct {
	NumMatches int
	Wins       int
	Losses     int
	Draws      int

	NumSets   int
	SetWins   int
	SetLosses int

	PointWins   int
	PointLosses int
}

// Converts the metrics into a standing with the
// points awarded according to the points config
func (m *MatchMetrics) Standing(team TeamRef, group string, points PointsConfig) TeamStanding {
	standing := TeamStanding{
		TeamId:       team.Id(),
		Name:         team.DisplayName(),
		Group:        group,
		Points:       m.Wins*points.Win + m.Draws*points.Draw + m.Losses*points.Loss,
		Wins:         m.Wins,
		Losses:       m.Losses,
		Draws:        m.Draws,
		ScoreFor:     m.PointWins,
		ScoreAgainst: m.PointLosses,
		SetsFor:      m.SetWins,
		SetsAgainst:  m.SetLosses,
	}
	standing.UpdateDifferences()
	return standing
}

// Aggregates the completed group matches into standings.
//
// Every team that appears in one of the matches gets a standing
// even when none of its matches are completed yet.
// The returned groups are ordered by their label and the rows
// keep the order in which the teams first appeared.
func StandingsFromMatches(matches []GroupMatchRecord, points PointsConfig) []GroupStandings {
	type groupMetrics struct {
		teams   []TeamRef
		metrics map[string]*MatchMetrics
	}

	groups := make(map[string]*groupMetrics)

	for i := range matches {
		match := &matches[i]
		g, ok := groups[match.Group]
		if !ok {
			g = &groupMetrics{metrics: make(map[string]*MatchMetrics)}
			groups[match.Group] = g
		}

		for _, team := range []TeamRef{match.Team1, match.Team2} {
			if team == nil {
				continue
			}
			if _, ok := g.metrics[team.Id()]; !ok {
				g.metrics[team.Id()] = &MatchMetrics{}
				g.teams = append(g.teams, team)
				continue
			}
			if !team.Resolved() {
				continue
			}
			// A later match may carry the resolved variant of the team
			i := slices.IndexFunc(g.teams, func(r TeamRef) bool { return r.Id() == team.Id() })
			if !g.teams[i].Resolved() {
				g.teams[i] = team
			}
		}

		extractMatchMetrics(match, g.metrics)
	}

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	slices.SortFunc(labels, cmp.Compare[string])

	standings := make([]GroupStandings, 0, len(labels))
	for _, label := range labels {
		g := groups[label]
		rows := make([]TeamStanding, 0, len(g.teams))
		for _, team := range g.teams {
			rows = append(rows, g.metrics[team.Id()].Standing(team, label, points))
		}
		standings = append(standings, GroupStandings{Group: label, Rows: rows})
	}

	return standings
}

func extractMatchMetrics(match *GroupMatchRecord, metrics map[string]*MatchMetrics) {
	if match.Team1 == nil || match.Team2 == nil || !match.Completed() {
		return
	}

	m1 := metrics[match.Team1.Id()]
	m2 := metrics[match.Team2.Id()]

	score := match.Score
	score1 := score.Points1()
	score2 := score.Points2()
	if len(score1) == 0 || len(score1) != len(score2) {
		return
	}

	m1.NumMatches += 1
	m2.NumMatches += 1

	winner, err := score.GetWinner()
	switch {
	case err != nil:
		m1.Draws += 1
		m2.Draws += 1
	case winner == 0:
		m1.Wins += 1
		m2.Losses += 1
	default:
		m2.Wins += 1
		m1.Losses += 1
	}

	for i := range len(score1) {
		m1.NumSets += 1
		m2.NumSets += 1

		points1 := score1[i]
		points2 := score2[i]

		m1.PointWins += points1
		m1.PointLosses += points2
		m2.PointWins += points2
		m2.PointLosses += points1

		if points1 == points2 {
			continue
		}
		if points1 > points2 {
			m1.SetWins += 1
			m2.SetLosses += 1
		} else {
			m2.SetWins += 1
			m1.SetLosses += 1
		}
	}
}
