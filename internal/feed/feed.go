// Package feed decodes the JSON exports of the tournament API
// into the core types. Team references are resolved and scores
// are validated here so the core never deals with raw shapes.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/sirupsen/logrus"

	"github.com/ezBadminton/bracketdesk/badminton"
	"github.com/ezBadminton/bracketdesk/core"
)

var ErrMalformed = errors.New("malformed feed")

type standingRow struct {
	Team       json.RawMessage `json:"team"`
	TeamId     string          `json:"teamId"`
	TeamName   string          `json:"teamName"`
	Group      string          `json:"group"`
	Points     int             `json:"points"`
	Wins       int             `json:"wins"`
	Losses     int             `json:"losses"`
	Draws      int             `json:"draws"`
	ScoreFor   int             `json:"scoreFor"`
	ScoreAg    int             `json:"scoreAgainst"`
	ScoreDiff  *int            `json:"scoreDiff"`
	SetsFor    int             `json:"setsFor"`
	SetsAg     int             `json:"setsAgainst"`
	SetsDiff   *int            `json:"setsDiff"`
	ManualRank int             `json:"manualRank"`
}

type standingsResponse struct {
	Category  string        `json:"category"`
	Standings []standingRow `json:"standings"`
}

type matchRow struct {
	MatchNo     int             `json:"matchNo"`
	Group       string          `json:"group"`
	Round       string          `json:"round"`
	BracketSide string          `json:"bracketSide"`
	Team1       json.RawMessage `json:"team1"`
	Team2       json.RawMessage `json:"team2"`
	Status      string          `json:"status"`
	Court       string          `json:"court"`
	ScheduledAt string          `json:"scheduledAt"`
	Sets        []core.SetScore `json:"sets"`
}

type matchesResponse struct {
	Category string     `json:"category"`
	Matches  []matchRow `json:"matches"`
}

// The standings of one category grouped by group label
type CategoryStandings struct {
	Category string
	Groups   []core.GroupStandings
}

// The matches of one category split by stage
type CategoryMatches struct {
	Category string
	Group    []core.GroupMatchRecord
	Knockout []core.KnockoutMatchRecord
}

// Converts the group matches into standings
func (m *CategoryMatches) Standings(points core.PointsConfig) CategoryStandings {
	return CategoryStandings{
		Category: m.Category,
		Groups:   core.StandingsFromMatches(m.Group, points),
	}
}

type Decoder struct {
	settings badminton.Settings
	log      logrus.FieldLogger
}

func NewDecoder(settings badminton.Settings, log logrus.FieldLogger) *Decoder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Decoder{settings: settings, log: log}
}

// Decodes a list of standings-by-category responses
func (d *Decoder) DecodeStandings(r io.Reader) ([]CategoryStandings, error) {
	var responses []standingsResponse
	if err := json.NewDecoder(r).Decode(&responses); err != nil {
		return nil, fmt.Errorf("%w: standings: %w", ErrMalformed, err)
	}

	categories := make([]CategoryStandings, 0, len(responses))
	for _, response := range responses {
		log := d.log.WithField("category", response.Category)

		groups := make(map[string][]core.TeamStanding)
		labels := make([]string, 0, 8)
		for _, row := range response.Standings {
			standing, err := convertStanding(row)
			if err != nil {
				return nil, fmt.Errorf("category %v: %w", response.Category, err)
			}
			if standing.TeamId == "" {
				log.WithField("group", standing.Group).Warn("standing without team id")
			}
			if _, ok := groups[standing.Group]; !ok {
				labels = append(labels, standing.Group)
			}
			groups[standing.Group] = append(groups[standing.Group], standing)
		}

		labels = pie.Sort(labels)
		category := CategoryStandings{
			Category: response.Category,
			Groups: pie.Map(labels, func(label string) core.GroupStandings {
				return core.GroupStandings{Group: label, Rows: groups[label]}
			}),
		}
		log.WithField("groups", len(category.Groups)).Debug("decoded standings")

		categories = append(categories, category)
	}

	return categories, nil
}

func convertStanding(row standingRow) (core.TeamStanding, error) {
	ref, err := decodeTeamRef(row.Team)
	if err != nil {
		return core.TeamStanding{}, err
	}

	standing := core.TeamStanding{
		TeamId:       row.TeamId,
		Name:         row.TeamName,
		Group:        strings.TrimSpace(row.Group),
		Points:       row.Points,
		Wins:         row.Wins,
		Losses:       row.Losses,
		Draws:        row.Draws,
		ScoreFor:     row.ScoreFor,
		ScoreAgainst: row.ScoreAg,
		SetsFor:      row.SetsFor,
		SetsAgainst:  row.SetsAg,
		ManualRank:   row.ManualRank,
	}
	if ref != nil {
		if standing.TeamId == "" {
			standing.TeamId = ref.Id()
		}
		if standing.Name == "" {
			standing.Name = ref.DisplayName()
		}
	}

	standing.UpdateDifferences()
	if row.ScoreDiff != nil {
		standing.ScoreDiff = *row.ScoreDiff
	}
	if row.SetsDiff != nil {
		standing.SetDiff = *row.SetsDiff
	}

	return standing, nil
}

// Decodes a list of matches-by-filter responses.
// Matches with a round code are knockout matches, all
// others are group matches.
func (d *Decoder) DecodeMatches(r io.Reader) ([]CategoryMatches, error) {
	var responses []matchesResponse
	if err := json.NewDecoder(r).Decode(&responses); err != nil {
		return nil, fmt.Errorf("%w: matches: %w", ErrMalformed, err)
	}

	categories := make([]CategoryMatches, 0, len(responses))
	for _, response := range responses {
		category := CategoryMatches{Category: response.Category}

		for _, row := range response.Matches {
			fields := logrus.Fields{
				"category": response.Category,
				"matchNo":  row.MatchNo,
			}
			if row.Round != "" {
				fields["round"] = row.Round
			}
			log := d.log.WithFields(fields)

			team1, err := decodeTeamRef(row.Team1)
			if err != nil {
				return nil, fmt.Errorf("category %v match %v: %w", response.Category, row.MatchNo, err)
			}
			team2, err := decodeTeamRef(row.Team2)
			if err != nil {
				return nil, fmt.Errorf("category %v match %v: %w", response.Category, row.MatchNo, err)
			}

			status := core.ParseMatchStatus(row.Status)
			score := d.validateScore(row.Sets, log)

			if strings.TrimSpace(row.Round) == "" {
				category.Group = append(category.Group, core.GroupMatchRecord{
					MatchNo: row.MatchNo,
					Group:   strings.TrimSpace(row.Group),
					Team1:   team1,
					Team2:   team2,
					Status:  status,
					Sets:    row.Sets,
					Score:   score,
				})
				continue
			}

			round, err := core.ParseRoundCode(row.Round)
			if err != nil {
				log.Warn("skipping match with unknown round")
				continue
			}

			category.Knockout = append(category.Knockout, core.KnockoutMatchRecord{
				MatchNo:     row.MatchNo,
				Round:       round,
				Side:        core.ParseBracketSide(row.BracketSide),
				Team1:       team1,
				Team2:       team2,
				Status:      status,
				Court:       row.Court,
				ScheduledAt: parseTime(row.ScheduledAt, log),
				Sets:        row.Sets,
				Score:       score,
			})
		}

		d.log.WithFields(logrus.Fields{
			"category": response.Category,
			"group":    len(category.Group),
			"knockout": len(category.Knockout),
		}).Debug("decoded matches")

		categories = append(categories, category)
	}

	return categories, nil
}

// Returns the validated score or nil when the sets are empty
// or break the score settings
func (d *Decoder) validateScore(sets []core.SetScore, log logrus.FieldLogger) core.Score {
	if len(sets) == 0 {
		return nil
	}
	score, err := badminton.NewScore(sets, d.settings)
	if err != nil {
		log.WithError(err).Warn("ignoring invalid score")
		return nil
	}
	return score
}

func parseTime(value string, log logrus.FieldLogger) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.WithError(err).Warn("ignoring invalid schedule time")
		return time.Time{}
	}
	return t
}
