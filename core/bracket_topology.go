package core

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// A BracketMatch is one match slot in a drawn bracket tree.
// It is either backed by a real match record or it is a
// placeholder for a match that does not exist yet.
type BracketMatch struct {
	Id          string
	Placeholder bool

	// The live match or nil for placeholders
	Record *KnockoutMatchRecord
}

func newRecordMatch(record *KnockoutMatchRecord) BracketMatch {
	return BracketMatch{
		Id:     fmt.Sprintf("match-%d", record.MatchNo),
		Record: record,
	}
}

// Matches with a zero or repeated match number get an id
// from their round, side and position instead
func assignFallbackIds(matches []BracketMatch, round RoundCode, side BracketSide, seen map[int]bool) {
	for i := range matches {
		no := matches[i].Record.MatchNo
		if no != 0 && !seen[no] {
			seen[no] = true
			continue
		}
		matches[i].Id = fmt.Sprintf(
			"match-%v-%v-%d",
			strings.ToLower(round.String()),
			strings.ToLower(side.String()),
			i,
		)
	}
}

func newPlaceholderMatch(round RoundCode, side BracketSide, index int) BracketMatch {
	id := fmt.Sprintf(
		"placeholder-%v-%v-%d",
		strings.ToLower(round.String()),
		strings.ToLower(side.String()),
		index,
	)
	return BracketMatch{Id: id, Placeholder: true}
}

// A RoundStructure holds the matches of one knockout round
// split by bracket side. Only the final uses the Unknown list.
type RoundStructure struct {
	Round   RoundCode
	Top     []BracketMatch
	Bottom  []BracketMatch
	Unknown []BracketMatch
}

// Returns the matches of the given side
func (r *RoundStructure) Side(side BracketSide) []BracketMatch {
	switch side {
	case SideTop:
		return r.Top
	case SideBottom:
		return r.Bottom
	default:
		return r.Unknown
	}
}

func (r *RoundStructure) NumMatches() int {
	return len(r.Top) + len(r.Bottom) + len(r.Unknown)
}

// Groups live knockout matches into round structures.
//
// The matches are grouped by round code and split by their side.
// Matches without a side end up in the Unknown list.
// The rounds are returned in progression order and the matches
// of each side are ordered by their match number.
func GroupKnockoutRounds(records []KnockoutMatchRecord) []RoundStructure {
	byRound := make(map[RoundCode]*RoundStructure)

	for i := range records {
		record := &records[i]
		if !record.Round.Valid() {
			continue
		}
		round, ok := byRound[record.Round]
		if !ok {
			round = &RoundStructure{Round: record.Round}
			byRound[record.Round] = round
		}

		match := newRecordMatch(record)
		switch record.Side {
		case SideTop:
			round.Top = append(round.Top, match)
		case SideBottom:
			round.Bottom = append(round.Bottom, match)
		default:
			round.Unknown = append(round.Unknown, match)
		}
	}

	byMatchNo := func(a, b BracketMatch) int { return cmp.Compare(a.Record.MatchNo, b.Record.MatchNo) }

	seen := make(map[int]bool)
	rounds := make([]RoundStructure, 0, len(byRound))
	for _, code := range RoundProgression() {
		round, ok := byRound[code]
		if !ok {
			continue
		}
		for _, side := range []BracketSide{SideTop, SideBottom, SideNone} {
			matches := round.Side(side)
			slices.SortStableFunc(matches, byMatchNo)
			assignFallbackIds(matches, code, side, seen)
		}
		rounds = append(rounds, *round)
	}

	return rounds
}

// Extends the known rounds of a bracket with placeholder rounds
// up to and including the final.
//
// Starting after the earliest known round every round that is not
// known gets ceil(n/2) placeholder matches per side where n is the
// number of matches on that side in the previous round.
// The final always gets exactly one side-less placeholder match.
//
// Known rounds are kept as they are. Calling this on an already
// complete bracket returns the same rounds.
func SynthesizeBracketRounds(knownRounds []RoundStructure) []RoundStructure {
	if len(knownRounds) == 0 {
		return []RoundStructure{}
	}

	known := make(map[RoundCode]RoundStructure, len(knownRounds))
	anchor := Final
	for _, r := range knownRounds {
		if !r.Round.Valid() {
			continue
		}
		anchor = min(anchor, r.Round)
		if existing, ok := known[r.Round]; ok {
			r = mergeRounds(existing, r)
		}
		known[r.Round] = r
	}
	if len(known) == 0 {
		return []RoundStructure{}
	}

	rounds := make([]RoundStructure, 0, len(RoundProgression()))
	rounds = append(rounds, known[anchor])

	for code, ok := anchor.Next(); ok; code, ok = code.Next() {
		if r, isKnown := known[code]; isKnown {
			rounds = append(rounds, r)
			continue
		}

		previous := rounds[len(rounds)-1]
		rounds = append(rounds, synthesizeRound(code, previous))
	}

	return rounds
}

func synthesizeRound(code RoundCode, previous RoundStructure) RoundStructure {
	round := RoundStructure{Round: code}

	if code == Final {
		round.Unknown = []BracketMatch{newPlaceholderMatch(code, SideNone, 0)}
		return round
	}

	round.Top = placeholderMatches(code, SideTop, halveUp(len(previous.Top)))
	round.Bottom = placeholderMatches(code, SideBottom, halveUp(len(previous.Bottom)))

	return round
}

func placeholderMatches(code RoundCode, side BracketSide, num int) []BracketMatch {
	matches := make([]BracketMatch, 0, num)
	for i := range num {
		matches = append(matches, newPlaceholderMatch(code, side, i))
	}
	return matches
}

func mergeRounds(a, b RoundStructure) RoundStructure {
	return RoundStructure{
		Round:   a.Round,
		Top:     slices.Concat(a.Top, b.Top),
		Bottom:  slices.Concat(a.Bottom, b.Bottom),
		Unknown: slices.Concat(a.Unknown, b.Unknown),
	}
}

// Returns ceil(n/2)
func halveUp(n int) int {
	return (n + 1) / 2
}
