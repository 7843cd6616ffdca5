package core

import (
	"reflect"
	"slices"
	"testing"
)

func knockoutRecords(round RoundCode, side BracketSide, firstMatchNo, num int) []KnockoutMatchRecord {
	records := make([]KnockoutMatchRecord, 0, num)
	for i := range num {
		records = append(records, KnockoutMatchRecord{
			MatchNo: firstMatchNo + i,
			Round:   round,
			Side:    side,
			Team1:   UnresolvedTeam{TeamId: "t1"},
			Team2:   UnresolvedTeam{TeamId: "t2"},
		})
	}
	return records
}

func roundCodes(rounds []RoundStructure) []RoundCode {
	codes := make([]RoundCode, 0, len(rounds))
	for _, r := range rounds {
		codes = append(codes, r.Round)
	}
	return codes
}

func TestRoundProgression(t *testing.T) {
	code := RoundOf32
	visited := []RoundCode{code}
	for next, ok := code.Next(); ok; next, ok = next.Next() {
		visited = append(visited, next)
	}

	if !slices.Equal(visited, RoundProgression()) {
		t.Fatal("The successor function did not walk the round progression")
	}

	_, ok := Final.Next()
	if ok {
		t.Fatal("The final has a successor")
	}

	for _, code := range RoundProgression() {
		parsed, err := ParseRoundCode(code.String())
		if err != nil || parsed != code {
			t.Fatalf("Round code %v did not parse back from its string", code)
		}
	}

	_, err := ParseRoundCode("R64")
	if err != ErrUnknownRound {
		t.Fatal("An unknown round code parsed without error")
	}
}

func TestGroupKnockoutRounds(t *testing.T) {
	records := slices.Concat(
		knockoutRecords(SemiFinal, SideTop, 20, 1),
		knockoutRecords(QuarterFinal, SideBottom, 12, 2),
		knockoutRecords(QuarterFinal, SideTop, 10, 2),
		knockoutRecords(Final, SideNone, 30, 1),
	)
	slices.Reverse(records)

	rounds := GroupKnockoutRounds(records)

	if !slices.Equal(roundCodes(rounds), []RoundCode{QuarterFinal, SemiFinal, Final}) {
		t.Fatal("The rounds are not in progression order")
	}

	qf := rounds[0]
	eq1 := len(qf.Top) == 2 && len(qf.Bottom) == 2 && len(qf.Unknown) == 0
	eq2 := qf.Top[0].Record.MatchNo == 10 && qf.Top[1].Record.MatchNo == 11
	eq3 := qf.Bottom[0].Record.MatchNo == 12
	if !eq1 || !eq2 || !eq3 {
		t.Fatal("The quarter-final matches were not split by side and ordered by match number")
	}

	final := rounds[2]
	if len(final.Unknown) != 1 || len(final.Top) != 0 {
		t.Fatal("The side-less final did not go into the unknown list")
	}
	if final.Unknown[0].Placeholder {
		t.Fatal("A live match was marked as placeholder")
	}
}

func TestSynthesizeHalving(t *testing.T) {
	records := slices.Concat(
		knockoutRecords(RoundOf16, SideTop, 1, 5),
		knockoutRecords(RoundOf16, SideBottom, 6, 4),
	)
	known := GroupKnockoutRounds(records)

	rounds := SynthesizeBracketRounds(known)

	expectedCodes := []RoundCode{RoundOf16, QuarterFinal, SemiFinal, Final}
	if !slices.Equal(roundCodes(rounds), expectedCodes) {
		t.Fatalf("The synthesized rounds are %v", roundCodes(rounds))
	}

	qf := rounds[1]
	if len(qf.Top) != 3 || len(qf.Bottom) != 2 {
		t.Fatal("The quarter-final sides are not ceil(n/2) of the round of 16")
	}

	sf := rounds[2]
	if len(sf.Top) != 2 || len(sf.Bottom) != 1 {
		t.Fatal("The semi-final sides are not ceil(n/2) of the quarter-final")
	}

	for _, m := range slices.Concat(qf.Top, qf.Bottom, sf.Top, sf.Bottom) {
		if !m.Placeholder || m.Record != nil {
			t.Fatal("A synthesized match is not a placeholder")
		}
	}

	if qf.Top[0].Id != "placeholder-qf-top-0" || sf.Bottom[0].Id != "placeholder-sf-bottom-0" {
		t.Fatal("The placeholder ids are not derived from round, side and index")
	}

	ids := make(map[string]bool)
	for _, r := range rounds {
		for _, m := range slices.Concat(r.Top, r.Bottom, r.Unknown) {
			if ids[m.Id] {
				t.Fatalf("The match id %v is not unique", m.Id)
			}
			ids[m.Id] = true
		}
	}
}

func TestSynthesizeFinalShape(t *testing.T) {
	for _, numSemis := range []int{0, 1, 3, 4} {
		known := []RoundStructure{{
			Round:  SemiFinal,
			Top:    placeholderMatches(SemiFinal, SideTop, numSemis),
			Bottom: placeholderMatches(SemiFinal, SideBottom, numSemis),
		}}

		rounds := SynthesizeBracketRounds(known)
		if len(rounds) != 2 {
			t.Fatal("The final was not synthesized after the semi-final")
		}

		final := rounds[1]
		eq1 := final.Round == Final
		eq2 := len(final.Top) == 0 && len(final.Bottom) == 0
		eq3 := len(final.Unknown) == 1 && final.Unknown[0].Placeholder
		if !eq1 || !eq2 || !eq3 {
			t.Fatalf("The final for %v semi-finals per side is not a single side-less placeholder", numSemis)
		}
	}
}

func TestSynthesizeIdempotence(t *testing.T) {
	known := GroupKnockoutRounds(knockoutRecords(RoundOf32, SideTop, 1, 8))

	once := SynthesizeBracketRounds(known)
	twice := SynthesizeBracketRounds(once)

	if !reflect.DeepEqual(once, twice) {
		t.Fatal("Synthesizing a complete bracket again changed it")
	}
	if len(twice) != 5 {
		t.Fatal("Rounds were appended to a complete bracket")
	}
}

func TestSynthesizeKeepsKnownRounds(t *testing.T) {
	records := slices.Concat(
		knockoutRecords(RoundOf16, SideTop, 1, 4),
		knockoutRecords(SemiFinal, SideTop, 20, 1),
	)
	known := GroupKnockoutRounds(records)

	rounds := SynthesizeBracketRounds(known)

	expectedCodes := []RoundCode{RoundOf16, QuarterFinal, SemiFinal, Final}
	if !slices.Equal(roundCodes(rounds), expectedCodes) {
		t.Fatal("The gap between known rounds was not filled")
	}
	if len(rounds[1].Top) != 2 {
		t.Fatal("The synthesized quarter-final did not halve the round of 16")
	}
	if rounds[2].Top[0].Placeholder {
		t.Fatal("A known round was replaced by placeholders")
	}
}

func TestSynthesizeEmpty(t *testing.T) {
	rounds := SynthesizeBracketRounds([]RoundStructure{})
	if rounds == nil || len(rounds) != 0 {
		t.Fatal("Synthesizing no rounds did not return an empty list")
	}

	rounds = SynthesizeBracketRounds(nil)
	if len(rounds) != 0 {
		t.Fatal("Synthesizing nil rounds did not return an empty list")
	}
}
