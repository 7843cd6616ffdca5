package core

import (
	"encoding/json"
)

func marshalTeam(ref TeamRef) map[string]any {
	if ref == nil {
		return nil
	}
	result := map[string]any{
		"id":       ref.Id(),
		"resolved": ref.Resolved(),
	}
	if ref.Resolved() {
		result["name"] = ref.DisplayName()
	}
	return result
}

func marshalScore(score Score) [][]int {
	points := make([][]int, 0)
	if score != nil {
		points = append(
			points,
			score.Points1(),
			score.Points2(),
		)
	}
	return points
}

func marshalBracketMatch(match BracketMatch) map[string]any {
	result := map[string]any{
		"id":          match.Id,
		"placeholder": match.Placeholder,
	}

	record := match.Record
	if record == nil {
		return result
	}

	var scheduled int64
	if !record.ScheduledAt.IsZero() {
		scheduled = record.ScheduledAt.UnixMilli()
	}
	var winner string
	if w := record.Winner(); w != nil {
		winner = w.Id()
	}

	result["matchNo"] = record.MatchNo
	result["round"] = record.Round.String()
	result["side"] = record.Side.String()
	result["team1"] = marshalTeam(record.Team1)
	result["team2"] = marshalTeam(record.Team2)
	result["status"] = record.Status.String()
	result["court"] = record.Court
	result["scheduled"] = scheduled
	result["score"] = marshalScore(record.Score)
	result["winner"] = winner

	return result
}

func marshalBracketMatches(matches []BracketMatch) []map[string]any {
	result := make([]map[string]any, len(matches))
	for i, m := range matches {
		result[i] = marshalBracketMatch(m)
	}
	return result
}

func marshalRoundStructure(round RoundStructure) map[string]any {
	result := map[string]any{
		"round":   round.Round.String(),
		"top":     marshalBracketMatches(round.Top),
		"bottom":  marshalBracketMatches(round.Bottom),
		"unknown": marshalBracketMatches(round.Unknown),
	}
	return result
}

func nonNilEntries(entries []GroupRankedEntry) []GroupRankedEntry {
	if entries == nil {
		return []GroupRankedEntry{}
	}
	return entries
}

func marshalSeedingCohort(cohort SeedingCohort) map[string]any {
	result := map[string]any{
		"upper": nonNilEntries(cohort.Upper),
		"lower": nonNilEntries(cohort.Lower),
	}
	return result
}

func marshalSeedPairing(pairing SeedPairing) map[string]any {
	result := map[string]any{
		"seed1":  pairing.Seed1,
		"seed2":  pairing.Seed2,
		"entry1": pairing.Entry1,
		"entry2": pairing.Entry2,
		"bye":    pairing.HasBye(),
	}
	return result
}

func (m BracketMatch) MarshalJSON() ([]byte, error) {
	anymap := marshalBracketMatch(m)
	return json.Marshal(anymap)
}

func (r RoundStructure) MarshalJSON() ([]byte, error) {
	anymap := marshalRoundStructure(r)
	return json.Marshal(anymap)
}

func (c SeedingCohort) MarshalJSON() ([]byte, error) {
	anymap := marshalSeedingCohort(c)
	return json.Marshal(anymap)
}

func (p SeedPairing) MarshalJSON() ([]byte, error) {
	anymap := marshalSeedPairing(p)
	return json.Marshal(anymap)
}
