package core

// A SeedPairing is one first-round match of a cohort's
// knockout bracket. A nil entry is a bye.
type SeedPairing struct {
	Seed1, Seed2   int
	Entry1, Entry2 *GroupRankedEntry
}

func (p *SeedPairing) HasBye() bool {
	return p.Entry1 == nil || p.Entry2 == nil
}

// Lays out the ordered cohort as the first round of a
// seeded knockout bracket.
//
// The cohort is padded with byes up to the next power of two.
// The byes take the lowest seeds so they are drawn against
// the top seeds. Seeds in the returned pairings are 1-based.
func SeedPairings(cohort []GroupRankedEntry) []SeedPairing {
	if len(cohort) < 2 {
		return []SeedPairing{}
	}

	numSlots := nextPowerOfTwo(len(cohort))
	numRounds := getNumRounds(numSlots)
	seedMatchups := arrangeSeeds(numRounds)

	entryAt := func(seed int) *GroupRankedEntry {
		if seed >= len(cohort) {
			return nil
		}
		return &cohort[seed]
	}

	pairings := make([]SeedPairing, 0, len(seedMatchups))
	for _, matchup := range seedMatchups {
		pairings = append(pairings, SeedPairing{
			Seed1:  matchup.seed1 + 1,
			Seed2:  matchup.seed2 + 1,
			Entry1: entryAt(matchup.seed1),
			Entry2: entryAt(matchup.seed2),
		})
	}

	return pairings
}

type seedMatchup struct {
	seed1 int
	seed2 int
}

// Arranges the seeds for the first elimination round of
// a total of numRounds.
//
// The arrangement ensures that the top 2 seeds can only
// meet in the final, the top 4 seeds can only meet
// in the semi-final, etc...
//
// More info: https://en.wikipedia.org/wiki/Single-elimination_tournament#Seeding
func arrangeSeeds(numRounds int) []*seedMatchup {
	// Start with the final between the first two seeds
	matchups := []*seedMatchup{{0, 1}}
	totalSeeds := 2

	// Work down the tournament tree by round (semis, quarters, ...)
	for i := 1; i < numRounds; i += 1 {
		nextMatchups := make([]*seedMatchup, 0, totalSeeds)
		totalSeeds *= 2
		for _, parent := range matchups {
			s1 := parent.seed1
			s2 := parent.seed2

			nextMatchups = append(
				nextMatchups,
				&seedMatchup{s1, totalSeeds - 1 - s1},
				&seedMatchup{s2, totalSeeds - 1 - s2},
			)
		}

		matchups = nextMatchups
	}

	return matchups
}

func getNumRounds(numSlots int) int {
	rounds := 0
	for numSlots > 1 {
		numSlots >>= 1
		rounds += 1
	}
	return rounds
}

// Returns the power of two that is immediately bigger than
// or equal to from
func nextPowerOfTwo(from int) int {
	powerOfTwo := 1
	for powerOfTwo < from {
		powerOfTwo *= 2
	}
	return powerOfTwo
}
