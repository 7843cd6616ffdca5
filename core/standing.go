package core

// A TeamStanding is one team's record at the end of
// (or during) the group stage.
type TeamStanding struct {
	TeamId string `json:"teamId"`
	Name   string `json:"teamName"`
	Group  string `json:"group"`

	Points int `json:"points"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`

	ScoreFor     int `json:"scoreFor"`
	ScoreAgainst int `json:"scoreAgainst"`
	SetsFor      int `json:"setsFor"`
	SetsAgainst  int `json:"setsAgainst"`

	ScoreDiff int `json:"scoreDiff"`
	SetDiff   int `json:"setsDiff"`

	// Administrator override of the rank inside the group.
	// Only positive values are considered set.
	ManualRank int `json:"manualRank,omitempty"`
}

func (s *TeamStanding) UpdateDifferences() {
	s.ScoreDiff = s.ScoreFor - s.ScoreAgainst
	s.SetDiff = s.SetsFor - s.SetsAgainst
}

func (s *TeamStanding) HasManualRank() bool {
	return s.ManualRank > 0
}

// A GroupRankedEntry is a TeamStanding with its
// computed 1-based rank inside its group.
type GroupRankedEntry struct {
	TeamStanding

	Rank int `json:"rank"`
}

// All standings of one group
type GroupStandings struct {
	Group string
	Rows  []TeamStanding
}
