package core

import (
	"fmt"
	"strings"
	"time"
)

type MatchStatus int

const (
	StatusScheduled MatchStatus = iota
	StatusInProgress
	StatusCompleted
	StatusWalkover
)

var matchStatusNames = map[MatchStatus]string{
	StatusScheduled:  "scheduled",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
	StatusWalkover:   "walkover",
}

func (s MatchStatus) String() string {
	name, ok := matchStatusNames[s]
	if !ok {
		return "scheduled"
	}
	return name
}

// Parses a match status. Unknown statuses are
// treated as scheduled.
func ParseMatchStatus(s string) MatchStatus {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch normalized {
	case "in_progress", "ongoing", "live":
		return StatusInProgress
	case "completed", "finished", "done":
		return StatusCompleted
	case "walkover":
		return StatusWalkover
	default:
		return StatusScheduled
	}
}

// The points of both teams in one set
type SetScore struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

// The result of a match.
//
// The scores are slices with one element per set.
type Score interface {
	// Points of first opponent
	Points1() []int

	// Points of second opponent
	Points2() []int

	// Returns either 0 or 1 whether the
	// first opponent won or the second.
	// Errors when no winner is determined.
	GetWinner() (int, error)

	// Returns a new Score that has Points1
	// and Points2 flipped
	Invert() Score
}

// A group stage match as delivered by the tournament API
type GroupMatchRecord struct {
	MatchNo int
	Group   string
	Team1   TeamRef
	Team2   TeamRef
	Status  MatchStatus
	Sets    []SetScore

	// The validated score or nil when the match has no
	// (valid) result yet
	Score Score
}

func (m *GroupMatchRecord) Completed() bool {
	return m.Status == StatusCompleted && m.Score != nil
}

// A knockout match as delivered by the tournament API
type KnockoutMatchRecord struct {
	MatchNo     int
	Round       RoundCode
	Side        BracketSide
	Team1       TeamRef
	Team2       TeamRef
	Status      MatchStatus
	Court       string
	ScheduledAt time.Time
	Sets        []SetScore

	// The validated score or nil when the match has no
	// (valid) result yet
	Score Score
}

// Returns the winning team or nil when no winner
// is determined yet
func (m *KnockoutMatchRecord) Winner() TeamRef {
	if m.Score == nil {
		return nil
	}
	winner, err := m.Score.GetWinner()
	if err != nil {
		return nil
	}
	if winner == 0 {
		return m.Team1
	}
	return m.Team2
}

func (m *KnockoutMatchRecord) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d %v ", m.MatchNo, m.Round)
	writeTeam(&sb, m.Team1)
	sb.WriteString(" vs. ")
	writeTeam(&sb, m.Team2)

	for _, set := range m.Sets {
		fmt.Fprintf(&sb, " %v-%v", set.Team1, set.Team2)
	}

	return sb.String()
}

func writeTeam(sb *strings.Builder, ref TeamRef) {
	switch {
	case ref == nil:
		sb.WriteString("[TBD]")
	case ref.Resolved():
		sb.WriteString(ref.DisplayName())
	default:
		sb.WriteString(ref.Id())
	}
}

// A plain Score built from raw set scores without
// any validation of the sport's rules
type SetScores []SetScore

func (s SetScores) Points1() []int {
	points := make([]int, len(s))
	for i, set := range s {
		points[i] = set.Team1
	}
	return points
}

func (s SetScores) Points2() []int {
	points := make([]int, len(s))
	for i, set := range s {
		points[i] = set.Team2
	}
	return points
}

func (s SetScores) GetWinner() (int, error) {
	setWins := 0
	for _, set := range s {
		if set.Team1 > set.Team2 {
			setWins += 1
		}
		if set.Team2 > set.Team1 {
			setWins -= 1
		}
	}

	if setWins > 0 {
		return 0, nil
	}
	if setWins < 0 {
		return 1, nil
	}
	return -1, ErrUndecided
}

func (s SetScores) Invert() Score {
	inverted := make(SetScores, len(s))
	for i, set := range s {
		inverted[i] = SetScore{Team1: set.Team2, Team2: set.Team1}
	}
	return inverted
}
