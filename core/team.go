package core

// A TeamRef points at a team taking part in a tournament.
//
// A TeamRef is one of two variants:
//   - ResolvedTeam: the id and display name are known
//   - UnresolvedTeam: only the id is known (e.g. the feed
//     delivered a raw identifier instead of a team object)
//
// A nil TeamRef in a match slot means the slot is not
// determined yet (e.g. the winner of an unplayed semi-final).
type TeamRef interface {
	// Returns an ID that is unique among the teams of
	// a tournament
	Id() string

	// Returns the display name or an empty string
	// when the reference is unresolved
	DisplayName() string

	// Returns true for the ResolvedTeam variant
	Resolved() bool
}

type ResolvedTeam struct {
	TeamId string
	Name   string
}

func (t ResolvedTeam) Id() string {
	return t.TeamId
}

func (t ResolvedTeam) DisplayName() string {
	return t.Name
}

func (t ResolvedTeam) Resolved() bool {
	return true
}

type UnresolvedTeam struct {
	TeamId string
}

func (t UnresolvedTeam) Id() string {
	return t.TeamId
}

func (t UnresolvedTeam) DisplayName() string {
	return ""
}

func (t UnresolvedTeam) Resolved() bool {
	return false
}

// Creates a TeamRef from an id and an optional name.
// Returns nil when the id is empty.
func NewTeamRef(id, name string) TeamRef {
	if id == "" {
		return nil
	}
	if name == "" {
		return UnresolvedTeam{TeamId: id}
	}
	return ResolvedTeam{TeamId: id, Name: name}
}
