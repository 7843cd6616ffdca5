package badminton

import (
	"errors"

	"github.com/ezBadminton/bracketdesk/core"
)

var (
	ErrPointsZero = errors.New("winning points are zero or less")
	ErrSetsZero   = errors.New("winning sets are zero or less")
	ErrMaxPoints  = errors.New("max points are less than winning points")

	ErrEmpty           = errors.New("empty score")
	ErrUndeterminedSet = errors.New("a set has equal points")
	ErrTooManySets     = errors.New("too many sets")
	ErrTooFewSets      = errors.New("too few sets")
	ErrNegativePoints  = errors.New("negative points")
	ErrTooManyPoints   = errors.New("points exceed the max points setting")
	ErrTooFewPoints    = errors.New("set winner points are less than the winning point setting")
	ErrInvalidMargin   = errors.New("the winning point margin is invalid")
	ErrUnneededSets    = errors.New("score contains unneeded extra sets")
	ErrEqualSetWins    = errors.New("both opponents won an equal number of sets")
)

// The rules that a badminton score has to follow
type Settings struct {
	WinningPoints, WinningSets, MaxPoints int
	TwoPointMargin                        bool

	// Accept scores where both teams won the same number of
	// sets (e.g. group matches with a fixed number of sets)
	AllowDraws bool
}

// The regular 2 winning sets to 21 points with a two point
// margin capped at 30
var DefaultSettings = Settings{
	WinningPoints:  21,
	WinningSets:    2,
	MaxPoints:      30,
	TwoPointMargin: true,
}

func NewSettings(
	winningPoints, winningSets, maxPoints int,
	twoPointMargin, allowDraws bool,
) (Settings, error) {
	if !twoPointMargin {
		maxPoints = winningPoints
	}

	settings := Settings{
		winningPoints, winningSets, maxPoints, twoPointMargin, allowDraws,
	}

	if winningPoints <= 0 {
		return settings, ErrPointsZero
	}
	if winningSets <= 0 {
		return settings, ErrSetsZero
	}
	if maxPoints < winningPoints {
		return settings, ErrMaxPoints
	}

	return settings, nil
}

// A validated badminton score. It implements [core.Score].
type score struct {
	core.SetScores
}

func (s *score) Invert() core.Score {
	inverted := s.SetScores.Invert().(core.SetScores)
	return &score{inverted}
}

// Validates the sets against the settings and returns
// the score on success.
func NewScore(sets []core.SetScore, settings Settings) (core.Score, error) {
	switch {
	case len(sets) == 0:
		return nil, ErrEmpty
	case len(sets) < settings.WinningSets && !settings.AllowDraws:
		return nil, ErrTooFewSets
	case len(sets) >= 2*settings.WinningSets:
		return nil, ErrTooManySets
	}

	winningMargin := 1
	if settings.TwoPointMargin {
		winningMargin = 2
	}

	setWins1, setWins2 := 0, 0
	for _, set := range sets {
		w := max(set.Team1, set.Team2)
		l := min(set.Team1, set.Team2)

		switch {
		case setWins1 == settings.WinningSets || setWins2 == settings.WinningSets:
			return nil, ErrUnneededSets
		case w == l:
			return nil, ErrUndeterminedSet
		case l < 0:
			return nil, ErrNegativePoints
		case w < settings.WinningPoints:
			return nil, ErrTooFewPoints
		case w > settings.MaxPoints:
			return nil, ErrTooManyPoints
		case w < settings.MaxPoints && w > settings.WinningPoints && w-l != winningMargin:
			fallthrough
		case w == settings.MaxPoints && w > settings.WinningPoints && w-l > winningMargin:
			return nil, ErrInvalidMargin
		}

		if set.Team1 > set.Team2 {
			setWins1 += 1
		} else {
			setWins2 += 1
		}
	}

	if setWins1 == setWins2 && !settings.AllowDraws {
		return nil, ErrEqualSetWins
	}
	if setWins1 != setWins2 && max(setWins1, setWins2) < settings.WinningSets {
		return nil, ErrTooFewSets
	}

	return &score{core.SetScores(sets)}, nil
}
