package core

import (
	"errors"
	"strings"
)

var ErrUnknownRound = errors.New("unknown round code")

// A RoundCode names a knockout round. The codes are ordered
// from the earliest round to the final.
type RoundCode int

const (
	RoundOf32 RoundCode = iota
	RoundOf16
	QuarterFinal
	SemiFinal
	Final
)

var roundCodeNames = []string{"R32", "R16", "QF", "SF", "F"}

// All round codes in progression order
func RoundProgression() []RoundCode {
	return []RoundCode{RoundOf32, RoundOf16, QuarterFinal, SemiFinal, Final}
}

// Returns the round that follows this one.
// The second return value is false for the final.
func (r RoundCode) Next() (RoundCode, bool) {
	if r >= Final || r < RoundOf32 {
		return r, false
	}
	return r + 1, true
}

func (r RoundCode) Valid() bool {
	return r >= RoundOf32 && r <= Final
}

func (r RoundCode) String() string {
	if !r.Valid() {
		return "?"
	}
	return roundCodeNames[r]
}

// Parses a round code. Besides the short codes (R32, R16, QF, SF, F)
// a few long forms used by the tournament API are accepted.
func ParseRoundCode(s string) (RoundCode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "R32", "ROUND_OF_32", "LAST32":
		return RoundOf32, nil
	case "R16", "ROUND_OF_16", "LAST16":
		return RoundOf16, nil
	case "QF", "QUARTERFINAL", "QUARTER_FINAL":
		return QuarterFinal, nil
	case "SF", "SEMIFINAL", "SEMI_FINAL":
		return SemiFinal, nil
	case "F", "FINAL":
		return Final, nil
	}
	return 0, ErrUnknownRound
}

// The side of the bracket a knockout match belongs to
type BracketSide int

const (
	SideNone BracketSide = iota
	SideTop
	SideBottom
)

func (s BracketSide) String() string {
	switch s {
	case SideTop:
		return "TOP"
	case SideBottom:
		return "BOTTOM"
	default:
		return "NONE"
	}
}

// Parses TOP or BOTTOM. Everything else is SideNone.
func ParseBracketSide(s string) BracketSide {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TOP":
		return SideTop
	case "BOTTOM":
		return SideBottom
	default:
		return SideNone
	}
}
