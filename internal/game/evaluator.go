package game

import (
	"github.com/mauv0809/footle/internal/catalog"
)

// Hint tells the user where the answer lies relative to their guess.
// HintUp means the answer is higher than the guessed value.
type Hint string

const (
	HintUp    Hint = "up"
	HintDown  Hint = "down"
	HintEqual Hint = "equal"
)

// CompareOrdinal returns the hint for a guessed value against the target value.
func CompareOrdinal(candidate, target int) Hint {
	switch {
	case candidate < target:
		return HintUp
	case candidate > target:
		return HintDown
	default:
		return HintEqual
	}
}

// MatchResult is the field-by-field comparison of a guess with the target.
type MatchResult struct {
	Country               bool `json:"country"`
	League                bool `json:"league"`
	Club                  bool `json:"club"`
	Position              bool `json:"position"`
	Age                   bool `json:"age"`
	ShirtNumber           bool `json:"shirt_number"`
	AgeComparison         Hint `json:"age_comparison"`
	ShirtNumberComparison Hint `json:"shirt_number_comparison"`
}

// Solved reports whether every compared attribute matched.
func (m MatchResult) Solved() bool {
	return m.Country && m.League && m.Club && m.Position && m.Age && m.ShirtNumber
}

// Evaluate compares candidate with target. Hints are informational and do not
// take part in Solved.
func Evaluate(candidate, target catalog.Player) MatchResult {
	return MatchResult{
		Country:               candidate.Country.Name == target.Country.Name,
		League:                candidate.League.Name == target.League.Name,
		Club:                  candidate.Club.Name == target.Club.Name,
		Position:              candidate.Position.Name == target.Position.Name,
		Age:                   candidate.Age == target.Age,
		ShirtNumber:           candidate.ShirtNumber == target.ShirtNumber,
		AgeComparison:         CompareOrdinal(candidate.Age, target.Age),
		ShirtNumberComparison: CompareOrdinal(candidate.ShirtNumber, target.ShirtNumber),
	}
}

// EvaluateTransfer reports whether a transfer guess names the target player.
func EvaluateTransfer(candidateName, targetName string) bool {
	key := catalog.NameKey(candidateName)
	return key != "" && key == catalog.NameKey(targetName)
}
