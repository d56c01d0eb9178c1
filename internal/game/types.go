package game

import "github.com/KirkDiggler/rochambeau/internal/models"

// Outcome is how a round ended
type Outcome string

const (
	// OutcomeTie means nobody won and the round is replayed
	OutcomeTie Outcome = "TIE"

	// OutcomeWin means at least one player won
	OutcomeWin Outcome = "WIN"
)

// Result is the resolution of a round. On a tie both lists are empty. On a
// win every player is in exactly one list.
type Result struct {
	Outcome   Outcome
	LuckyMove models.Move
	Winners   []string
	Losers    []string
}

// IsWinner reports whether the player won the round
func (r *Result) IsWinner(playerID string) bool {
	for _, id := range r.Winners {
		if id == playerID {
			return true
		}
	}
	return false
}
