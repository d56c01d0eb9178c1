package game

import (
	"github.com/KirkDiggler/rochambeau/internal/models"
)

// Game is a single voting round between a fixed set of players. It is not
// safe for concurrent use; the owning room serialises access.
type Game struct {
	players      []string
	members      map[string]struct{}
	disconnected map[string]struct{}
	choices      map[string]models.Move
}

// New creates a round for the given players. Duplicate ids are collapsed.
func New(players []string) (*Game, error) {
	g := &Game{
		members:      make(map[string]struct{}, len(players)),
		disconnected: make(map[string]struct{}),
		choices:      make(map[string]models.Move, len(players)),
	}

	for _, id := range players {
		if _, ok := g.members[id]; ok {
			continue
		}
		g.members[id] = struct{}{}
		g.players = append(g.players, id)
	}

	if len(g.players) < 2 {
		return nil, ErrInsufficientPlayers
	}

	return g, nil
}

// Players returns the roster in join order
func (g *Game) Players() []string {
	out := make([]string, len(g.players))
	copy(out, g.players)
	return out
}

// SubmitMove records a player's move. The first submission wins: a repeat
// returns the recorded move with accepted set to false.
func (g *Game) SubmitMove(playerID string, move models.Move) (recorded models.Move, accepted bool, err error) {
	if !move.IsValid() {
		return "", false, ErrInvalidMove
	}

	if _, ok := g.members[playerID]; !ok {
		return "", false, ErrPlayerNotInGame
	}

	if existing, ok := g.choices[playerID]; ok {
		return existing, false, nil
	}

	g.choices[playerID] = move
	return move, true, nil
}

// Move returns the player's recorded move, if any
func (g *Game) Move(playerID string) (models.Move, bool) {
	m, ok := g.choices[playerID]
	return m, ok
}

// MarkDisconnected excludes a player from completeness and from winning. Any
// move they already made still counts towards the lucky move.
func (g *Game) MarkDisconnected(playerID string) error {
	if _, ok := g.members[playerID]; !ok {
		return ErrPlayerNotInGame
	}
	g.disconnected[playerID] = struct{}{}
	return nil
}

// IsDisconnected reports whether the player was marked disconnected
func (g *Game) IsDisconnected(playerID string) bool {
	_, ok := g.disconnected[playerID]
	return ok
}

// ConnectedCount is the number of players not marked disconnected
func (g *Game) ConnectedCount() int {
	return len(g.players) - len(g.disconnected)
}

// IsRoundComplete reports whether every connected player has moved
func (g *Game) IsRoundComplete() bool {
	for _, id := range g.players {
		if _, gone := g.disconnected[id]; gone {
			continue
		}
		if _, moved := g.choices[id]; !moved {
			return false
		}
	}
	return true
}

// Resolve computes the result from the moves recorded so far. Without a lucky
// move, or when nobody still connected holds it, the round is a tie.
func (g *Game) Resolve() *Result {
	moves := make([]models.Move, 0, len(g.choices))
	for _, id := range g.players {
		if m, ok := g.choices[id]; ok {
			moves = append(moves, m)
		}
	}

	lucky, ok := LuckyMove(moves)
	if !ok {
		return &Result{Outcome: OutcomeTie}
	}

	result := &Result{Outcome: OutcomeWin, LuckyMove: lucky}
	for _, id := range g.players {
		_, gone := g.disconnected[id]
		if m, moved := g.choices[id]; moved && m == lucky && !gone {
			result.Winners = append(result.Winners, id)
			continue
		}
		result.Losers = append(result.Losers, id)
	}

	if len(result.Winners) == 0 {
		return &Result{Outcome: OutcomeTie}
	}

	return result
}

// LuckyMove picks the winning move among the submitted ones. A lone move
// wins outright. Otherwise exactly two distinct moves are needed, and the one
// that beats the other wins.
func LuckyMove(moves []models.Move) (models.Move, bool) {
	if len(moves) == 1 {
		return moves[0], true
	}

	distinct := make([]models.Move, 0, 3)
	seen := make(map[models.Move]struct{}, 3)
	for _, m := range moves {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		distinct = append(distinct, m)
	}

	if len(distinct) != 2 {
		return "", false
	}

	if distinct[0].Beats(distinct[1]) {
		return distinct[0], true
	}
	return distinct[1], true
}
