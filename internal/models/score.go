package models

// Score is a player's lifetime tally. Both counters only ever grow.
type Score struct {
	// PlayerID is the player the score belongs to
	PlayerID string

	// Games is the number of decisive games the player took part in
	Games int64

	// Wins is the number of those games the player won
	Wins int64
}
