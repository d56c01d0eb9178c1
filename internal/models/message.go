package models

// GameState tags the outbound game_state messages
type GameState string

const (
	// GameStateStart announces a new round and its roster
	GameStateStart GameState = "start"

	// GameStateCountdown carries the remaining seconds of a round
	GameStateCountdown GameState = "countdown"

	// GameStateStop tells players the round is locked and being resolved
	GameStateStop GameState = "stop"

	// GameStateResult carries a player's outcome
	GameStateResult GameState = "result"

	// GameStateScore carries a player's lifetime score
	GameStateScore GameState = "score"
)

// PlayerResult is what a single player gets told when a round resolves
type PlayerResult string

const (
	PlayerResultWin  PlayerResult = "WIN"
	PlayerResultLose PlayerResult = "LOSE"
	PlayerResultDraw PlayerResult = "DRAW"
)

// Inbound is a message received from a player
type Inbound struct {
	// Choice is a move string, see ParseMove
	Choice string `json:"choice,omitempty"`

	// Block is the id of a player to ban
	Block string `json:"block,omitempty"`
}

// ScoreView is the wire form of a Score
type ScoreView struct {
	Wins  int64 `json:"wins"`
	Games int64 `json:"games"`
}

// Outbound is a message sent to a player. Only the fields relevant to the
// message kind are set.
type Outbound struct {
	Ping                    string       `json:"ping,omitempty"`
	GameState               GameState    `json:"game_state,omitempty"`
	Players                 []string     `json:"players,omitempty"`
	Countdown               *int         `json:"countdown,omitempty"`
	Result                  PlayerResult `json:"result,omitempty"`
	RestartSecondsRemaining *int         `json:"restart_seconds_remaining,omitempty"`
	Score                   *ScoreView   `json:"score,omitempty"`
	Blacklist               string       `json:"blacklist,omitempty"`
}

// NewPing builds a free-form notice
func NewPing(text string) *Outbound {
	return &Outbound{Ping: text}
}

// NewStart announces a round with its roster
func NewStart(players []string) *Outbound {
	return &Outbound{GameState: GameStateStart, Players: players}
}

// NewCountdown reports the seconds left in a round. A nil roster is omitted,
// as on the final zero tick.
func NewCountdown(remaining int, players []string) *Outbound {
	return &Outbound{GameState: GameStateCountdown, Countdown: &remaining, Players: players}
}

// NewStop announces that the round is closed
func NewStop() *Outbound {
	return &Outbound{GameState: GameStateStop}
}

// NewResult tells a player their outcome
func NewResult(result PlayerResult) *Outbound {
	return &Outbound{GameState: GameStateResult, Result: result}
}

// NewRestartCountdown is the draw result with the seconds until the next round
func NewRestartCountdown(remaining int) *Outbound {
	return &Outbound{GameState: GameStateResult, Result: PlayerResultDraw, RestartSecondsRemaining: &remaining}
}

// NewScore pushes a player's lifetime score
func NewScore(score *Score) *Outbound {
	return &Outbound{GameState: GameStateScore, Score: &ScoreView{Wins: score.Wins, Games: score.Games}}
}

// NewBlacklistAck confirms a block and lists everyone the player is split from
func NewBlacklistAck(players []string) *Outbound {
	return &Outbound{Blacklist: "done", Players: players}
}
