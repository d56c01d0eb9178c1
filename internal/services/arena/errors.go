package arena

// ArenaError is a custom error type for arena errors
type ArenaError string

// Error implements the error interface
func (e ArenaError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrPlayerNotConnected ArenaError = "player not connected"
	ErrEmptyPlayerID      ArenaError = "player ID cannot be empty"
	ErrNilChannel         ArenaError = "channel cannot be nil"
	ErrNilMessage         ArenaError = "message cannot be nil"
	ErrInvalidCapacity    ArenaError = "room capacity must be at least 2"
	ErrNilConfig          ArenaError = "config cannot be nil"
	ErrNilQueue           ArenaError = "queue cannot be nil"
	ErrNilBlacklistRepo   ArenaError = "blacklist repository cannot be nil"
	ErrNilScoreboardRepo  ArenaError = "scoreboard repository cannot be nil"
	ErrNilMessaging       ArenaError = "messaging service cannot be nil"
)
