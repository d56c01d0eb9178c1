package room

// RoomError is a custom error type for room errors
type RoomError string

// Error implements the error interface
func (e RoomError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidCapacity     RoomError = "room capacity must be at least 2"
	ErrRoomFull            RoomError = "room is at maximum capacity"
	ErrInvalidRoomState    RoomError = "invalid room state"
	ErrPlayerNotInRoom     RoomError = "player not in room"
	ErrPlayerAlreadyInRoom RoomError = "player already in room"
	ErrRoundClosed         RoomError = "round is not accepting moves"
	ErrNilConfig           RoomError = "config cannot be nil"
	ErrNilScoreboard       RoomError = "scoreboard repository cannot be nil"
	ErrNilMessaging        RoomError = "messaging service cannot be nil"
)
