package matchmaking

import "errors"

var (
	// ErrMatchInProgress is returned when GetMatch is already running on the queue
	ErrMatchInProgress = errors.New("a match is already being assembled")

	// ErrInvalidBatchSize is returned for a batch size below 1
	ErrInvalidBatchSize = errors.New("batch size must be at least 1")
)
