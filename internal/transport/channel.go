package transport

//go:generate mockgen -package=mocks -destination=mocks/mock_channel.go github.com/KirkDiggler/rochambeau/internal/transport Channel

import (
	"errors"

	"github.com/KirkDiggler/rochambeau/internal/models"
)

// ErrChannelClosed is returned by Send and Receive once a channel is closed
var ErrChannelClosed = errors.New("channel closed")

// ErrSendQueueFull is returned when a slow client has too many unsent messages
var ErrSendQueueFull = errors.New("send queue full")

// Channel is one player's bidirectional message stream
type Channel interface {
	// Send queues a message for delivery. It never blocks on the network.
	Send(msg *models.Outbound) error

	// Receive blocks for the next inbound message
	Receive() (*models.Inbound, error)

	// Close shuts the channel down. Safe to call more than once.
	Close() error
}
