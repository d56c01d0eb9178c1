package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/rochambeau/internal/models"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendQueueSize  = 64
)

// WebsocketConfig holds configuration for a websocket channel
type WebsocketConfig struct {
	// InboundRate is the sustained messages per second a player may send
	InboundRate float64

	// InboundBurst is how many messages may arrive at once
	InboundBurst int

	Logger *zap.Logger
}

// websocketChannel adapts a gorilla connection to Channel. Writes go through
// a buffered queue drained by writePump, so a slow client never blocks a room.
type websocketChannel struct {
	conn    *websocket.Conn
	send    chan []byte
	closed  chan struct{}
	once    sync.Once
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewWebsocket wraps an upgraded connection and starts its write pump
func NewWebsocket(conn *websocket.Conn, cfg *WebsocketConfig) (*websocketChannel, error) {
	if conn == nil {
		return nil, errors.New("connection cannot be nil")
	}

	if cfg == nil {
		cfg = &WebsocketConfig{}
	}

	limit := rate.Inf
	if cfg.InboundRate > 0 {
		limit = rate.Limit(cfg.InboundRate)
	}
	burst := cfg.InboundBurst
	if burst <= 0 {
		burst = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &websocketChannel{
		conn:    conn,
		send:    make(chan []byte, sendQueueSize),
		closed:  make(chan struct{}),
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go c.writePump()
	return c, nil
}

// Send encodes the message and queues it without blocking
func (c *websocketChannel) Send(msg *models.Outbound) error {
	select {
	case <-c.closed:
		return ErrChannelClosed
	default:
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case c.send <- payload:
		return nil
	case <-c.closed:
		return ErrChannelClosed
	default:
		return ErrSendQueueFull
	}
}

// Receive returns the next well-formed message. Malformed JSON and messages
// over the rate limit are dropped.
func (c *websocketChannel) Receive() (*models.Inbound, error) {
	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("%w: %w", ErrChannelClosed, err)
		}

		if !c.limiter.Allow() {
			c.logger.Debug("dropping message over rate limit")
			continue
		}

		var in models.Inbound
		if err := json.Unmarshal(payload, &in); err != nil {
			c.logger.Debug("dropping malformed message", zap.Error(err))
			continue
		}
		return &in, nil
	}
}

// Close stops the write pump and closes the connection
func (c *websocketChannel) Close() error {
	var err error
	c.once.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return err
}

func (c *websocketChannel) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Debug("write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}
