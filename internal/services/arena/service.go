package arena

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/rochambeau/internal/common/clock"
	"github.com/KirkDiggler/rochambeau/internal/common/uuid"
	"github.com/KirkDiggler/rochambeau/internal/models"
	"github.com/KirkDiggler/rochambeau/internal/repositories/blacklist"
	"github.com/KirkDiggler/rochambeau/internal/repositories/scoreboard"
	"github.com/KirkDiggler/rochambeau/internal/room"
	"github.com/KirkDiggler/rochambeau/internal/services/messaging"
	"github.com/KirkDiggler/rochambeau/internal/transport"
	"go.uber.org/zap"
)

const (
	defaultKeepAliveInterval = 2 * time.Second
	defaultScorePushInterval = time.Second
	matchRetryDelay          = time.Second
)

// connection is a registered player
type connection struct {
	playerID string
	channel  transport.Channel
	room     *room.Room
}

// service implements the Service interface
type service struct {
	capacity          int
	countdown         int
	restartDelay      int
	keepAliveInterval time.Duration
	scorePushInterval time.Duration
	requeueAfterMatch bool

	queue      Queue
	blacklist  blacklist.Repository
	scoreboard scoreboard.Repository
	messaging  messaging.Service
	clock      clock.Clock
	uuid       uuid.UUID
	logger     *zap.Logger

	mu      sync.Mutex
	players map[string]*connection
}

// NewService creates a new arena service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RoomCapacity < 2 {
		return nil, ErrInvalidCapacity
	}

	if cfg.Queue == nil {
		return nil, ErrNilQueue
	}

	if cfg.Blacklist == nil {
		return nil, ErrNilBlacklistRepo
	}

	if cfg.Scoreboard == nil {
		return nil, ErrNilScoreboardRepo
	}

	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	s := &service{
		capacity:          cfg.RoomCapacity,
		countdown:         cfg.CountdownSeconds,
		restartDelay:      cfg.RestartDelaySeconds,
		keepAliveInterval: cfg.KeepAliveInterval,
		scorePushInterval: cfg.ScorePushInterval,
		requeueAfterMatch: cfg.RequeueAfterMatch,
		queue:             cfg.Queue,
		blacklist:         cfg.Blacklist,
		scoreboard:        cfg.Scoreboard,
		messaging:         cfg.Messaging,
		clock:             cfg.Clock,
		uuid:              cfg.UUIDGenerator,
		logger:            cfg.Logger,
		players:           make(map[string]*connection),
	}

	if s.keepAliveInterval <= 0 {
		s.keepAliveInterval = defaultKeepAliveInterval
	}
	if s.scorePushInterval <= 0 {
		s.scorePushInterval = defaultScorePushInterval
	}
	if s.clock == nil {
		s.clock = &clock.DefaultClock{}
	}
	if s.uuid == nil {
		s.uuid = uuid.New()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	return s, nil
}

// Connect registers the channel and queues the player. An existing
// connection under the same id is closed and replaced.
func (s *service) Connect(ctx context.Context, input *ConnectInput) (*ConnectOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	if input.Channel == nil {
		return nil, ErrNilChannel
	}

	s.mu.Lock()
	old := s.players[input.PlayerID]
	s.players[input.PlayerID] = &connection{
		playerID: input.PlayerID,
		channel:  input.Channel,
	}
	s.mu.Unlock()

	if old != nil {
		s.logger.Info("replacing existing connection", zap.String("player", input.PlayerID))
		_ = old.channel.Close()
		s.queue.Remove(input.PlayerID)
		s.leaveRoom(old)
	}

	s.queue.Add(input.PlayerID)
	s.logger.Info("player connected", zap.String("player", input.PlayerID))

	return &ConnectOutput{
		Replaced: old != nil,
	}, nil
}

// Disconnect unregisters the player if the channel is still theirs
func (s *service) Disconnect(ctx context.Context, input *DisconnectInput) (*DisconnectOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	s.mu.Lock()
	conn, ok := s.players[input.PlayerID]
	if !ok || conn.channel != input.Channel {
		s.mu.Unlock()
		return &DisconnectOutput{Removed: false}, nil
	}
	delete(s.players, input.PlayerID)
	s.mu.Unlock()

	s.queue.Remove(input.PlayerID)
	s.leaveRoom(conn)
	s.logger.Info("player disconnected", zap.String("player", input.PlayerID))

	return &DisconnectOutput{Removed: true}, nil
}

// HandleMessage applies a block or a move. Anything else is ignored, as are
// moves that do not parse or arrive outside a round.
func (s *service) HandleMessage(ctx context.Context, input *HandleMessageInput) (*HandleMessageOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	if input.Message == nil {
		return nil, ErrNilMessage
	}

	s.mu.Lock()
	conn, ok := s.players[input.PlayerID]
	var (
		channel transport.Channel
		current *room.Room
	)
	if ok {
		channel = conn.channel
		current = conn.room
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrPlayerNotConnected
	}

	if input.Message.Block != "" {
		return s.block(ctx, input.PlayerID, input.Message.Block, channel)
	}

	if input.Message.Choice == "" {
		return &HandleMessageOutput{}, nil
	}

	move, err := models.ParseMove(input.Message.Choice)
	if err != nil {
		s.logger.Debug("ignoring invalid move",
			zap.String("player", input.PlayerID),
			zap.String("choice", input.Message.Choice))
		return &HandleMessageOutput{}, nil
	}

	if current == nil {
		return &HandleMessageOutput{}, nil
	}

	if err := current.SubmitMove(input.PlayerID, move); err != nil {
		s.logger.Debug("move not accepted",
			zap.String("player", input.PlayerID),
			zap.String("room", current.ID()),
			zap.Error(err))
		return &HandleMessageOutput{}, nil
	}

	return &HandleMessageOutput{Move: move}, nil
}

func (s *service) block(ctx context.Context, playerID, target string, channel transport.Channel) (*HandleMessageOutput, error) {
	if err := s.blacklist.Ban(ctx, &blacklist.BanInput{
		PlayerID:       playerID,
		BannedPlayerID: target,
	}); err != nil {
		return nil, fmt.Errorf("failed to ban player: %w", err)
	}

	banned, err := s.blacklist.GetBanned(ctx, &blacklist.GetBannedInput{PlayerID: playerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list banned players: %w", err)
	}

	if err := channel.Send(models.NewBlacklistAck(banned.PlayerIDs)); err != nil {
		s.logger.Debug("failed to acknowledge block", zap.String("player", playerID), zap.Error(err))
	}

	s.logger.Info("player blocked",
		zap.String("player", playerID),
		zap.String("blocked", target))

	return &HandleMessageOutput{Banned: target}, nil
}

// GetScore reads the scoreboard
func (s *service) GetScore(ctx context.Context, input *GetScoreInput) (*GetScoreOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	score, err := s.scoreboard.GetScore(ctx, &scoreboard.GetScoreInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}

	return &GetScoreOutput{Score: score}, nil
}

// leaveRoom marks the connection disconnected in its room, if any
func (s *service) leaveRoom(conn *connection) {
	s.mu.Lock()
	current := conn.room
	conn.room = nil
	s.mu.Unlock()

	if current == nil {
		return
	}

	if err := current.MarkDisconnected(conn.playerID); err != nil && !errors.Is(err, room.ErrPlayerNotInRoom) {
		s.logger.Warn("failed to leave room",
			zap.String("player", conn.playerID),
			zap.String("room", current.ID()),
			zap.Error(err))
	}
}

// snapshot returns the registered connections
func (s *service) snapshot() []*connection {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*connection, 0, len(s.players))
	for _, conn := range s.players {
		out = append(out, conn)
	}
	return out
}

// sleep waits for d or ctx, reporting whether ctx is still live
func (s *service) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-s.clock.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}
