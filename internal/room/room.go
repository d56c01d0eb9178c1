package room

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rochambeau/internal/common/clock"
	"github.com/KirkDiggler/rochambeau/internal/game"
	"github.com/KirkDiggler/rochambeau/internal/models"
	"github.com/KirkDiggler/rochambeau/internal/repositories/scoreboard"
	"github.com/KirkDiggler/rochambeau/internal/services/messaging"
	"go.uber.org/zap"
)

// Room hosts one match: it fills up in the lobby, then plays rounds until one
// of them has a winner. A single driver goroutine owns the phase progression;
// moves and disconnections arrive from other goroutines under mu.
type Room struct {
	id           string
	capacity     int
	countdown    int
	restartDelay int
	scoreboard   scoreboard.Repository
	messaging    messaging.Service
	clock        clock.Clock
	logger       *zap.Logger

	mu           sync.Mutex
	phase        Phase
	order        []string
	senders      map[string]Sender
	disconnected map[string]struct{}
	game         *game.Game
	roundOpen    bool
	roundDone    chan struct{}
	endRound     *sync.Once
	result       *game.Result

	done     chan struct{}
	doneOnce sync.Once
}

// New creates an empty room in the lobby phase
func New(cfg *Config) (*Room, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Capacity < 2 {
		return nil, ErrInvalidCapacity
	}

	if cfg.Scoreboard == nil {
		return nil, ErrNilScoreboard
	}

	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	countdown := cfg.CountdownSeconds
	if countdown <= 0 {
		countdown = defaultCountdownSeconds
	}

	restartDelay := cfg.RestartDelaySeconds
	if restartDelay <= 0 {
		restartDelay = defaultRestartDelaySeconds
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Room{
		id:           cfg.ID,
		capacity:     cfg.Capacity,
		countdown:    countdown,
		restartDelay: restartDelay,
		scoreboard:   cfg.Scoreboard,
		messaging:    cfg.Messaging,
		clock:        clk,
		logger:       logger.With(zap.String("room", cfg.ID)),
		phase:        PhaseLobby,
		senders:      make(map[string]Sender, cfg.Capacity),
		disconnected: make(map[string]struct{}),
		done:         make(chan struct{}),
	}, nil
}

// ID returns the room id
func (r *Room) ID() string {
	return r.id
}

// Done is closed once the room has finished for good
func (r *Room) Done() <-chan struct{} {
	return r.done
}

// Phase returns the current phase
func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Players returns the occupants in join order, including disconnected ones
func (r *Room) Players() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rosterLocked()
}

// ConnectedPlayers returns the occupants that have not been marked disconnected
func (r *Room) ConnectedPlayers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if _, gone := r.disconnected[id]; !gone {
			out = append(out, id)
		}
	}
	return out
}

// Result returns the outcome of the last resolved round, or nil
func (r *Room) Result() *game.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// AddPlayer seats a player. The player that fills the room starts the match,
// which then runs until ctx is done or a round has a winner.
func (r *Room) AddPlayer(ctx context.Context, playerID string, sender Sender) error {
	r.mu.Lock()
	if len(r.order) >= r.capacity {
		r.mu.Unlock()
		return ErrRoomFull
	}

	if r.phase != PhaseLobby {
		r.mu.Unlock()
		return ErrInvalidRoomState
	}

	if _, ok := r.senders[playerID]; ok {
		r.mu.Unlock()
		return ErrPlayerAlreadyInRoom
	}

	r.order = append(r.order, playerID)
	r.senders[playerID] = sender
	full := len(r.order) == r.capacity
	if full {
		r.phase = PhaseCountdown
	}
	r.mu.Unlock()

	r.logger.Info("player joined room",
		zap.String("player", playerID),
		zap.Bool("full", full))

	if out, err := r.messaging.GetJoinMessage(ctx, &messaging.GetJoinMessageInput{PlayerID: playerID}); err == nil {
		r.broadcast(models.NewPing(out.Message))
	}

	if full {
		go r.run(ctx)
	}
	return nil
}

// SubmitMove records a player's move in the current round. The move that
// completes the round ends it early.
func (r *Room) SubmitMove(playerID string, move models.Move) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.senders[playerID]; !ok {
		return ErrPlayerNotInRoom
	}

	if r.phase != PhaseCountdown || !r.roundOpen {
		return ErrRoundClosed
	}

	_, accepted, err := r.game.SubmitMove(playerID, move)
	if err != nil {
		return err
	}

	if accepted && r.game.IsRoundComplete() {
		r.closeRoundLocked()
	}
	return nil
}

// MarkDisconnected keeps the player on the roster but stops waiting for
// them. They cannot win, and if everyone left has moved the round ends.
func (r *Room) MarkDisconnected(playerID string) error {
	r.mu.Lock()
	if _, ok := r.senders[playerID]; !ok {
		r.mu.Unlock()
		return ErrPlayerNotInRoom
	}

	if _, gone := r.disconnected[playerID]; gone {
		r.mu.Unlock()
		return nil
	}
	r.disconnected[playerID] = struct{}{}

	if r.game != nil && r.roundOpen {
		_ = r.game.MarkDisconnected(playerID)
		if r.game.IsRoundComplete() {
			r.closeRoundLocked()
		}
	}
	r.mu.Unlock()

	r.logger.Info("player disconnected from room", zap.String("player", playerID))

	if out, err := r.messaging.GetLeaveMessage(context.Background(), &messaging.GetLeaveMessageInput{PlayerID: playerID}); err == nil {
		r.broadcast(models.NewPing(out.Message))
	}
	return nil
}

// closeRoundLocked ends the current round exactly once
func (r *Room) closeRoundLocked() {
	r.endRound.Do(func() {
		r.roundOpen = false
		close(r.roundDone)
	})
}

func (r *Room) rosterLocked() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// recipientsLocked returns the senders of every occupant in join order.
// Disconnected players stay on the list; a dead sender just fails its Send.
func (r *Room) recipientsLocked() ([]string, []Sender) {
	ids := make([]string, 0, len(r.order))
	senders := make([]Sender, 0, len(r.order))
	for _, id := range r.order {
		ids = append(ids, id)
		senders = append(senders, r.senders[id])
	}
	return ids, senders
}

// broadcast sends to every occupant. Failures are logged and skipped.
func (r *Room) broadcast(msg *models.Outbound) {
	r.mu.Lock()
	ids, senders := r.recipientsLocked()
	r.mu.Unlock()

	for i, sender := range senders {
		r.send(ids[i], sender, msg)
	}
}

func (r *Room) send(playerID string, sender Sender, msg *models.Outbound) {
	if err := sender.Send(msg); err != nil {
		r.logger.Warn("failed to send to player",
			zap.String("player", playerID),
			zap.Error(err))
	}
}

func (r *Room) finish() {
	r.doneOnce.Do(func() {
		close(r.done)
	})
}
