package arena

import (
	"context"
	"errors"
	"sync"

	"github.com/KirkDiggler/rochambeau/internal/models"
	"github.com/KirkDiggler/rochambeau/internal/repositories/scoreboard"
	"github.com/KirkDiggler/rochambeau/internal/room"
	"github.com/KirkDiggler/rochambeau/internal/services/messaging"
	"go.uber.org/zap"
)

// Run starts the background loops and blocks until ctx is done
func (s *service) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	loops := []func(context.Context){
		s.matchmakingLoop,
		s.keepAliveLoop,
		s.scorePushLoop,
	}

	wg.Add(len(loops))
	for _, loop := range loops {
		go func(loop func(context.Context)) {
			defer wg.Done()
			loop(ctx)
		}(loop)
	}

	s.logger.Info("arena running", zap.Int("capacity", s.capacity))
	wg.Wait()
	return ctx.Err()
}

func (s *service) matchmakingLoop(ctx context.Context) {
	for {
		batch, err := s.queue.GetMatch(ctx, s.capacity)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Error("matchmaking failed", zap.Error(err))
			if !s.sleep(ctx, matchRetryDelay) {
				return
			}
			continue
		}

		s.startMatch(ctx, batch)
	}
}

// startMatch seats a batch in a new room. Members already in a room are
// evacuated from it first. If a member went away while the batch was being
// assembled the rest go back in the queue.
func (s *service) startMatch(ctx context.Context, batch []string) {
	r, err := room.New(&room.Config{
		ID:                  s.uuid.NewUUID(),
		Capacity:            s.capacity,
		CountdownSeconds:    s.countdown,
		RestartDelaySeconds: s.restartDelay,
		Scoreboard:          s.scoreboard,
		Messaging:           s.messaging,
		Clock:               s.clock,
		Logger:              s.logger,
	})
	if err != nil {
		s.logger.Error("failed to create room", zap.Error(err))
		s.requeue(batch)
		return
	}

	type evacuation struct {
		playerID string
		from     *room.Room
	}

	s.mu.Lock()
	conns := make([]*connection, 0, len(batch))
	for _, id := range batch {
		if conn, ok := s.players[id]; ok {
			conns = append(conns, conn)
		}
	}

	if len(conns) != len(batch) {
		s.mu.Unlock()
		present := make([]string, 0, len(conns))
		for _, conn := range conns {
			present = append(present, conn.playerID)
		}
		s.logger.Info("match member left before seating, requeueing the rest",
			zap.Strings("batch", batch),
			zap.Strings("requeued", present))
		s.requeue(present)
		return
	}

	var evacuations []evacuation
	for _, conn := range conns {
		if conn.room != nil {
			evacuations = append(evacuations, evacuation{playerID: conn.playerID, from: conn.room})
		}
		conn.room = r
	}
	s.mu.Unlock()

	for _, e := range evacuations {
		if err := e.from.MarkDisconnected(e.playerID); err != nil {
			s.logger.Warn("failed to evacuate player",
				zap.String("player", e.playerID),
				zap.String("room", e.from.ID()),
				zap.Error(err))
		}
	}

	var wg sync.WaitGroup
	for _, conn := range conns {
		wg.Add(1)
		go func(conn *connection) {
			defer wg.Done()
			if err := r.AddPlayer(ctx, conn.playerID, conn.channel); err != nil {
				s.logger.Error("failed to seat player",
					zap.String("player", conn.playerID),
					zap.String("room", r.ID()),
					zap.Error(err))
			}
		}(conn)
	}
	wg.Wait()

	// a member may have disconnected while being seated
	for _, conn := range conns {
		s.mu.Lock()
		current, ok := s.players[conn.playerID]
		gone := !ok || current != conn
		s.mu.Unlock()
		if gone {
			_ = r.MarkDisconnected(conn.playerID)
		}
	}

	s.logger.Info("match started", zap.String("room", r.ID()), zap.Strings("players", batch))
	go s.watchRoom(ctx, r)
}

// watchRoom releases the room's players once it finishes
func (s *service) watchRoom(ctx context.Context, r *room.Room) {
	select {
	case <-r.Done():
	case <-ctx.Done():
		return
	}

	var released []string
	s.mu.Lock()
	for _, id := range r.ConnectedPlayers() {
		conn, ok := s.players[id]
		if !ok || conn.room != r {
			continue
		}
		conn.room = nil
		released = append(released, id)
	}
	s.mu.Unlock()

	s.logger.Info("match finished", zap.String("room", r.ID()), zap.Strings("released", released))
	if s.requeueAfterMatch {
		s.requeue(released)
	}
}

func (s *service) requeue(players []string) {
	for _, id := range players {
		s.queue.Add(id)
	}
}

func (s *service) keepAliveLoop(ctx context.Context) {
	for s.sleep(ctx, s.keepAliveInterval) {
		s.sendKeepAlive(ctx)
	}
}

// sendKeepAlive pings everyone. A failed send drops the connection.
func (s *service) sendKeepAlive(ctx context.Context) {
	out, err := s.messaging.GetKeepAliveMessage(ctx, &messaging.GetKeepAliveMessageInput{})
	if err != nil {
		s.logger.Error("failed to get keep-alive message", zap.Error(err))
		return
	}

	msg := models.NewPing(out.Message)
	for _, conn := range s.snapshot() {
		if err := conn.channel.Send(msg); err != nil {
			s.logger.Info("keep-alive failed, dropping player",
				zap.String("player", conn.playerID),
				zap.Error(err))
			_, _ = s.Disconnect(ctx, &DisconnectInput{PlayerID: conn.playerID, Channel: conn.channel})
			_ = conn.channel.Close()
		}
	}
}

func (s *service) scorePushLoop(ctx context.Context) {
	for s.sleep(ctx, s.scorePushInterval) {
		s.pushScores(ctx)
	}
}

// pushScores sends each player with a score their current tally
func (s *service) pushScores(ctx context.Context) {
	for _, conn := range s.snapshot() {
		score, err := s.scoreboard.GetScore(ctx, &scoreboard.GetScoreInput{PlayerID: conn.playerID})
		if errors.Is(err, scoreboard.ErrScoreNotFound) {
			continue
		}
		if err != nil {
			s.logger.Warn("failed to read score", zap.String("player", conn.playerID), zap.Error(err))
			continue
		}

		if err := conn.channel.Send(models.NewScore(score)); err != nil {
			s.logger.Debug("failed to push score", zap.String("player", conn.playerID), zap.Error(err))
		}
	}
}
