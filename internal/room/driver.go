package room

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rochambeau/internal/game"
	"github.com/KirkDiggler/rochambeau/internal/models"
	"github.com/KirkDiggler/rochambeau/internal/repositories/scoreboard"
	"github.com/KirkDiggler/rochambeau/internal/services/messaging"
	"github.com/KirkDiggler/rochambeau/internal/timer"
	"go.uber.org/zap"
)

// run drives rounds until one has a winner, the room empties or ctx ends
func (r *Room) run(ctx context.Context) {
	defer r.finish()

	for round := 1; ; round++ {
		result, ok := r.playRound(ctx, round)
		if !ok {
			return
		}

		if result.Outcome == game.OutcomeWin {
			r.recordScores(ctx, result)
			return
		}

		if !r.restart(ctx) {
			return
		}
	}
}

// playRound runs one countdown and resolves it. It returns false when the
// room was abandoned or ctx ended before resolution.
func (r *Room) playRound(ctx context.Context, round int) (*game.Result, bool) {
	r.mu.Lock()
	if len(r.order)-len(r.disconnected) == 0 {
		r.phase = PhaseResolved
		r.mu.Unlock()
		r.logger.Info("room abandoned", zap.Int("round", round))
		return nil, false
	}

	g, err := game.New(r.order)
	if err != nil {
		r.phase = PhaseResolved
		r.mu.Unlock()
		r.logger.Error("failed to start round", zap.Error(err))
		return nil, false
	}
	for id := range r.disconnected {
		_ = g.MarkDisconnected(id)
	}

	r.game = g
	r.phase = PhaseCountdown
	r.roundOpen = true
	r.roundDone = make(chan struct{})
	r.endRound = &sync.Once{}
	roundDone := r.roundDone
	roster := r.rosterLocked()
	r.mu.Unlock()

	started := r.clock.Now()
	r.logger.Info("round started", zap.Int("round", round), zap.Strings("players", roster))
	r.broadcast(models.NewStart(roster))

	countdown := timer.New(r.countdown, r.clock)
	ticks := countdown.Start(ctx)

wait:
	for {
		select {
		case <-roundDone:
			break wait
		case remaining, open := <-ticks:
			if !open {
				if ctx.Err() != nil {
					return nil, false
				}
				r.broadcast(models.NewCountdown(0, nil))
				r.mu.Lock()
				r.closeRoundLocked()
				r.mu.Unlock()
				break wait
			}

			select {
			case <-roundDone:
				break wait
			default:
			}
			r.broadcast(models.NewCountdown(remaining, roster))
		case <-ctx.Done():
			countdown.Stop()
			return nil, false
		}
	}

	countdown.Stop()
	r.broadcast(models.NewStop())

	r.mu.Lock()
	result := r.game.Resolve()
	r.result = result
	r.phase = PhaseResolved
	ids, senders := r.recipientsLocked()
	r.mu.Unlock()

	r.logger.Info("round resolved",
		zap.Int("round", round),
		zap.String("outcome", string(result.Outcome)),
		zap.Strings("winners", result.Winners),
		zap.Duration("took", r.clock.Now().Sub(started)))

	if result.Outcome == game.OutcomeTie {
		r.broadcast(models.NewResult(models.PlayerResultDraw))
	} else {
		for i, id := range ids {
			outcome := models.PlayerResultLose
			if result.IsWinner(id) {
				outcome = models.PlayerResultWin
			}
			r.send(id, senders[i], models.NewResult(outcome))
		}
	}

	summary, err := r.messaging.GetRoundSummaryMessage(ctx, &messaging.GetRoundSummaryMessageInput{
		Tie:         result.Outcome == game.OutcomeTie,
		LuckyMove:   result.LuckyMove,
		WinnerCount: len(result.Winners),
	})
	if err == nil {
		r.broadcast(models.NewPing(summary.Message))
	}

	return result, true
}

// restart counts down to the next round after a tie
func (r *Room) restart(ctx context.Context) bool {
	r.mu.Lock()
	r.phase = PhaseRestarting
	r.mu.Unlock()

	delay := timer.New(r.restartDelay, r.clock)
	for remaining := range delay.Start(ctx) {
		r.broadcast(models.NewRestartCountdown(remaining))
	}
	return ctx.Err() == nil
}

// recordScores counts the match for every occupant and the win for the winners
func (r *Room) recordScores(ctx context.Context, result *game.Result) {
	for _, id := range r.Players() {
		if err := r.scoreboard.IncrementGames(ctx, &scoreboard.IncrementGamesInput{PlayerID: id}); err != nil {
			r.logger.Error("failed to record game", zap.String("player", id), zap.Error(err))
		}

		if !result.IsWinner(id) {
			continue
		}
		if err := r.scoreboard.IncrementWins(ctx, &scoreboard.IncrementWinsInput{PlayerID: id}); err != nil {
			r.logger.Error("failed to record win", zap.String("player", id), zap.Error(err))
		}
	}
}
