package room

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/rochambeau/internal/common/clock/mocks"
	"github.com/KirkDiggler/rochambeau/internal/dice"
	"github.com/KirkDiggler/rochambeau/internal/game"
	"github.com/KirkDiggler/rochambeau/internal/models"
	"github.com/KirkDiggler/rochambeau/internal/repositories/scoreboard"
	scoreboardMocks "github.com/KirkDiggler/rochambeau/internal/repositories/scoreboard/mocks"
	"github.com/KirkDiggler/rochambeau/internal/services/messaging"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// recordingSender keeps every message it is asked to send
type recordingSender struct {
	mu   sync.Mutex
	msgs []*models.Outbound
	err  error
}

func (r *recordingSender) Send(msg *models.Outbound) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordingSender) messages() []*models.Outbound {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Outbound, len(r.msgs))
	copy(out, r.msgs)
	return out
}

func (r *recordingSender) count(state models.GameState) int {
	n := 0
	for _, m := range r.messages() {
		if m.GameState == state {
			n++
		}
	}
	return n
}

func (r *recordingSender) results() []models.PlayerResult {
	var out []models.PlayerResult
	for _, m := range r.messages() {
		if m.GameState == models.GameStateResult && m.RestartSecondsRemaining == nil {
			out = append(out, m.Result)
		}
	}
	return out
}

func (r *recordingSender) countdowns() []int {
	var out []int
	for _, m := range r.messages() {
		if m.GameState == models.GameStateCountdown {
			out = append(out, *m.Countdown)
		}
	}
	return out
}

func (r *recordingSender) restarts() []int {
	var out []int
	for _, m := range r.messages() {
		if m.RestartSecondsRemaining != nil {
			out = append(out, *m.RestartSecondsRemaining)
		}
	}
	return out
}

type RoomTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockClock      *mocks.MockClock
	mockScoreboard *scoreboardMocks.MockRepository
	messaging      messaging.Service
	ctx            context.Context
	cancel         context.CancelFunc

	// seconds is fed by the test, one value per elapsed clock second
	seconds chan time.Time
	alice   *recordingSender
	bob     *recordingSender
	room    *Room
}

func (s *RoomTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockScoreboard = scoreboardMocks.NewMockRepository(s.mockCtrl)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.seconds = make(chan time.Time)

	svc, err := messaging.NewService(&messaging.ServiceConfig{
		Roller: dice.New(&dice.Config{Seed: 7}),
	})
	s.Require().NoError(err)
	s.messaging = svc

	s.mockClock.EXPECT().Now().Return(time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)).AnyTimes()
	s.mockClock.EXPECT().After(time.Second).Return(s.seconds).AnyTimes()

	s.alice = &recordingSender{}
	s.bob = &recordingSender{}
	s.room = s.newRoom(2)
}

func (s *RoomTestSuite) TearDownTest() {
	s.cancel()
	s.mockCtrl.Finish()
}

func TestRoomSuite(t *testing.T) {
	suite.Run(t, new(RoomTestSuite))
}

func (s *RoomTestSuite) newRoom(capacity int) *Room {
	r, err := New(&Config{
		ID:         "room-1",
		Capacity:   capacity,
		Scoreboard: s.mockScoreboard,
		Messaging:  s.messaging,
		Clock:      s.mockClock,
	})
	s.Require().NoError(err)
	return r
}

// fill seats alice and bob and waits for the first round to open
func (s *RoomTestSuite) fill() {
	s.Require().NoError(s.room.AddPlayer(s.ctx, "alice", s.alice))
	s.Require().NoError(s.room.AddPlayer(s.ctx, "bob", s.bob))
	s.waitForStarts(s.alice, 1)
}

func (s *RoomTestSuite) waitForStarts(sender *recordingSender, n int) {
	s.Require().Eventually(func() bool {
		return sender.count(models.GameStateStart) >= n
	}, time.Second, 5*time.Millisecond)
}

// elapse feeds whole seconds to whichever timer is waiting
func (s *RoomTestSuite) elapse(n int) {
	for i := 0; i < n; i++ {
		select {
		case s.seconds <- time.Time{}:
		case <-time.After(time.Second):
			s.FailNow("no timer waiting for the clock")
		}
	}
}

// elapseUntilDone feeds seconds until the room finishes
func (s *RoomTestSuite) elapseUntilDone(r *Room) {
	for {
		select {
		case s.seconds <- time.Time{}:
		case <-r.Done():
			return
		case <-time.After(time.Second):
			s.FailNow("room did not finish")
		}
	}
}

func (s *RoomTestSuite) waitDone(r *Room) {
	select {
	case <-r.Done():
	case <-time.After(time.Second):
		s.FailNow("room did not finish")
	}
}

func (s *RoomTestSuite) expectScores(players []string, winners ...string) {
	for _, id := range players {
		s.mockScoreboard.EXPECT().
			IncrementGames(gomock.Any(), &scoreboard.IncrementGamesInput{PlayerID: id}).
			Return(nil)
	}
	for _, id := range winners {
		s.mockScoreboard.EXPECT().
			IncrementWins(gomock.Any(), &scoreboard.IncrementWinsInput{PlayerID: id}).
			Return(nil)
	}
}

func (s *RoomTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Capacity: 1, Scoreboard: s.mockScoreboard, Messaging: s.messaging})
	s.ErrorIs(err, ErrInvalidCapacity)

	_, err = New(&Config{Capacity: 2, Messaging: s.messaging})
	s.ErrorIs(err, ErrNilScoreboard)

	_, err = New(&Config{Capacity: 2, Scoreboard: s.mockScoreboard})
	s.ErrorIs(err, ErrNilMessaging)
}

func (s *RoomTestSuite) TestLobbyAnnouncesJoinsThenStarts() {
	s.Require().NoError(s.room.AddPlayer(s.ctx, "alice", s.alice))
	s.Equal(PhaseLobby, s.room.Phase())
	s.ErrorIs(s.room.AddPlayer(s.ctx, "alice", s.alice), ErrPlayerAlreadyInRoom)
	s.ErrorIs(s.room.SubmitMove("alice", models.MoveRock), ErrRoundClosed)

	s.Require().NoError(s.room.AddPlayer(s.ctx, "bob", s.bob))
	s.waitForStarts(s.alice, 1)

	msgs := s.alice.messages()
	s.Require().GreaterOrEqual(len(msgs), 3)
	s.Equal("Player alice joined the game.", msgs[0].Ping)
	s.Equal("Player bob joined the game.", msgs[1].Ping)
	s.Equal(models.GameStateStart, msgs[2].GameState)
	s.Equal([]string{"alice", "bob"}, msgs[2].Players)

	s.ErrorIs(s.room.AddPlayer(s.ctx, "carol", &recordingSender{}), ErrRoomFull)
	s.Equal(PhaseCountdown, s.room.Phase())
}

func (s *RoomTestSuite) TestMovesCompleteRound() {
	s.expectScores([]string{"alice", "bob"}, "alice")
	s.fill()

	s.Require().NoError(s.room.SubmitMove("alice", models.MoveRock))
	s.Require().NoError(s.room.SubmitMove("bob", models.MoveScissors))
	s.waitDone(s.room)

	s.Equal([]models.PlayerResult{models.PlayerResultWin}, s.alice.results())
	s.Equal([]models.PlayerResult{models.PlayerResultLose}, s.bob.results())
	s.Equal(1, s.alice.count(models.GameStateStop))
	s.Equal(PhaseResolved, s.room.Phase())
	s.Equal([]string{"alice"}, s.room.Result().Winners)
}

func (s *RoomTestSuite) TestStrangerCannotMove() {
	s.fill()
	s.ErrorIs(s.room.SubmitMove("mallory", models.MoveRock), ErrPlayerNotInRoom)
	s.ErrorIs(s.room.MarkDisconnected("mallory"), ErrPlayerNotInRoom)
	s.ErrorIs(s.room.SubmitMove("alice", models.Move("x")), game.ErrInvalidMove)
}

func (s *RoomTestSuite) TestCountdownExpiryResolvesWithLoneMove() {
	s.expectScores([]string{"alice", "bob"}, "alice")
	s.fill()

	s.Require().NoError(s.room.SubmitMove("alice", models.MoveRock))
	s.elapse(10)
	s.waitDone(s.room)

	s.Equal([]int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0}, s.alice.countdowns())
	s.Equal([]models.PlayerResult{models.PlayerResultWin}, s.alice.results())
	s.Equal([]models.PlayerResult{models.PlayerResultLose}, s.bob.results())
}

func (s *RoomTestSuite) TestTieRestartsUntilWinner() {
	s.expectScores([]string{"alice", "bob"}, "bob")
	s.fill()

	s.Require().NoError(s.room.SubmitMove("alice", models.MoveRock))
	s.Require().NoError(s.room.SubmitMove("bob", models.MoveRock))

	s.Require().Eventually(func() bool {
		return len(s.alice.restarts()) == 1
	}, time.Second, 5*time.Millisecond)
	s.Equal(PhaseRestarting, s.room.Phase())
	s.ErrorIs(s.room.SubmitMove("alice", models.MovePaper), ErrRoundClosed)

	s.elapse(3)
	s.waitForStarts(s.alice, 2)

	s.Require().NoError(s.room.SubmitMove("alice", models.MoveScissors))
	s.Require().NoError(s.room.SubmitMove("bob", models.MoveRock))
	s.waitDone(s.room)

	s.Equal([]int{3, 2, 1}, s.alice.restarts())
	s.Equal([]models.PlayerResult{models.PlayerResultDraw, models.PlayerResultLose}, s.alice.results())
	s.Equal([]models.PlayerResult{models.PlayerResultDraw, models.PlayerResultWin}, s.bob.results())
}

func (s *RoomTestSuite) TestDisconnectCompletesRound() {
	carol := &recordingSender{}
	s.room = s.newRoom(3)
	s.expectScores([]string{"alice", "bob", "carol"}, "bob")

	s.Require().NoError(s.room.AddPlayer(s.ctx, "alice", s.alice))
	s.Require().NoError(s.room.AddPlayer(s.ctx, "bob", s.bob))
	s.Require().NoError(s.room.AddPlayer(s.ctx, "carol", carol))
	s.waitForStarts(s.alice, 1)

	s.Require().NoError(s.room.SubmitMove("alice", models.MoveRock))
	s.Require().NoError(s.room.SubmitMove("bob", models.MovePaper))
	s.Require().NoError(s.room.MarkDisconnected("carol"))
	s.waitDone(s.room)

	s.Equal([]models.PlayerResult{models.PlayerResultLose}, s.alice.results())
	s.Equal([]models.PlayerResult{models.PlayerResultWin}, s.bob.results())
	// still an occupant, so still a broadcast target
	s.Equal([]models.PlayerResult{models.PlayerResultLose}, carol.results())
	s.Equal(1, carol.count(models.GameStateStop))
	s.Equal([]string{"alice", "bob", "carol"}, s.room.Players())
	s.Equal([]string{"alice", "bob"}, s.room.ConnectedPlayers())
}

func (s *RoomTestSuite) TestDisconnectedPlayerHearsRestart() {
	s.expectScores([]string{"alice", "bob"}, "alice")
	s.fill()

	s.Require().NoError(s.room.MarkDisconnected("bob"))
	s.elapse(10)
	s.Require().Eventually(func() bool {
		return len(s.bob.restarts()) == 1
	}, time.Second, 5*time.Millisecond)
	s.Equal([]models.PlayerResult{models.PlayerResultDraw}, s.bob.results())

	s.elapse(3)
	s.waitForStarts(s.bob, 2)
	s.Require().NoError(s.room.SubmitMove("alice", models.MoveRock))
	s.waitDone(s.room)

	s.Equal([]int{3, 2, 1}, s.bob.restarts())
	s.Equal([]models.PlayerResult{models.PlayerResultDraw, models.PlayerResultLose}, s.bob.results())
}

func (s *RoomTestSuite) TestLastMoveRacingFinalTickResolvesOnce() {
	for i := 0; i < 20; i++ {
		s.alice = &recordingSender{}
		s.bob = &recordingSender{}
		s.room = s.newRoom(2)

		s.mockScoreboard.EXPECT().
			IncrementGames(gomock.Any(), &scoreboard.IncrementGamesInput{PlayerID: "alice"}).
			Return(nil).Times(1)
		s.mockScoreboard.EXPECT().
			IncrementGames(gomock.Any(), &scoreboard.IncrementGamesInput{PlayerID: "bob"}).
			Return(nil).Times(1)
		s.mockScoreboard.EXPECT().
			IncrementWins(gomock.Any(), gomock.Any()).
			Return(nil).Times(1)

		s.fill()
		s.Require().NoError(s.room.SubmitMove("alice", models.MoveRock))

		alice, r := s.alice, s.room
		moved := make(chan error, 1)
		go func() {
			for !slices.Contains(alice.countdowns(), 1) {
				time.Sleep(time.Millisecond)
			}
			moved <- r.SubmitMove("bob", models.MovePaper)
		}()

		s.elapseUntilDone(s.room)
		err := <-moved

		s.Equal(1, s.alice.count(models.GameStateStop))
		s.Equal(1, s.bob.count(models.GameStateStop))
		s.LessOrEqual(len(s.alice.countdowns()), 11)

		if err == nil {
			s.Equal([]models.PlayerResult{models.PlayerResultLose}, s.alice.results())
			s.Equal([]models.PlayerResult{models.PlayerResultWin}, s.bob.results())
			s.Equal([]string{"bob"}, s.room.Result().Winners)
		} else {
			s.ErrorIs(err, ErrRoundClosed)
			s.Equal([]models.PlayerResult{models.PlayerResultWin}, s.alice.results())
			s.Equal([]models.PlayerResult{models.PlayerResultLose}, s.bob.results())
			s.Equal([]string{"alice"}, s.room.Result().Winners)
		}
	}
}

func (s *RoomTestSuite) TestRoomAbandonedWhenEveryoneLeaves() {
	s.fill()

	s.Require().NoError(s.room.SubmitMove("alice", models.MovePaper))
	s.Require().NoError(s.room.SubmitMove("bob", models.MovePaper))
	s.Require().Eventually(func() bool {
		return len(s.alice.restarts()) == 1
	}, time.Second, 5*time.Millisecond)

	s.Require().NoError(s.room.MarkDisconnected("alice"))
	s.Require().NoError(s.room.MarkDisconnected("bob"))
	s.elapse(3)
	s.waitDone(s.room)

	s.Equal(game.OutcomeTie, s.room.Result().Outcome)
	s.Equal(1, s.alice.count(models.GameStateStart))
}

func (s *RoomTestSuite) TestFailingSenderDoesNotStopBroadcast() {
	s.expectScores([]string{"alice", "bob"}, "alice")
	s.bob.err = errors.New("connection closed")
	s.fill()

	s.Require().NoError(s.room.SubmitMove("alice", models.MovePaper))
	s.Require().NoError(s.room.SubmitMove("bob", models.MoveRock))
	s.waitDone(s.room)

	s.Equal([]models.PlayerResult{models.PlayerResultWin}, s.alice.results())
	s.Empty(s.bob.messages())
}

func (s *RoomTestSuite) TestContextCancelStopsRoom() {
	s.fill()
	s.cancel()
	s.waitDone(s.room)
	s.Nil(s.room.Result())
}
