package game

import (
	"testing"

	"github.com/KirkDiggler/rochambeau/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type GameTestSuite struct {
	suite.Suite
	game *Game
}

func (s *GameTestSuite) SetupTest() {
	g, err := New([]string{"alice", "bob", "carol"})
	s.Require().NoError(err)
	s.game = g
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameTestSuite))
}

func (s *GameTestSuite) submit(player string, move models.Move) {
	_, accepted, err := s.game.SubmitMove(player, move)
	s.Require().NoError(err)
	s.Require().True(accepted)
}

func (s *GameTestSuite) TestNewRejectsTooFewPlayers() {
	_, err := New([]string{"alice"})
	s.ErrorIs(err, ErrInsufficientPlayers)

	_, err = New([]string{"alice", "alice"})
	s.ErrorIs(err, ErrInsufficientPlayers)

	_, err = New(nil)
	s.ErrorIs(err, ErrInsufficientPlayers)
}

func (s *GameTestSuite) TestPlayersKeepJoinOrder() {
	s.Equal([]string{"alice", "bob", "carol"}, s.game.Players())
}

func (s *GameTestSuite) TestFirstSubmissionWins() {
	s.submit("alice", models.MoveRock)

	recorded, accepted, err := s.game.SubmitMove("alice", models.MovePaper)
	s.NoError(err)
	s.False(accepted)
	s.Equal(models.MoveRock, recorded)

	m, ok := s.game.Move("alice")
	s.True(ok)
	s.Equal(models.MoveRock, m)
}

func (s *GameTestSuite) TestRejectsInvalidMoveAndStrangers() {
	_, _, err := s.game.SubmitMove("alice", models.Move("x"))
	s.ErrorIs(err, ErrInvalidMove)

	_, _, err = s.game.SubmitMove("mallory", models.MoveRock)
	s.ErrorIs(err, ErrPlayerNotInGame)

	s.ErrorIs(s.game.MarkDisconnected("mallory"), ErrPlayerNotInGame)

	_, ok := s.game.Move("alice")
	s.False(ok)
}

func (s *GameTestSuite) TestRoundCompleteIgnoresDisconnected() {
	s.False(s.game.IsRoundComplete())

	s.submit("alice", models.MoveRock)
	s.submit("bob", models.MovePaper)
	s.False(s.game.IsRoundComplete())

	s.Require().NoError(s.game.MarkDisconnected("carol"))
	s.True(s.game.IsRoundComplete())
	s.Equal(2, s.game.ConnectedCount())
}

func (s *GameTestSuite) TestTwoDistinctMovesWin() {
	s.submit("alice", models.MoveRock)
	s.submit("bob", models.MoveScissors)
	s.submit("carol", models.MoveScissors)

	result := s.game.Resolve()
	s.Equal(OutcomeWin, result.Outcome)
	s.Equal(models.MoveRock, result.LuckyMove)
	s.Equal([]string{"alice"}, result.Winners)
	s.Equal([]string{"bob", "carol"}, result.Losers)
	s.True(result.IsWinner("alice"))
	s.False(result.IsWinner("bob"))
}

func (s *GameTestSuite) TestThreeDistinctMovesTie() {
	s.submit("alice", models.MoveRock)
	s.submit("bob", models.MovePaper)
	s.submit("carol", models.MoveScissors)

	result := s.game.Resolve()
	s.Equal(OutcomeTie, result.Outcome)
	s.Empty(result.Winners)
	s.Empty(result.Losers)
}

func (s *GameTestSuite) TestAllSameMoveTies() {
	s.submit("alice", models.MoveRock)
	s.submit("bob", models.MoveRock)
	s.submit("carol", models.MoveRock)

	s.Equal(OutcomeTie, s.game.Resolve().Outcome)
}

func (s *GameTestSuite) TestLoneSubmissionWins() {
	s.submit("bob", models.MovePaper)

	result := s.game.Resolve()
	s.Equal(OutcomeWin, result.Outcome)
	s.Equal([]string{"bob"}, result.Winners)
	s.Equal([]string{"alice", "carol"}, result.Losers)
}

func (s *GameTestSuite) TestNoSubmissionsTie() {
	s.Equal(OutcomeTie, s.game.Resolve().Outcome)
}

func (s *GameTestSuite) TestDisconnectedPlayerCannotWin() {
	s.submit("alice", models.MovePaper)
	s.submit("bob", models.MovePaper)
	s.submit("carol", models.MoveRock)
	s.Require().NoError(s.game.MarkDisconnected("bob"))

	result := s.game.Resolve()
	s.Equal(OutcomeWin, result.Outcome)
	s.Equal([]string{"alice"}, result.Winners)
	s.ElementsMatch([]string{"bob", "carol"}, result.Losers)
}

func (s *GameTestSuite) TestLuckyMoveHeldOnlyByDisconnectedTies() {
	s.submit("alice", models.MovePaper)
	s.submit("bob", models.MoveRock)
	s.Require().NoError(s.game.MarkDisconnected("alice"))

	s.Equal(OutcomeTie, s.game.Resolve().Outcome)
}

func (s *GameTestSuite) TestWinnersAndLosersPartitionPlayers() {
	s.submit("alice", models.MoveScissors)
	s.submit("carol", models.MovePaper)

	result := s.game.Resolve()
	s.Require().Equal(OutcomeWin, result.Outcome)
	s.ElementsMatch(s.game.Players(), append(append([]string{}, result.Winners...), result.Losers...))
	for _, w := range result.Winners {
		s.NotContains(result.Losers, w)
	}
}

func TestLuckyMove(t *testing.T) {
	tests := []struct {
		name   string
		moves  []models.Move
		want   models.Move
		wantOK bool
	}{
		{"empty", nil, "", false},
		{"single rock", []models.Move{models.MoveRock}, models.MoveRock, true},
		{"rock beats scissors", []models.Move{models.MoveScissors, models.MoveRock}, models.MoveRock, true},
		{"scissors beats paper", []models.Move{models.MovePaper, models.MoveScissors, models.MovePaper}, models.MoveScissors, true},
		{"paper beats rock", []models.Move{models.MoveRock, models.MovePaper}, models.MovePaper, true},
		{"same move twice", []models.Move{models.MoveRock, models.MoveRock}, "", false},
		{"all three", []models.Move{models.MoveRock, models.MovePaper, models.MoveScissors}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LuckyMove(tt.moves)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
