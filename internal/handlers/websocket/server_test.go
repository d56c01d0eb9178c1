package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/rochambeau/internal/models"
	"github.com/KirkDiggler/rochambeau/internal/repositories/scoreboard"
	"github.com/KirkDiggler/rochambeau/internal/services/arena"
	arenaMocks "github.com/KirkDiggler/rochambeau/internal/services/arena/mocks"
	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServerTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockArena *arenaMocks.MockService
	server    *Server
	http      *httptest.Server
}

func (s *ServerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *ServerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockArena = arenaMocks.NewMockService(s.mockCtrl)

	srv, err := New(&Config{
		ArenaService:   s.mockArena,
		AllowedOrigins: []string{"http://arena.test"},
		InboundRate:    100,
		InboundBurst:   10,
	})
	s.Require().NoError(err)
	s.server = srv
	s.http = httptest.NewServer(srv.Handler())
}

func (s *ServerTestSuite) TearDownTest() {
	s.http.Close()
	s.mockCtrl.Finish()
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) dial(player string, header http.Header) (*gorilla.Conn, *http.Response, error) {
	url := "ws" + strings.TrimPrefix(s.http.URL, "http") + "/ws/" + player
	return gorilla.DefaultDialer.Dial(url, header)
}

func (s *ServerTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{})
	s.Error(err)
}

func (s *ServerTestSuite) TestHealth() {
	resp, err := http.Get(s.http.URL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *ServerTestSuite) TestScore() {
	s.mockArena.EXPECT().
		GetScore(gomock.Any(), &arena.GetScoreInput{PlayerID: "alice"}).
		Return(&arena.GetScoreOutput{Score: &models.Score{PlayerID: "alice", Games: 4, Wins: 3}}, nil)

	resp, err := http.Get(s.http.URL + "/scores/alice")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var view models.ScoreView
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&view))
	s.Equal(models.ScoreView{Wins: 3, Games: 4}, view)
}

func (s *ServerTestSuite) TestScoreNotFound() {
	s.mockArena.EXPECT().
		GetScore(gomock.Any(), &arena.GetScoreInput{PlayerID: "nobody"}).
		Return(nil, scoreboard.ErrScoreNotFound)

	resp, err := http.Get(s.http.URL + "/scores/nobody")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ServerTestSuite) TestScoreFailure() {
	s.mockArena.EXPECT().
		GetScore(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("redis down"))

	resp, err := http.Get(s.http.URL + "/scores/alice")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusInternalServerError, resp.StatusCode)
}

func (s *ServerTestSuite) TestWebsocketSession() {
	handled := make(chan *models.Inbound, 1)
	disconnected := make(chan struct{})

	s.mockArena.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *arena.ConnectInput) (*arena.ConnectOutput, error) {
			s.Equal("alice", input.PlayerID)
			s.NoError(input.Channel.Send(models.NewPing("welcome")))
			return &arena.ConnectOutput{}, nil
		})
	s.mockArena.EXPECT().
		HandleMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *arena.HandleMessageInput) (*arena.HandleMessageOutput, error) {
			handled <- input.Message
			return &arena.HandleMessageOutput{Move: models.MoveRock}, nil
		})
	s.mockArena.EXPECT().
		Disconnect(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *arena.DisconnectInput) (*arena.DisconnectOutput, error) {
			s.Equal("alice", input.PlayerID)
			close(disconnected)
			return &arena.DisconnectOutput{Removed: true}, nil
		})

	conn, _, err := s.dial("alice", http.Header{"Origin": []string{"http://arena.test"}})
	s.Require().NoError(err)

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, payload, err := conn.ReadMessage()
	s.Require().NoError(err)
	s.JSONEq(`{"ping":"welcome"}`, string(payload))

	s.Require().NoError(conn.WriteMessage(gorilla.TextMessage, []byte(`{"choice":"r"}`)))
	select {
	case msg := <-handled:
		s.Equal("r", msg.Choice)
	case <-time.After(time.Second):
		s.FailNow("message never reached the arena")
	}

	conn.Close()
	select {
	case <-disconnected:
	case <-time.After(time.Second):
		s.Fail("player was never disconnected")
	}
}

func (s *ServerTestSuite) TestWebsocketRejectsForeignOrigin() {
	_, resp, err := s.dial("alice", http.Header{"Origin": []string{"http://evil.test"}})
	s.Error(err)
	if resp != nil {
		s.Equal(http.StatusForbidden, resp.StatusCode)
	}
}
