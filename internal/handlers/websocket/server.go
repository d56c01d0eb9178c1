package websocket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/KirkDiggler/rochambeau/internal/models"
	"github.com/KirkDiggler/rochambeau/internal/repositories/scoreboard"
	"github.com/KirkDiggler/rochambeau/internal/services/arena"
	"github.com/KirkDiggler/rochambeau/internal/transport"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server exposes the arena over HTTP and websockets
type Server struct {
	arena          arena.Service
	allowedOrigins []string
	inboundRate    float64
	inboundBurst   int
	logger         *zap.Logger
	upgrader       gorilla.Upgrader
	router         *gin.Engine
	httpServer     *http.Server
}

// Config holds the configuration for the server
type Config struct {
	// Arena service handling players
	ArenaService arena.Service

	// AllowedOrigins limits browser origins; empty allows any
	AllowedOrigins []string

	// InboundRate and InboundBurst bound messages per player
	InboundRate  float64
	InboundBurst int

	Logger *zap.Logger
}

// New creates the server and its routes
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.ArenaService == nil {
		return nil, errors.New("arena service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		arena:          cfg.ArenaService,
		allowedOrigins: cfg.AllowedOrigins,
		inboundRate:    cfg.InboundRate,
		inboundBurst:   cfg.InboundBurst,
		logger:         logger,
	}
	s.upgrader = gorilla.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.routes()

	return s, nil
}

// Handler returns the HTTP handler, for tests and custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr until Stop is called
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("http server listening", zap.String("addr", addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Stop shuts the HTTP server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	corsConfig := cors.DefaultConfig()
	if len(s.allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.allowedOrigins
	}
	corsConfig.AllowMethods = []string{http.MethodGet}
	r.Use(cors.New(corsConfig))

	r.GET("/health", s.handleHealth)
	r.GET("/scores/:player", s.handleScore)
	r.GET("/ws/:player", s.handleWebsocket)
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.allowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(s.allowedOrigins, origin)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleScore(c *gin.Context) {
	out, err := s.arena.GetScore(c.Request.Context(), &arena.GetScoreInput{PlayerID: c.Param("player")})
	if errors.Is(err, scoreboard.ErrScoreNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "score not found"})
		return
	}
	if err != nil {
		s.logger.Error("failed to read score", zap.String("player", c.Param("player")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, models.ScoreView{Wins: out.Score.Wins, Games: out.Score.Games})
}

// handleWebsocket upgrades the request and pumps the player's messages into
// the arena until the connection drops.
func (s *Server) handleWebsocket(c *gin.Context) {
	playerID := strings.TrimSpace(c.Param("player"))
	if playerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing player"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.String("player", playerID), zap.Error(err))
		return
	}

	channel, err := transport.NewWebsocket(conn, &transport.WebsocketConfig{
		InboundRate:  s.inboundRate,
		InboundBurst: s.inboundBurst,
		Logger:       s.logger.With(zap.String("player", playerID)),
	})
	if err != nil {
		s.logger.Error("failed to wrap connection", zap.Error(err))
		_ = conn.Close()
		return
	}

	ctx := c.Request.Context()
	if _, err := s.arena.Connect(ctx, &arena.ConnectInput{PlayerID: playerID, Channel: channel}); err != nil {
		s.logger.Error("failed to connect player", zap.String("player", playerID), zap.Error(err))
		_ = channel.Close()
		return
	}

	defer func() {
		if _, err := s.arena.Disconnect(context.Background(), &arena.DisconnectInput{PlayerID: playerID, Channel: channel}); err != nil {
			s.logger.Error("failed to disconnect player", zap.String("player", playerID), zap.Error(err))
		}
		_ = channel.Close()
	}()

	for {
		msg, err := channel.Receive()
		if err != nil {
			s.logger.Debug("connection closed", zap.String("player", playerID), zap.Error(err))
			return
		}

		if _, err := s.arena.HandleMessage(ctx, &arena.HandleMessageInput{PlayerID: playerID, Message: msg}); err != nil {
			s.logger.Warn("failed to handle message", zap.String("player", playerID), zap.Error(err))
		}
	}
}
