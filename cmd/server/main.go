package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rochambeau/internal/common/clock"
	"github.com/KirkDiggler/rochambeau/internal/common/logger"
	"github.com/KirkDiggler/rochambeau/internal/common/uuid"
	"github.com/KirkDiggler/rochambeau/internal/config"
	"github.com/KirkDiggler/rochambeau/internal/dice"
	"github.com/KirkDiggler/rochambeau/internal/handlers/websocket"
	"github.com/KirkDiggler/rochambeau/internal/matchmaking"
	"github.com/KirkDiggler/rochambeau/internal/repositories/blacklist"
	"github.com/KirkDiggler/rochambeau/internal/repositories/scoreboard"
	"github.com/KirkDiggler/rochambeau/internal/services/arena"
	"github.com/KirkDiggler/rochambeau/internal/services/messaging"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logr, err := logger.New(&logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	blacklistRepo, scoreboardRepo, closeStores, err := newStores(cfg)
	if err != nil {
		logr.Fatal("Failed to create repositories", zap.Error(err))
	}
	defer closeStores()

	// Initialize dice roller
	diceRoller := dice.New(&dice.Config{Seed: cfg.Seed})

	queue, err := matchmaking.New(&matchmaking.Config{
		Blacklist: blacklistRepo,
		Roller:    diceRoller,
		Logger:    logr.Named("queue"),
	})
	if err != nil {
		logr.Fatal("Failed to create matchmaking queue", zap.Error(err))
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		Roller: diceRoller,
	})
	if err != nil {
		logr.Fatal("Failed to create messaging service", zap.Error(err))
	}

	arenaSvc, err := arena.NewService(&arena.Config{
		RoomCapacity:        cfg.RoomCapacity,
		CountdownSeconds:    cfg.CountdownSeconds,
		RestartDelaySeconds: cfg.RestartDelaySeconds,
		KeepAliveInterval:   cfg.KeepAliveInterval,
		ScorePushInterval:   cfg.ScorePushInterval,
		RequeueAfterMatch:   cfg.RequeueAfterMatch,
		Queue:               queue,
		Blacklist:           blacklistRepo,
		Scoreboard:          scoreboardRepo,
		Messaging:           messagingSvc,
		Clock:               &clock.DefaultClock{},
		UUIDGenerator:       uuid.New(),
		Logger:              logr.Named("arena"),
	})
	if err != nil {
		logr.Fatal("Failed to create arena service", zap.Error(err))
	}

	server, err := websocket.New(&websocket.Config{
		ArenaService:   arenaSvc,
		AllowedOrigins: cfg.AllowedOrigins,
		InboundRate:    cfg.InboundRate,
		InboundBurst:   cfg.InboundBurst,
		Logger:         logr.Named("http"),
	})
	if err != nil {
		logr.Fatal("Failed to create server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	arenaDone := make(chan struct{})
	go func() {
		defer close(arenaDone)
		if err := arenaSvc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logr.Error("Arena stopped", zap.Error(err))
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			logr.Error("HTTP server failed", zap.Error(err))
		}
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logr.Error("Error stopping server", zap.Error(err))
	}
	<-arenaDone

	logr.Info("Server has been shut down")
}

// newStores picks Redis when an address is configured, memory otherwise
func newStores(cfg *config.Config) (blacklist.Repository, scoreboard.Repository, func(), error) {
	if cfg.RedisAddr == "" {
		return blacklist.NewMemory(), scoreboard.NewMemory(), func() {}, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	blacklistRepo, err := blacklist.NewRedis(&blacklist.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		_ = redisClient.Close()
		return nil, nil, nil, err
	}

	scoreboardRepo, err := scoreboard.NewRedis(&scoreboard.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		_ = redisClient.Close()
		return nil, nil, nil, err
	}

	return blacklistRepo, scoreboardRepo, func() { _ = redisClient.Close() }, nil
}
