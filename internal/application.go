package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/presence"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/rest"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	statsRepo, closeStats, err := newStatsRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStats()

	hub := websocket.NewHub(logger)
	roomRepo := repository.NewRoomRepository()
	roomManager := usecase.NewRoomManager(logger, roomRepo, statsRepo, hub, conf.Stats.Timeout)
	counter := presence.New(logger, hub)

	var servers sync.WaitGroup

	// servers stop first, their disconnects may still report matches, then the stats store closes
	defer func() {
		cancel()
		servers.Wait()
		roomManager.Wait()
	}()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	servers.Add(1)
	go func() {
		defer servers.Done()

		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, roomManager, counter)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	servers.Add(1)
	go func() {
		defer servers.Done()

		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, websocket.Config{
			ReadBufferSize:  conf.Socket.ReadBuffer,
			WriteBufferSize: conf.Socket.WriteBuffer,
			SendQueue:       conf.Socket.SendQueue,
			PongWait:        conf.Socket.PongWait,
			WriteWait:       conf.Socket.WriteWait,
			AllowedOrigins:  conf.Socket.AllowedOrigins,
		}, hub, roomManager, counter)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newStatsRepository - Redis backed when stats are enabled, a no-op otherwise.
func newStatsRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.StatsRepository, func(), error) {
	if !conf.Stats.Enabled {
		log.Info("match statistics disabled")
		return repository.NewDiscardStatsRepository(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewStatsRepository(redisStorage, conf.Stats.KeyPrefix), closeFn, nil
}
