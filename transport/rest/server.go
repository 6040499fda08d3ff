package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type roomReader interface {
	GetRoomInfo(ctx context.Context, roomID string) (*entity.RoomInfo, error)
}

type onlineCounter interface {
	Count() int
}

// Server - read-only HTTP view of the lobby.
type Server struct {
	logger *slog.Logger
	rooms  roomReader
	online onlineCounter
}

func New(logger *slog.Logger, rooms roomReader, online onlineCounter) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		rooms:  rooms,
		online: online,
	}
}

func (that *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/ping", PingHandler).Methods(http.MethodGet)
	router.HandleFunc("/online", that.handleOnline).Methods(http.MethodGet)
	router.HandleFunc("/rooms/{roomID}", that.handleRoom).Methods(http.MethodGet)

	return router
}

// Start - serves until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServe()
	}()

	that.logger.Info("http server started", "port", port)

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
