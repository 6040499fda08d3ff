package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

const (
	maxMessageSize  = 4096
	shutdownTimeout = 5 * time.Second

	defaultPongWait  = 60 * time.Second
	defaultWriteWait = 10 * time.Second
	defaultSendQueue = 256
)

type Config struct {
	ReadBufferSize  int
	WriteBufferSize int
	SendQueue       int
	PongWait        time.Duration
	WriteWait       time.Duration
	AllowedOrigins  []string
}

type roomUseCase interface {
	CreateRoom(ctx context.Context, sessionID, roomID string, profile entity.Profile) (*entity.RoomInfo, error)
	JoinRoom(ctx context.Context, sessionID, roomID string, profile entity.Profile) (*entity.RoomInfo, error)
	LeaveRoom(ctx context.Context, sessionID, roomID string) error
	GetRoomInfo(ctx context.Context, roomID string) (*entity.RoomInfo, error)

	StartGame(ctx context.Context, sessionID, roomID string) error
	MakeMove(ctx context.Context, sessionID, roomID string, row, col int) error
	ResetGame(ctx context.Context, sessionID, roomID string) error
}

type presenceCounter interface {
	Connect() int
	Disconnect() int
}

type handlerFunc func(ctx context.Context, session *Session, msg *Message) (any, error)

type Server struct {
	logger   *slog.Logger
	conf     Config
	upgrader websocket.Upgrader

	hub      *Hub
	rooms    roomUseCase
	presence presenceCounter

	handlers map[string]handlerFunc

	// running session loops, drained on shutdown
	sessions sync.WaitGroup
}

func New(logger *slog.Logger, conf Config, hub *Hub, rooms roomUseCase, presence presenceCounter) *Server {
	if conf.PongWait <= 0 {
		conf.PongWait = defaultPongWait
	}

	if conf.WriteWait <= 0 {
		conf.WriteWait = defaultWriteWait
	}

	if conf.SendQueue <= 0 {
		conf.SendQueue = defaultSendQueue
	}

	server := &Server{
		logger:   logger.With("component", "websocket"),
		conf:     conf,
		hub:      hub,
		rooms:    rooms,
		presence: presence,

		handlers: make(map[string]handlerFunc),
	}

	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  conf.ReadBufferSize,
		WriteBufferSize: conf.WriteBufferSize,
		CheckOrigin:     server.checkOrigin,
	}

	server.handlers[actionCreateRoom] = server.handleCreateRoom
	server.handlers[actionJoinRoom] = server.handleJoinRoom
	server.handlers[actionLeaveRoom] = server.handleLeaveRoom
	server.handlers[actionGetRoomInfo] = server.handleGetRoomInfo
	server.handlers[actionStartGame] = server.handleStartGame
	server.handlers[actionMakeMove] = server.handleMakeMove
	server.handlers[actionResetGame] = server.handleResetGame

	return server
}

// Handler - routes /ws to the session loop.
func (that *Server) Handler(ctx context.Context) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveSession(ctx, w, r)
	}).Methods(http.MethodGet)

	return router
}

// Start - starts WebSocket server and stops it when ctx is done. It returns only after every
// session has run its disconnect path.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServe()
	}()

	that.logger.Info("websocket server started", "port", port)

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// hijacked connections are not tracked by Shutdown
	that.hub.closeAll()

	err := srv.Shutdown(shutdownCtx)

	that.drain()

	if err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// drain - closes every connection and waits for the session loops to finish.
func (that *Server) drain() {
	that.hub.closeAll()
	that.sessions.Wait()
}

func (that *Server) checkOrigin(req *http.Request) bool {
	if len(that.conf.AllowedOrigins) == 0 || slices.Contains(that.conf.AllowedOrigins, "*") {
		return true
	}

	return slices.Contains(that.conf.AllowedOrigins, req.Header.Get("Origin"))
}

// serveSession - upgrades the request and runs the session until the peer goes away.
func (that *Server) serveSession(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveSession")

	that.sessions.Add(1)
	defer that.sessions.Done()

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	session := newSession(uuid.NewString(), conn, that.conf.SendQueue, that.logger)

	if !that.hub.register(session) {
		log.Info("server is shutting down, connection refused")
		_ = conn.Close()
		return
	}
	session.reply(entity.EventSession, "", entity.SessionPayload{SessionID: session.ID})
	that.presence.Connect()

	log.Info("session connected", "sessionID", session.ID)

	go session.writeLoop(that.conf.PongWait*9/10, that.conf.WriteWait)

	that.readLoop(ctx, session)
	that.disconnect(context.WithoutCancel(ctx), session)
}

func (that *Server) readLoop(ctx context.Context, session *Session) {
	log := session.logger.With("method", "readLoop")

	session.conn.SetReadLimit(maxMessageSize)
	_ = session.conn.SetReadDeadline(time.Now().Add(that.conf.PongWait))
	session.conn.SetPongHandler(func(string) error {
		return session.conn.SetReadDeadline(time.Now().Add(that.conf.PongWait))
	})

	for {
		_, data, err := session.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("connection closed unexpectedly", "error", err)
			}

			return
		}

		var msg Message
		if err = json.Unmarshal(data, &msg); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			continue
		}

		that.dispatch(ctx, session, &msg)
	}
}

// dispatch - runs the intent and acknowledges it when the client asked for it.
func (that *Server) dispatch(ctx context.Context, session *Session, msg *Message) {
	log := session.logger.With("method", "dispatch", "event", msg.Event)

	var (
		data any
		err  error
	)

	handler, ok := that.handlers[msg.Event]
	if ok {
		data, err = handler(ctx, session, msg)
	} else {
		err = apperror.ErrUnknownEvent
	}

	ack := AckPayload{Data: data}

	if err != nil {
		ack = AckPayload{Error: apperror.Message(err)}

		if apperror.IsKnown(err) {
			log.Debug("intent rejected", "error", err)
		} else {
			log.Error("failed to process message", "error", err)
		}
	}

	if msg.ID == "" {
		return
	}

	session.reply(entity.EventAck, msg.ID, ack)
}

// disconnect - leaves the session's room and forgets the session. Runs once per connection.
func (that *Server) disconnect(ctx context.Context, session *Session) {
	log := session.logger.With("method", "disconnect")

	if roomID := session.RoomID(); roomID != "" {
		err := that.rooms.LeaveRoom(ctx, session.ID, roomID)
		if err != nil && !errors.Is(err, apperror.ErrNotInRoom) && !errors.Is(err, apperror.ErrRoomNotFound) {
			log.Error("failed to leave room", "roomID", roomID, "error", err)
		}
	}

	that.hub.unregister(session)
	that.presence.Disconnect()

	log.Info("session disconnected")
}
