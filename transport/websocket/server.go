package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/glowgrid/vanishing-tictactoe-backend/internal/entity"
)

type gameManager interface {
	GetOrCreateGame(ctx context.Context, sessionID string, vanishLimit int) (*entity.Game, error)
	NewGame(ctx context.Context, sessionID string, vanishLimit int) (*entity.Game, error)
	ApplyMove(ctx context.Context, sessionID string, row, col int) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, conn *connection, payload json.RawMessage) (*ResponsePayload, error)

// connection carries the per-socket session binding established by the
// "connect" action.
type connection struct {
	sessionID string
}

// Server speaks a small action protocol over WebSocket: each incoming
// Message names an action, the matching handler runs the engine and the
// reply carries the fresh state snapshot under the same action name.
type Server struct {
	logger             *slog.Logger
	manager            gameManager
	defaultVanishLimit int
	upgrader           websocket.Upgrader
	handlers           map[string]handlerFunc
}

func New(logger *slog.Logger, manager gameManager, defaultVanishLimit int) *Server {
	server := &Server{
		logger:             logger,
		manager:            manager,
		defaultVanishLimit: defaultVanishLimit,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionConnect] = server.handleConnect
	server.handlers[ActionGameState] = server.handleGameState
	server.handlers[ActionGameNew] = server.handleNewGame
	server.handlers[ActionGameTurn] = server.handleTurn

	return server
}

// Start - starts the WebSocket server and shuts it down when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	muxer := http.NewServeMux()
	muxer.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		that.serveConnection(ctx, w, req)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     muxer,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established")

	session := &connection{}

	for {
		var message Message
		if err = conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("connection closed unexpectedly", "error", err)
			}

			return
		}

		that.dispatch(ctx, session, conn, &message)
	}
}

// dispatch routes one message to its action handler and writes the
// reply. Handler errors go back to the client as an "error" message,
// the connection stays open.
func (that *Server) dispatch(ctx context.Context, session *connection, conn *websocket.Conn, message *Message) {
	log := that.logger.With("method", "dispatch", "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		that.sendError(conn, message.Action, "unknown action")
		return
	}

	response, err := handler(ctx, session, message.Payload)
	if err != nil {
		log.Error("failed to handle message", "error", err)
		that.sendError(conn, message.Action, err.Error())

		return
	}

	if err = that.sendMessage(conn, message.Action, response); err != nil {
		log.Error("failed to send response", "error", err)
	}
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload *ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *websocket.Conn, action, reason string) {
	body, err := json.Marshal(ErrorPayload{Action: action, Error: reason})
	if err != nil {
		that.logger.Error("failed to marshal error payload", "error", err)
		return
	}

	if err = conn.WriteJSON(Message{Action: ActionError, Payload: body}); err != nil {
		that.logger.Error("failed to write error message", "error", err)
	}
}
