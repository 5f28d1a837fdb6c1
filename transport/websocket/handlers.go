package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/glowgrid/vanishing-tictactoe-backend/internal/pkg"
)

var ErrNotConnected = errors.New("session not established, send connect first")

// handleConnect binds the socket to a session: an empty session_id gets
// a fresh one, a known one resumes the session's game.
func (that *Server) handleConnect(_ context.Context, conn *connection, payload json.RawMessage) (*ResponsePayload, error) {
	var body ConnectPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &body); err != nil {
			return nil, fmt.Errorf("failed to unmarshal connect payload: %w", err)
		}
	}

	if body.SessionID == "" {
		body.SessionID = pkg.GenerateNewSessionID()
		that.logger.Info("registered new session", "sessionID", body.SessionID)
	} else {
		that.logger.Info("session reconnected", "sessionID", body.SessionID)
	}

	conn.sessionID = body.SessionID

	return &ResponsePayload{SessionID: conn.sessionID}, nil
}

func (that *Server) handleGameState(ctx context.Context, conn *connection, _ json.RawMessage) (*ResponsePayload, error) {
	if conn.sessionID == "" {
		return nil, ErrNotConnected
	}

	game, err := that.manager.GetOrCreateGame(ctx, conn.sessionID, that.defaultVanishLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create game: %w", err)
	}

	return &ResponsePayload{SessionID: conn.sessionID, Game: newGameResponse(game)}, nil
}

func (that *Server) handleNewGame(ctx context.Context, conn *connection, payload json.RawMessage) (*ResponsePayload, error) {
	if conn.sessionID == "" {
		return nil, ErrNotConnected
	}

	var body NewGamePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &body); err != nil {
			return nil, fmt.Errorf("failed to unmarshal new game payload: %w", err)
		}
	}

	if body.VanishLimit == 0 {
		body.VanishLimit = that.defaultVanishLimit
	}

	game, err := that.manager.NewGame(ctx, conn.sessionID, body.VanishLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to start new game: %w", err)
	}

	return &ResponsePayload{SessionID: conn.sessionID, Game: newGameResponse(game)}, nil
}

// handleTurn applies one move. A move the engine refuses still answers
// with the unchanged snapshot, mirroring the REST behavior.
func (that *Server) handleTurn(ctx context.Context, conn *connection, payload json.RawMessage) (*ResponsePayload, error) {
	if conn.sessionID == "" {
		return nil, ErrNotConnected
	}

	var body TurnPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("failed to unmarshal turn payload: %w", err)
	}

	game, err := that.manager.ApplyMove(ctx, conn.sessionID, body.Row, body.Col)
	if err != nil {
		return nil, fmt.Errorf("failed to apply move: %w", err)
	}

	return &ResponsePayload{SessionID: conn.sessionID, Game: newGameResponse(game)}, nil
}
