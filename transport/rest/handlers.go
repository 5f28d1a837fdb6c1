package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/glowgrid/vanishing-tictactoe-backend/internal/apperror"
)

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// handleGetGame returns the session's current game, starting one with
// the default vanish limit when the session is new.
func (that *Server) handleGetGame(w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleGetGame")

	sessionID := that.getOrSetSession(w, req)

	game, err := that.manager.GetOrCreateGame(req.Context(), sessionID, that.defaultVanishLimit)
	if err != nil {
		log.Error("failed to get or create game", "error", err)
		that.writeError(w, http.StatusInternalServerError, "failed to get game")

		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game))
}

// handleNewGame discards the session's game and starts over. An absent
// or zero vanish_limit means the configured default; anything outside
// {2..5} is rejected.
func (that *Server) handleNewGame(w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleNewGame")

	sessionID := that.getOrSetSession(w, req)

	var payload newGameRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if payload.VanishLimit == 0 {
		payload.VanishLimit = that.defaultVanishLimit
	}

	game, err := that.manager.NewGame(req.Context(), sessionID, payload.VanishLimit)
	if errors.Is(err, apperror.ErrInvalidVanishLimit) {
		that.writeError(w, http.StatusBadRequest, err.Error())

		return
	}

	if err != nil {
		log.Error("failed to start new game", "error", err)
		that.writeError(w, http.StatusInternalServerError, "failed to start new game")

		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game))
}

// handleMove applies one move and returns the resulting snapshot. A
// move the engine refuses is not an error: the unchanged state comes
// back and the client re-renders it.
func (that *Server) handleMove(w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleMove")

	sessionID := that.getOrSetSession(w, req)

	var payload moveRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	game, err := that.manager.ApplyMove(req.Context(), sessionID, payload.Row, payload.Col)
	if errors.Is(err, apperror.ErrGameNotFound) {
		that.writeError(w, http.StatusNotFound, "no game for this session")

		return
	}

	if err != nil {
		log.Error("failed to apply move", "error", err)
		that.writeError(w, http.StatusInternalServerError, "failed to apply move")

		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *Server) writeError(w http.ResponseWriter, status int, message string) {
	that.writeJSON(w, status, errorResponse{Error: message})
}
