package websocket

import (
	"encoding/json"

	"github.com/glowgrid/vanishing-tictactoe-backend/internal/entity"
)

const (
	ActionConnect   = "connect"
	ActionGameState = "game:state"
	ActionGameNew   = "game:new"
	ActionGameTurn  = "game:turn"
	ActionError     = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ConnectPayload struct {
	SessionID string `json:"session_id,omitempty"`
}

type NewGamePayload struct {
	VanishLimit int `json:"vanish_limit,omitempty"`
}

type TurnPayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type ResponsePayload struct {
	SessionID string        `json:"session_id"`
	Game      *GameResponse `json:"game,omitempty"`
}

type ErrorPayload struct {
	Action string `json:"action"`
	Error  string `json:"error"`
}

// GameResponse mirrors the REST snapshot: board, turn, winner, status,
// plus the per-cell ages and per-move vanish countdowns the UI fades by.
type GameResponse struct {
	ID          string                    `json:"id"`
	Board       [entity.BoardCells]string `json:"board"`
	Turn        string                    `json:"turn,omitempty"`
	Winner      string                    `json:"winner,omitempty"`
	Status      string                    `json:"status"`
	VanishLimit int                       `json:"vanish_limit"`
	CellAges    [entity.BoardCells]int    `json:"cell_ages"`
	History     []MoveResponse            `json:"history"`
}

type MoveResponse struct {
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	Player     string `json:"player"`
	VanishesIn int    `json:"vanishes_in"`
}

func newGameResponse(game *entity.Game) *GameResponse {
	response := &GameResponse{
		ID:          game.ID,
		Board:       game.Board,
		Turn:        game.Turn,
		Winner:      game.Winner,
		Status:      game.Status,
		VanishLimit: game.VanishLimit,
		History:     make([]MoveResponse, 0, len(game.History)),
	}

	for row := 0; row < entity.BoardSide; row++ {
		for col := 0; col < entity.BoardSide; col++ {
			cell := row*entity.BoardSide + col

			age, ok := game.CellAge(row, col)
			if !ok {
				response.CellAges[cell] = -1
				continue
			}

			response.CellAges[cell] = age
		}
	}

	for i, move := range game.History {
		response.History = append(response.History, MoveResponse{
			Row:        move.Row,
			Col:        move.Col,
			Player:     move.Player,
			VanishesIn: game.MoveVanishesIn(i),
		})
	}

	return response
}
