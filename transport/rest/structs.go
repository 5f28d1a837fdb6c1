package rest

import "github.com/glowgrid/vanishing-tictactoe-backend/internal/entity"

type newGameRequest struct {
	VanishLimit int `json:"vanish_limit"`
}

type moveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// GameResponse is the state snapshot the UI renders from. CellAges maps
// each board cell to its move age (0 = most recent, -1 = empty) so the
// client can fade marks that are close to vanishing.
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

type errorResponse struct {
	Error string `json:"error"`
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
