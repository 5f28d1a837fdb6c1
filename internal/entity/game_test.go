package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustApply(t *testing.T, game *Game, row, col int) {
	t.Helper()

	require.True(t, game.ApplyMove(row, col), "move (%d,%d) should be accepted", row, col)
}

func occupiedCells(game *Game) int {
	count := 0
	for _, cell := range game.Board {
		if cell != EmptyCell {
			count++
		}
	}
	return count
}

func TestNewGame(t *testing.T) {
	// When: create a new game instance
	game := NewGame("000", DefaultVanishLimit)

	// Then: the game should have the expected initial state
	expectedGame := Game{
		ID:          "000",
		Board:       [BoardCells]string{},
		History:     []Move{},
		VanishLimit: DefaultVanishLimit,
		Turn:        PlayerX,
		Winner:      "",
		Status:      StatusOngoing,
		NextSeq:     0,
	}

	require.NotNil(t, game)
	require.Equal(t, expectedGame, *game)
}

func TestValidVanishLimit(t *testing.T) {
	// Then: only limits from 2 to 5 are accepted
	for limit := MinVanishLimit; limit <= MaxVanishLimit; limit++ {
		assert.True(t, ValidVanishLimit(limit))
	}

	assert.False(t, ValidVanishLimit(0))
	assert.False(t, ValidVanishLimit(1))
	assert.False(t, ValidVanishLimit(6))
	assert.False(t, ValidVanishLimit(-3))
}

func TestGame_ApplyMove(t *testing.T) {
	t.Run("Places mark and toggles turn", func(t *testing.T) {
		// Given: a new game
		game := NewGame("000", DefaultVanishLimit)

		// When: X plays the center
		applied := game.ApplyMove(1, 1)

		// Then: the mark lands, the move is recorded, O is to play
		require.True(t, applied)
		assert.Equal(t, PlayerX, game.Cell(1, 1))
		assert.Equal(t, PlayerO, game.Turn)
		require.Len(t, game.History, 1)
		assert.Equal(t, Move{Row: 1, Col: 1, Player: PlayerX, Seq: 0}, game.History[0])
	})

	t.Run("No-op on occupied cell", func(t *testing.T) {
		// Given: a game where X already took the corner
		game := NewGame("000", DefaultVanishLimit)
		mustApply(t, game, 0, 0)

		before := *game

		// When: O tries the same cell
		applied := game.ApplyMove(0, 0)

		// Then: the move is ignored and the state is untouched
		require.False(t, applied)
		assert.Equal(t, before, *game)
	})

	t.Run("No-op on out of range coordinates", func(t *testing.T) {
		// Given: a new game
		game := NewGame("000", DefaultVanishLimit)

		before := *game

		// When: moves land outside the board
		for _, coords := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {9, 9}} {
			applied := game.ApplyMove(coords[0], coords[1])

			// Then: every one is ignored
			require.False(t, applied, "coords %v", coords)
		}

		assert.Equal(t, before, *game)
	})

	t.Run("Turn alternation holds for every applied move", func(t *testing.T) {
		// Given: a game with the smallest vanish limit
		game := NewGame("000", MinVanishLimit)

		// When: moves are played greedily into the first empty cell
		for i := 0; i < 30 && game.IsOngoing(); i++ {
			turnBefore := game.Turn

			played := false
			for row := 0; row < BoardSide && !played; row++ {
				for col := 0; col < BoardSide && !played; col++ {
					if game.Cell(row, col) != EmptyCell {
						continue
					}

					mustApply(t, game, row, col)
					played = true

					// Then: the board never holds more marks than capacity
					assert.LessOrEqual(t, occupiedCells(game), game.Capacity())

					// Then: an applied non-winning move hands the turn over
					if game.IsOngoing() {
						assert.NotEqual(t, turnBefore, game.Turn)
					}
				}
			}
		}
	})
}

func TestGame_Eviction(t *testing.T) {
	t.Run("Oldest move vanishes once history exceeds capacity", func(t *testing.T) {
		// Given: a game retaining 4 marks (vanish limit 2)
		game := NewGame("000", MinVanishLimit)

		// When: five moves are played with no winner forming
		mustApply(t, game, 0, 0) // X
		mustApply(t, game, 1, 1) // O
		mustApply(t, game, 0, 1) // X
		mustApply(t, game, 2, 2) // O
		mustApply(t, game, 1, 0) // X, pushes history to 5

		// Then: the first move is gone and its cell is empty again
		assert.Equal(t, EmptyCell, game.Cell(0, 0))
		require.Len(t, game.History, 4)
		assert.Equal(t, Move{Row: 1, Col: 1, Player: PlayerO, Seq: 1}, game.History[0])

		// Then: moves 2-5 survive in order
		for i, move := range game.History {
			assert.Equal(t, i+1, move.Seq)
		}

		assert.Equal(t, StatusOngoing, game.Status)
	})

	t.Run("Evicted cell can be replayed", func(t *testing.T) {
		// Given: a game that already evicted the (0,0) mark
		game := NewGame("000", MinVanishLimit)
		mustApply(t, game, 0, 0) // X
		mustApply(t, game, 1, 1) // O
		mustApply(t, game, 0, 1) // X
		mustApply(t, game, 2, 2) // O
		mustApply(t, game, 1, 0) // X, evicts (0,0)

		// When: O takes the freed corner
		applied := game.ApplyMove(0, 0)

		// Then: the move lands and the next oldest mark vanishes instead
		require.True(t, applied)
		assert.Equal(t, PlayerO, game.Cell(0, 0))
		assert.Equal(t, EmptyCell, game.Cell(1, 1))
		require.Len(t, game.History, 4)
	})

	t.Run("Win is judged on the post-eviction board", func(t *testing.T) {
		// Given: X is about to complete the top row while the (0,0)
		// mark is due to vanish on the same move
		game := NewGame("000", MinVanishLimit)
		mustApply(t, game, 0, 0) // X
		mustApply(t, game, 1, 1) // O
		mustApply(t, game, 0, 1) // X
		mustApply(t, game, 2, 2) // O

		// When: X plays (0,2), the fifth move overall
		mustApply(t, game, 0, 2)

		// Then: (0,0) vanished first, so the row is broken and play continues
		assert.Equal(t, EmptyCell, game.Cell(0, 0))
		assert.Equal(t, StatusOngoing, game.Status)
		assert.Empty(t, game.Winner)
		assert.Equal(t, PlayerO, game.Turn)
	})
}

func TestGame_WinScenario(t *testing.T) {
	// Given: a game with the default vanish limit (capacity 6)
	game := NewGame("000", DefaultVanishLimit)

	// When: X completes the top row on the fifth move
	mustApply(t, game, 0, 0) // X
	mustApply(t, game, 1, 1) // O
	mustApply(t, game, 0, 1) // X
	mustApply(t, game, 1, 0) // O
	mustApply(t, game, 0, 2) // X wins

	// Then: X won, the game is terminal, nothing vanished yet
	assert.Equal(t, StatusFinished, game.Status)
	assert.Equal(t, PlayerX, game.Winner)
	assert.Len(t, game.History, 5)
	assert.True(t, game.IsFinished())
}

func TestGame_TieScenario(t *testing.T) {
	// Given: a game large enough that no mark vanishes over 9 moves
	game := NewGame("000", MaxVanishLimit)

	// When: the board fills with no line ever forming
	moves := [][2]int{
		{0, 0}, // X
		{0, 1}, // O
		{0, 2}, // X
		{1, 0}, // O
		{1, 2}, // X
		{1, 1}, // O
		{2, 0}, // X
		{2, 2}, // O
		{2, 1}, // X
	}
	for _, move := range moves {
		mustApply(t, game, move[0], move[1])
	}

	// Then: the board is full and the game ends in a tie
	assert.True(t, IsBoardFull(game.Board))
	assert.Equal(t, StatusFinished, game.Status)
	assert.Equal(t, PlayerTie, game.Winner)
	assert.Len(t, game.History, 9)
}

func TestGame_TerminalLock(t *testing.T) {
	// Given: a finished game with empty cells left
	game := NewGame("000", DefaultVanishLimit)
	mustApply(t, game, 0, 0) // X
	mustApply(t, game, 1, 1) // O
	mustApply(t, game, 0, 1) // X
	mustApply(t, game, 1, 0) // O
	mustApply(t, game, 0, 2) // X wins

	require.True(t, game.IsFinished())
	before := *game

	// When: more moves come in on free cells
	assert.False(t, game.ApplyMove(2, 0))
	assert.False(t, game.ApplyMove(2, 1))
	assert.False(t, game.ApplyMove(2, 2))

	// Then: board, history and status are all unchanged
	assert.Equal(t, before, *game)
}

func TestDetermineGameResult(t *testing.T) {
	t.Run("Winner X by row", func(t *testing.T) {
		board := [BoardCells]string{
			PlayerX, PlayerX, PlayerX,
			PlayerO, PlayerO, EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
		}

		require.Equal(t, PlayerX, DetermineGameResult(board))
	})

	t.Run("Winner O by column", func(t *testing.T) {
		board := [BoardCells]string{
			PlayerO, PlayerX, EmptyCell,
			PlayerO, PlayerX, EmptyCell,
			PlayerO, EmptyCell, PlayerX,
		}

		require.Equal(t, PlayerO, DetermineGameResult(board))
	})

	t.Run("Winner X by diagonal", func(t *testing.T) {
		board := [BoardCells]string{
			PlayerX, PlayerO, EmptyCell,
			PlayerO, PlayerX, EmptyCell,
			EmptyCell, EmptyCell, PlayerX,
		}

		require.Equal(t, PlayerX, DetermineGameResult(board))
	})

	t.Run("Ongoing when no line and board open", func(t *testing.T) {
		board := [BoardCells]string{
			PlayerX, PlayerO, PlayerX,
			EmptyCell, PlayerO, EmptyCell,
			PlayerX, EmptyCell, EmptyCell,
		}

		require.Equal(t, "", DetermineGameResult(board))
	})

	t.Run("Tie on full board with no line", func(t *testing.T) {
		board := [BoardCells]string{
			PlayerO, PlayerX, PlayerO,
			PlayerO, PlayerX, PlayerX,
			PlayerX, PlayerO, PlayerO,
		}

		assert.Equal(t, PlayerTie, DetermineGameResult(board))
	})
}

func TestIsBoardFull(t *testing.T) {
	assert.False(t, IsBoardFull([BoardCells]string{}))

	assert.False(t, IsBoardFull([BoardCells]string{
		PlayerX, PlayerO, PlayerX,
		PlayerO, EmptyCell, PlayerX,
		PlayerO, PlayerX, PlayerO,
	}))

	assert.True(t, IsBoardFull([BoardCells]string{
		PlayerX, PlayerO, PlayerX,
		PlayerO, PlayerX, PlayerX,
		PlayerO, PlayerX, PlayerO,
	}))
}

func TestGame_CellAge(t *testing.T) {
	// Given: three moves in a fresh game
	game := NewGame("000", DefaultVanishLimit)
	mustApply(t, game, 0, 0) // X
	mustApply(t, game, 1, 1) // O
	mustApply(t, game, 2, 2) // X

	// Then: the latest move has age 0, the first age 2
	age, ok := game.CellAge(2, 2)
	require.True(t, ok)
	assert.Equal(t, 0, age)

	age, ok = game.CellAge(1, 1)
	require.True(t, ok)
	assert.Equal(t, 1, age)

	age, ok = game.CellAge(0, 0)
	require.True(t, ok)
	assert.Equal(t, 2, age)

	// Then: empty and off-board cells report no age
	_, ok = game.CellAge(0, 1)
	assert.False(t, ok)

	_, ok = game.CellAge(5, 5)
	assert.False(t, ok)
}

func TestGame_MoveVanishesIn(t *testing.T) {
	// Given: a game at full capacity (vanish limit 2, four marks)
	game := NewGame("000", MinVanishLimit)
	mustApply(t, game, 0, 0) // X
	mustApply(t, game, 1, 1) // O
	mustApply(t, game, 0, 1) // X
	mustApply(t, game, 2, 2) // O

	// Then: the oldest mark vanishes on the very next move
	assert.Equal(t, 1, game.MoveVanishesIn(0))
	assert.Equal(t, 4, game.MoveVanishesIn(len(game.History)-1))
}
