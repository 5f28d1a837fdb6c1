package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowgrid/vanishing-tictactoe-backend/internal/apperror"
	"github.com/glowgrid/vanishing-tictactoe-backend/internal/entity"
	"github.com/glowgrid/vanishing-tictactoe-backend/testing/suite"
)

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a fresh game bound to a session
	game := entity.NewGame("g123", entity.DefaultVanishLimit)

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, "session-1", game)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestGameRepository_GetBySessionID(t *testing.T) {
	t.Run("Roundtrips the full game state", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a game with a few moves and an eviction behind it
		game := entity.NewGame("g123", entity.MinVanishLimit)
		game.ApplyMove(0, 0)
		game.ApplyMove(1, 1)
		game.ApplyMove(0, 1)
		game.ApplyMove(2, 2)
		game.ApplyMove(1, 0) // evicts (0,0)

		err := gameRepo.CreateOrUpdate(ctx, "session-1", game)
		require.NoError(t, err)

		// When: the session's game is loaded back
		retrieved, err := gameRepo.GetBySessionID(ctx, "session-1")

		// Then: board, history and counters all survive the roundtrip
		require.NoError(t, err)
		require.Equal(t, game, retrieved)
		assert.Equal(t, entity.EmptyCell, retrieved.Cell(0, 0))
		assert.Len(t, retrieved.History, 4)
	})

	t.Run("Returns ErrGameNotFound for an unknown session", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: loading a session that never stored a game
		retrieved, err := gameRepo.GetBySessionID(ctx, "no-such-session")

		// Then: the not-found sentinel comes back
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestGameRepository_DeleteBySessionID(t *testing.T) {
	t.Run("Deletes the stored game", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored game
		game := entity.NewGame("g123", entity.DefaultVanishLimit)
		err := gameRepo.CreateOrUpdate(ctx, "session-1", game)
		require.NoError(t, err)

		// When: the session's game is deleted
		err = gameRepo.DeleteBySessionID(ctx, "session-1")

		// Then: it is gone
		require.NoError(t, err)

		_, err = gameRepo.GetBySessionID(ctx, "session-1")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Deleting an unknown session is not an error", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: deleting a session that has no game
		err := gameRepo.DeleteBySessionID(ctx, "no-such-session")

		// Then: redis DEL on a missing key succeeds
		require.NoError(t, err)
	})
}
