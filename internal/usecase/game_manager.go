package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/glowgrid/vanishing-tictactoe-backend/internal/apperror"
	"github.com/glowgrid/vanishing-tictactoe-backend/internal/entity"
	"github.com/glowgrid/vanishing-tictactoe-backend/internal/pkg"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, sessionID string, game *entity.Game) error
	GetBySessionID(ctx context.Context, sessionID string) (*entity.Game, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}

// GameManager orchestrates one game per session: it loads state from the
// session store, runs the engine against it and saves the result. Moves
// the engine refuses are not errors, the unchanged state comes back.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger,
		gameRepo: gameRepo,
	}
}

// GetOrCreateGame returns the session's current game, starting a fresh
// one with the given vanish limit when the session has none yet.
func (that *GameManager) GetOrCreateGame(ctx context.Context, sessionID string, vanishLimit int) (*entity.Game, error) {
	game, err := that.gameRepo.GetBySessionID(ctx, sessionID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		return that.NewGame(ctx, sessionID, vanishLimit)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// NewGame discards whatever the session had and starts over. A vanish
// limit change always goes through here: it is configuration, so the
// running game does not survive it.
func (that *GameManager) NewGame(ctx context.Context, sessionID string, vanishLimit int) (*entity.Game, error) {
	if !entity.ValidVanishLimit(vanishLimit) {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidVanishLimit, vanishLimit)
	}

	game := entity.NewGame(pkg.GenerateGameID(), vanishLimit)

	if err := that.gameRepo.CreateOrUpdate(ctx, sessionID, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("new game started", "sessionID", sessionID, "gameID", game.ID, "vanishLimit", vanishLimit)

	return game, nil
}

// ApplyMove runs one turn for the session's game. Illegal moves come
// back as the unchanged state without touching the store.
func (that *GameManager) ApplyMove(ctx context.Context, sessionID string, row, col int) (*entity.Game, error) {
	game, err := that.gameRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if applied := game.ApplyMove(row, col); !applied {
		that.logger.Debug("move ignored", "sessionID", sessionID, "row", row, "col", col)

		return game, nil
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, sessionID, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// DeleteGame drops the session's game from the store.
func (that *GameManager) DeleteGame(ctx context.Context, sessionID string) error {
	if err := that.gameRepo.DeleteBySessionID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
