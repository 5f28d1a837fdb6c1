package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/glowgrid/vanishing-tictactoe-backend/internal/entity"
)

type gameManager interface {
	GetOrCreateGame(ctx context.Context, sessionID string, vanishLimit int) (*entity.Game, error)
	NewGame(ctx context.Context, sessionID string, vanishLimit int) (*entity.Game, error)
	ApplyMove(ctx context.Context, sessionID string, row, col int) (*entity.Game, error)
}

// Server is the HTTP surface the game UI talks to: every action maps to
// one handler that runs the engine and returns the fresh state snapshot.
type Server struct {
	logger             *slog.Logger
	manager            gameManager
	defaultVanishLimit int
}

func New(logger *slog.Logger, manager gameManager, defaultVanishLimit int) *Server {
	return &Server{
		logger:             logger,
		manager:            manager,
		defaultVanishLimit: defaultVanishLimit,
	}
}

// Start - starts the HTTP server and shuts it down when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown http server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/ping", that.handlePing).Methods(http.MethodGet)
	router.HandleFunc("/api/game", that.handleGetGame).Methods(http.MethodGet)
	router.HandleFunc("/api/game/new", that.handleNewGame).Methods(http.MethodPost)
	router.HandleFunc("/api/game/move", that.handleMove).Methods(http.MethodPost)

	return router
}
