package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	CreateGame(ctx context.Context, params usecase.NewGameParams) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeMove(ctx context.Context, id string, column int) (*entity.Game, connectfour.MoveResult, error)
	RestartGame(ctx context.Context, id string) (*entity.Game, error)
	AbandonGame(ctx context.Context, id string) error
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
	router *mux.Router
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
		router: mux.NewRouter(),
	}

	server.router.HandleFunc("/ping", NewPingHandler().PingHandler).Methods(http.MethodGet)
	server.router.HandleFunc("/games", server.handleCreateGame).Methods(http.MethodPost)
	server.router.HandleFunc("/games/{id}", server.handleGetGame).Methods(http.MethodGet)
	server.router.HandleFunc("/games/{id}", server.handleAbandonGame).Methods(http.MethodDelete)
	server.router.HandleFunc("/games/{id}/board", server.handleGetBoard).Methods(http.MethodGet)
	server.router.HandleFunc("/games/{id}/moves", server.handleMakeMove).Methods(http.MethodPost)
	server.router.HandleFunc("/games/{id}/restart", server.handleRestartGame).Methods(http.MethodPost)

	return server
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
