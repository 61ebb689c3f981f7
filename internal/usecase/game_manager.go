package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/pkg"
)

const (
	DefaultFirstColor  = "red"
	DefaultSecondColor = "yellow"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type publisher interface {
	Publish(gameID string, event *Event)
}

// NewGameParams describes a game to create. Zero values fall back to the manager defaults.
type NewGameParams struct {
	FirstColor  string
	SecondColor string
	Height      int
	Width       int
}

// GameManager owns game sessions. Moves are processed one at a time.
type GameManager struct {
	logger    *slog.Logger
	gameRepo  gameRepo
	publisher publisher

	defaultHeight int
	defaultWidth  int

	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, publisher publisher, defaultHeight, defaultWidth int) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		gameRepo:  gameRepo,
		publisher: publisher,

		defaultHeight: defaultHeight,
		defaultWidth:  defaultWidth,
	}
}

func (that *GameManager) CreateGame(ctx context.Context, params NewGameParams) (*entity.Game, error) {
	if params.FirstColor == "" {
		params.FirstColor = DefaultFirstColor
	}

	if params.SecondColor == "" {
		params.SecondColor = DefaultSecondColor
	}

	if params.Height == 0 {
		params.Height = that.defaultHeight
	}

	if params.Width == 0 {
		params.Width = that.defaultWidth
	}

	engine, err := connectfour.NewGame(
		pkg.GenerateGameID(),
		entity.Participant{Color: params.FirstColor},
		entity.Participant{Color: params.SecondColor},
		params.Height,
		params.Width,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	game := engine.Game()
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	that.logger.Info("game created", "game_id", game.ID, "height", params.Height, "width", params.Width)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeMove applies a move for the player on turn. A rejected move returns its result
// together with an error wrapping the rejection reason, and nothing is stored.
func (that *GameManager) MakeMove(ctx context.Context, id string, column int) (*entity.Game, connectfour.MoveResult, error) {
	log := that.logger.With("method", "MakeMove", "game_id", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, connectfour.MoveResult{}, err
	}

	engine := connectfour.NewEngine(game)

	result := engine.ApplyMove(column)
	if result.IsRejected() {
		log.Debug("move rejected", "column", column, "reason", result.Err())
		return game, result, fmt.Errorf("move rejected: %w", result.Err())
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, connectfour.MoveResult{}, fmt.Errorf("failed to update game: %w", err)
	}

	log.Info("move applied", "outcome", result.Outcome, "row", result.Row, "column", result.Column, "player", result.Player)

	that.publish(game.ID, &Event{Type: EventMove, Game: game, Result: &result})

	return game, result, nil
}

// RestartGame replaces the session with a fresh game for the same participants and size.
func (that *GameManager) RestartGame(ctx context.Context, id string) (*entity.Game, error) {
	log := that.logger.With("method", "RestartGame", "game_id", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	previous, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := that.CreateGame(ctx, NewGameParams{
		FirstColor:  previous.Participants[0].Color,
		SecondColor: previous.Participants[1].Color,
		Height:      previous.Board.Height,
		Width:       previous.Board.Width,
	})
	if err != nil {
		return nil, err
	}

	that.deleteGame(ctx, previous.ID)

	log.Info("game restarted", "next_game_id", next.ID)

	that.publish(previous.ID, &Event{Type: EventRestart, Game: next, NextGameID: next.ID})

	return next, nil
}

func (that *GameManager) AbandonGame(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game abandoned", "game_id", id)

	that.publish(id, &Event{Type: EventAbandon})

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, id string) {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		that.logger.Error("failed to delete game", "game_id", id, "error", err)
	}
}

func (that *GameManager) publish(gameID string, event *Event) {
	if that.publisher == nil {
		return
	}

	that.publisher.Publish(gameID, event)
}
