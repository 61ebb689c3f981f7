package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/render"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
)

type createGameRequest struct {
	Players [2]struct {
		Color string `json:"color"`
	} `json:"players"`
	Height int `json:"height"`
	Width  int `json:"width"`
}

type moveRequest struct {
	Column *int `json:"column"`
}

type moveResponse struct {
	Result connectfour.MoveResult `json:"result"`
	Game   *entity.Game           `json:"game,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	game, err := that.uGame.CreateGame(r.Context(), usecase.NewGameParams{
		FirstColor:  req.Players[0].Color,
		SecondColor: req.Players[1].Color,
		Height:      req.Height,
		Width:       req.Width,
	})
	if err != nil {
		that.respondWithError(w, statusFor(err), err.Error())
		return
	}

	that.respondWithJSON(w, http.StatusCreated, game)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.GetGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.respondWithError(w, statusFor(err), err.Error())
		return
	}

	that.respondWithJSON(w, http.StatusOK, game)
}

func (that *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.GetGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.respondWithError(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(render.Game(game)))
}

func (that *Server) handleMakeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Column == nil {
		that.respondWithError(w, http.StatusBadRequest, "column is required")
		return
	}

	game, result, err := that.uGame.MakeMove(r.Context(), mux.Vars(r)["id"], *req.Column)
	if err != nil {
		if result.IsRejected() {
			that.respondWithJSON(w, statusFor(err), moveResponse{Result: result, Game: game, Error: err.Error()})
			return
		}

		that.respondWithError(w, statusFor(err), err.Error())
		return
	}

	that.respondWithJSON(w, http.StatusOK, moveResponse{Result: result, Game: game})
}

func (that *Server) handleRestartGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.RestartGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.respondWithError(w, statusFor(err), err.Error())
		return
	}

	that.respondWithJSON(w, http.StatusCreated, game)
}

func (that *Server) handleAbandonGame(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.AbandonGame(r.Context(), mux.Vars(r)["id"]); err != nil {
		that.respondWithError(w, statusFor(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidColumn),
		errors.Is(err, apperror.ErrInvalidBoardSize),
		errors.Is(err, apperror.ErrInvalidParticipants):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrColumnFull),
		errors.Is(err, apperror.ErrGameAlreadyOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	if code == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", message)
		message = http.StatusText(code)
	}

	that.respondWithJSON(w, code, errorResponse{Error: message})
}

func (that *Server) respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		that.logger.Error("failed to marshal response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
