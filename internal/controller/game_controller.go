package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/minimax-chess/internal/engine"
	"github.com/benbeisheim/minimax-chess/internal/middleware"
	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Color string `json:"color"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := middleware.PlayerID(c)

	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, color, err := gc.gameService.CreateGame(playerID, req.Color)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	playerID := middleware.PlayerID(c)

	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}

	gameState, err := gc.gameService.HandleMove(c.Params("gameId"), playerID, move)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	playerID := middleware.PlayerID(c)

	gameState, err := gc.gameService.Undo(c.Params("gameId"), playerID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotParticipant):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrAIThinking),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrStalePosition),
		errors.Is(err, engine.ErrNotYourTurn),
		errors.Is(err, engine.ErrEmptyHistory):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrInvalidColor):
		return fiber.StatusBadRequest
	case errors.Is(err, engine.ErrInvalidMove),
		errors.Is(err, engine.ErrKingExposed),
		errors.Is(err, engine.ErrNoPiece),
		errors.Is(err, engine.ErrOutOfBounds):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
