package service

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/minimax-chess/internal/engine"
	"github.com/benbeisheim/minimax-chess/internal/model"
)

var (
	ErrAIThinking   = errors.New("engine is thinking")
	ErrInvalidColor = errors.New("invalid color")
	ErrGameOver     = model.ErrGameOver
)

type GameService struct {
	gameManager  *GameManager
	ai           *AIPlayer
	defaultHuman engine.Color
}

func NewGameService(gameManager *GameManager, ai *AIPlayer, defaultHuman engine.Color) *GameService {
	return &GameService{
		gameManager:  gameManager,
		ai:           ai,
		defaultHuman: defaultHuman,
	}
}

// CreateGame opens a session for playerID. An empty color uses the default.
// When the human plays Black the engine starts thinking right away.
func (gs *GameService) CreateGame(playerID string, color string) (string, engine.Color, error) {
	human := gs.defaultHuman
	if color != "" {
		c, err := engine.ParseColor(color)
		if err != nil {
			return "", human, fmt.Errorf("%w: %v", ErrInvalidColor, err)
		}
		human = c
	}
	game := gs.gameManager.CreateGame(playerID, human)
	gs.think(game)
	return game.ID, human, nil
}

func (gs *GameService) Game(gameID string) (*model.Game, error) {
	return gs.gameManager.GetGame(gameID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// HandleMove applies a human move, broadcasts it and lets the engine reply.
func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	if game.Thinking() {
		return model.GameState{}, ErrAIThinking
	}
	if err := game.MakeMove(playerID, move); err != nil {
		return model.GameState{}, err
	}
	gs.think(game)
	game.Broadcast()
	return game.GetState(), nil
}

// Undo takes back the human's last move and the engine's answer to it.
func (gs *GameService) Undo(gameID string, playerID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	if game.Thinking() {
		return model.GameState{}, ErrAIThinking
	}
	if err := game.Undo(playerID); err != nil {
		return model.GameState{}, err
	}
	gs.think(game)
	game.Broadcast()
	return game.GetState(), nil
}

func (gs *GameService) think(game *model.Game) {
	gs.ai.StartThinking(game, func(g *model.Game) {
		g.Broadcast()
	})
}

// Wait blocks until the engine has finished every pending decision.
func (gs *GameService) Wait() {
	gs.ai.Wait()
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
