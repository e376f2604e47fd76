package service

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/benbeisheim/minimax-chess/internal/engine"
	"github.com/benbeisheim/minimax-chess/internal/model"
)

var ErrGameNotFound = errors.New("game not found")

// GameManager owns the live sessions.
type GameManager struct {
	games map[string]*model.Game
	clock time.Duration
	mu    sync.RWMutex
}

func NewGameManager(clock time.Duration) *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
		clock: clock,
	}
}

func (gm *GameManager) CreateGame(owner string, human engine.Color) *model.Game {
	game := model.NewGame(uuid.New().String(), owner, human, gm.clock)

	gm.mu.Lock()
	gm.games[game.ID] = game
	gm.mu.Unlock()

	log.Infof("game %s created for player %s playing %s", game.ID, owner, human)
	return game
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) RemoveGame(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		delete(gm.games, gameID)
		log.Infof("game %s removed", gameID)
	}
}

func (gm *GameManager) Len() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return len(gm.games)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
