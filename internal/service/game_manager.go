package service

import (
	"errors"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager owns the live game sessions, keyed by ID.
type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
	log   zerolog.Logger
}

func NewGameManager(log zerolog.Logger) *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
		log:   log,
	}
}

// CreateGame starts a session from the standard position under a fresh ID.
func (gm *GameManager) CreateGame() (string, error) {
	gameID := uuid.New().String()
	if err := gm.AddGame(model.NewGame(gameID, model.WithLogger(gm.log))); err != nil {
		return "", err
	}
	return gameID, nil
}

// AddGame registers an existing session.
func (gm *GameManager) AddGame(game *model.Game) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[game.ID]; exists {
		return ErrGameExists
	}
	gm.games[game.ID] = game
	gm.log.Info().Str("game", game.ID).Int("active", len(gm.games)).Msg("game created")
	return nil
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

func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return ErrGameNotFound
	}
	delete(gm.games, gameID)
	gm.log.Info().Str("game", gameID).Int("active", len(gm.games)).Msg("game deleted")
	return nil
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
