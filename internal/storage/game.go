package storage

import (
	"errors"
	"sync"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
)

var ErrGameNotFound = errors.New("game not found")

// GameStorage provides in-memory storage for game sessions by player ID.
type GameStorage struct {
	mu    sync.RWMutex
	games map[int64]*entities.GameSession
}

// NewGameStorage creates a new GameStorage.
func NewGameStorage() *GameStorage {
	return &GameStorage{
		games: make(map[int64]*entities.GameSession),
	}
}

// Store saves a game, replacing any previous game of the same player.
func (s *GameStorage) Store(game *entities.GameSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.PlayerID] = game
}

// Get returns a copy of the player's game.
func (s *GameStorage) Get(playerID int64) (entities.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[playerID]
	if !ok {
		return entities.GameSession{}, ErrGameNotFound
	}
	return *game, nil
}

// Update runs fn on the player's game while holding the lock and returns a
// copy of the result. When fn fails the error is returned as is.
func (s *GameStorage) Update(
	playerID int64,
	fn func(game *entities.GameSession) error,
) (entities.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[playerID]
	if !ok {
		return entities.GameSession{}, ErrGameNotFound
	}
	if err := fn(game); err != nil {
		return *game, err
	}
	return *game, nil
}

// Delete removes the player's game.
func (s *GameStorage) Delete(playerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, playerID)
}

// Len returns the number of games in progress.
func (s *GameStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
