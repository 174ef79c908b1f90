package service

import (
	"context"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
)

// CountryRepository holds the loaded country list.
type CountryRepository interface {
	Load(ctx context.Context) (int, error)
	All() []entities.Country
	Count() int
	ByName(name string) (entities.Country, error)
}

// GameStorage keeps per-player game sessions in memory.
type GameStorage interface {
	Store(game *entities.GameSession)
	Get(playerID int64) (entities.GameSession, error)
	Update(playerID int64, fn func(game *entities.GameSession) error) (entities.GameSession, error)
	Delete(playerID int64)
}

// RepositoryLoader reloads the country data. Implemented by QuizService.
type RepositoryLoader interface {
	LoadRepository(ctx context.Context) (int, error)
}
