package storage

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
)

func TestGameStorage(t *testing.T) {
	s := NewGameStorage()

	_, err := s.Get(1)
	assert.ErrorIs(t, err, ErrGameNotFound)

	s.Store(entities.NewGameSession(1, []entities.Country{{Name: "Chile"}}))
	assert.Equal(t, 1, s.Len())

	game, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), game.PlayerID)
	assert.Len(t, game.Pool, 1)

	updated, err := s.Update(1, func(g *entities.GameSession) error {
		g.Category = entities.CategoryCurrency
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, entities.CategoryCurrency, updated.Category)

	game.Score = 99
	stored, err := s.Get(1)
	require.NoError(t, err)
	assert.Zero(t, stored.Score, "Get returns a copy")

	s.Delete(1)
	_, err = s.Get(1)
	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.Zero(t, s.Len())
}

func TestGameStorageUpdateErrors(t *testing.T) {
	s := NewGameStorage()

	_, err := s.Update(7, func(*entities.GameSession) error { return nil })
	assert.ErrorIs(t, err, ErrGameNotFound)

	s.Store(entities.NewGameSession(7, nil))
	boom := errors.New("boom")
	_, err = s.Update(7, func(*entities.GameSession) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestGameStorageConcurrentPlayers(t *testing.T) {
	s := NewGameStorage()
	const players = 50

	var wg sync.WaitGroup
	for i := range players {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.Store(entities.NewGameSession(id, nil))
			for range 10 {
				_, err := s.Update(id, func(g *entities.GameSession) error {
					g.RecordAnswer(true)
					return nil
				})
				assert.NoError(t, err)
			}
		}(int64(i))
	}
	wg.Wait()

	for i := range players {
		game, err := s.Get(int64(i))
		require.NoError(t, err)
		assert.Equal(t, 10, game.Score)
	}
}
