package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/countries-quiz-bot/internal/metrics"
	"github.com/aliskhannn/countries-quiz-bot/internal/storage"
)

// gatedEngine pauses question generation until released.
type gatedEngine struct {
	*QuizService
	entered chan struct{}
	release chan struct{}
}

func (e *gatedEngine) GenerateQuestionSetFeaturing(
	pool []entities.Country,
	category entities.Category,
	count int,
	featured string,
) []entities.Question {
	e.entered <- struct{}{}
	<-e.release
	return e.QuizService.GenerateQuestionSetFeaturing(pool, category, count, featured)
}

func newGatedGameService(t *testing.T) (*GameService, *gatedEngine) {
	t.Helper()

	repo := &fakeRepo{next: europe()}
	quiz := NewQuizService(repo, testRand(11), QuizOptions{PoolSize: 6, QuestionCount: 3}, nil, zap.NewNop())
	_, err := quiz.LoadRepository(context.Background())
	require.NoError(t, err)

	engine := &gatedEngine{
		QuizService: quiz,
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	return NewGameService(engine, storage.NewGameStorage(), nil, zap.NewNop()), engine
}

func selectFirstCountry(t *testing.T, svc *GameService, playerID int64, category entities.Category) {
	t.Helper()

	game, err := svc.SelectCategory(playerID, category)
	require.NoError(t, err)
	_, err = svc.SelectCountry(playerID, game.Pool[0].Name)
	require.NoError(t, err)
}

func TestStartQuizGeneratesOutsideStoreLock(t *testing.T) {
	svc, engine := newGatedGameService(t)
	selectFirstCountry(t, svc, player, entities.CategoryCurrency)

	started := make(chan error, 1)
	go func() {
		_, err := svc.StartQuiz(player)
		started <- err
	}()
	<-engine.entered

	other := make(chan error, 1)
	go func() {
		_, err := svc.SelectCategory(player+1, entities.CategoryPopulation)
		other <- err
	}()

	select {
	case err := <-other:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("another player's update waited for question generation")
	}

	close(engine.release)
	require.NoError(t, <-started)

	game, err := svc.Current(player)
	require.NoError(t, err)
	assert.True(t, game.Started())
}

func TestStartQuizRejectsChangedSelection(t *testing.T) {
	tests := []struct {
		name   string
		change func(svc *GameService, game entities.GameSession) error
		want   error
	}{
		{
			name: "category changed",
			change: func(svc *GameService, _ entities.GameSession) error {
				_, err := svc.SelectCategory(player, entities.CategoryLanguages)
				return err
			},
			want: ErrCountryNotSelected,
		},
		{
			name: "country changed",
			change: func(svc *GameService, game entities.GameSession) error {
				_, err := svc.SelectCountry(player, game.Pool[1].Name)
				return err
			},
			want: ErrSelectionChanged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, engine := newGatedGameService(t)
			selectFirstCountry(t, svc, player, entities.CategoryCurrency)

			started := make(chan error, 1)
			go func() {
				_, err := svc.StartQuiz(player)
				started <- err
			}()
			<-engine.entered

			game, err := svc.Current(player)
			require.NoError(t, err)
			require.NoError(t, tt.change(svc, game))

			close(engine.release)
			assert.ErrorIs(t, <-started, tt.want)

			game, err = svc.Current(player)
			require.NoError(t, err)
			assert.False(t, game.Started())
		})
	}
}

func TestStartQuizCountsOnlyDeliveredQuestions(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	repo := &fakeRepo{next: europe()}
	quiz := NewQuizService(repo, testRand(3), QuizOptions{PoolSize: 6, QuestionCount: 2}, m, zap.NewNop())
	_, err := quiz.LoadRepository(context.Background())
	require.NoError(t, err)

	svc := NewGameService(quiz, storage.NewGameStorage(), m, zap.NewNop())
	game, err := svc.SelectCategory(player, entities.CategoryCurrency)
	require.NoError(t, err)

	for _, c := range game.Pool {
		_, err := svc.SelectCountry(player, c.Name)
		require.NoError(t, err)

		started, err := svc.StartQuiz(player)
		require.NoError(t, err)
		require.Len(t, started.Questions, 2)
		assert.Equal(t, c.Name, started.Questions[0].SubjectCountryName)
	}

	assert.Equal(t, float64(2*len(game.Pool)), testutil.ToFloat64(m.QuestionsGenerated.WithLabelValues("currency")))
	assert.Zero(t, testutil.ToFloat64(m.InsufficientSets.WithLabelValues("currency")))
}

func TestGenerateFeaturing(t *testing.T) {
	g := newGenerator(5, nil)
	pool := europe()

	for _, c := range pool {
		qs := g.GenerateFeaturing(entities.CategoryPopulation, 1, pool, pool, c.Name)
		require.Len(t, qs, 1)
		assert.Equal(t, c.Name, qs[0].SubjectCountryName)
	}

	qs := g.GenerateFeaturing(entities.CategoryPopulation, 3, pool, pool, "Atlantis")
	assert.Len(t, qs, 3)
}
