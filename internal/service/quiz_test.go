package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/countries-quiz-bot/internal/metrics"
)

var errNotFound = errors.New("not found")

type fakeRepo struct {
	mu        sync.Mutex
	countries []entities.Country
	next      []entities.Country
	loadErr   error
	loads     int
}

func (r *fakeRepo) Load(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	if r.loadErr != nil {
		return 0, r.loadErr
	}
	r.countries = r.next
	return len(r.countries), nil
}

func (r *fakeRepo) All() []entities.Country {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countries
}

func (r *fakeRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.countries)
}

func (r *fakeRepo) ByName(name string) (entities.Country, error) {
	for _, c := range r.All() {
		if c.Name == name {
			return c, nil
		}
	}
	return entities.Country{}, errNotFound
}

func newQuizService(t *testing.T, repo *fakeRepo, opts QuizOptions, m *metrics.Metrics) *QuizService {
	t.Helper()
	return NewQuizService(repo, testRand(42), opts, m, zap.NewNop())
}

func TestQuizServiceLoadRepository(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	repo := &fakeRepo{next: europe()}
	svc := newQuizService(t, repo, QuizOptions{}, m)

	var notified []int
	svc.OnReady(func(loaded int) { notified = append(notified, loaded) })
	svc.OnReady(func(loaded int) { notified = append(notified, -loaded) })

	assert.False(t, svc.Ready())

	n, err := svc.LoadRepository(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.True(t, svc.Ready())
	assert.Equal(t, 6, svc.CountryCount())
	assert.Equal(t, []int{6, -6}, notified)
	assert.Equal(t, 6.0, testutil.ToFloat64(m.CountriesLoaded))

	c, err := svc.Country("Peru")
	require.NoError(t, err)
	assert.Equal(t, "Peru", c.Name)
}

func TestQuizServiceLoadFailureKeepsData(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	repo := &fakeRepo{next: europe()}
	svc := newQuizService(t, repo, QuizOptions{}, m)

	_, err := svc.LoadRepository(context.Background())
	require.NoError(t, err)

	var notified []int
	svc.OnReady(func(loaded int) { notified = append(notified, loaded) })

	boom := errors.New("upstream down")
	repo.loadErr = boom

	n, err := svc.LoadRepository(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, n)
	assert.Equal(t, []int{0}, notified)
	assert.True(t, svc.Ready(), "previous data stays available")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RepositoryLoads.WithLabelValues("failure")))
}

func TestBuildSessionPool(t *testing.T) {
	repo := &fakeRepo{next: europe()}
	svc := newQuizService(t, repo, QuizOptions{PoolSize: 4}, nil)

	_, err := svc.BuildSessionPool(3)
	assert.ErrorIs(t, err, ErrRepositoryNotReady)

	_, err = svc.LoadRepository(context.Background())
	require.NoError(t, err)

	pool, err := svc.BuildSessionPool(0)
	require.NoError(t, err)
	assert.Len(t, pool, 4, "default size")

	pool, err = svc.BuildSessionPool(3)
	require.NoError(t, err)
	assert.Len(t, pool, 3)
	assert.Len(t, uniqueCountries(pool), 3, "sampled without replacement")

	pool, err = svc.BuildSessionPool(100)
	require.NoError(t, err)
	assert.Len(t, pool, 6)
}

func TestQuizServiceDefaults(t *testing.T) {
	svc := newQuizService(t, &fakeRepo{}, QuizOptions{}, nil)
	assert.Equal(t, DefaultQuestionCount, svc.QuestionCount())
	assert.Equal(t, DefaultPoolSize, svc.opts.PoolSize)
}

func TestGenerateQuestionSetUsesRepositoryForDistractors(t *testing.T) {
	repo := &fakeRepo{next: europe()}
	svc := newQuizService(t, repo, QuizOptions{}, nil)
	_, err := svc.LoadRepository(context.Background())
	require.NoError(t, err)

	france, err := svc.Country("France")
	require.NoError(t, err)

	questions := svc.GenerateQuestionSet([]entities.Country{france}, entities.CategoryCurrency, 10)
	require.Len(t, questions, 1)
	assertWellFormed(t, questions[0], "Euro")

	repoCurrencies := []string{"Euro", "Japanese yen", "Swiss franc", "Norwegian krone", "Kenyan shilling", "Peruvian sol"}
	for _, o := range questions[0].Options {
		assert.Contains(t, repoCurrencies, o.Value, "real currencies from the repository are preferred")
	}
}
