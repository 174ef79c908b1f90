package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/countries-quiz-bot/internal/metrics"
)

const (
	DefaultPoolSize      = 10
	DefaultQuestionCount = 10
)

var ErrRepositoryNotReady = errors.New("country data is not loaded yet")

// QuizOptions configures pool and question set sizes.
type QuizOptions struct {
	PoolSize      int
	QuestionCount int
}

// QuizService is the quiz engine: it owns the country repository, samples
// session pools and generates question sets from them.
type QuizService struct {
	repo      CountryRepository
	generator *QuestionSetGenerator
	rng       Rand
	opts      QuizOptions
	metrics   *metrics.Metrics
	logger    *zap.Logger

	mu          sync.Mutex
	subscribers []func(loaded int)
}

// NewQuizService creates the engine. rng and m may be nil.
func NewQuizService(
	repo CountryRepository,
	rng Rand,
	opts QuizOptions,
	m *metrics.Metrics,
	logger *zap.Logger,
) *QuizService {
	if rng == nil {
		rng = DefaultRand
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = DefaultPoolSize
	}
	if opts.QuestionCount <= 0 {
		opts.QuestionCount = DefaultQuestionCount
	}

	return &QuizService{
		repo:      repo,
		generator: NewQuestionSetGenerator(NewQuestionBuilder(rng), rng, m),
		rng:       rng,
		opts:      opts,
		metrics:   m,
		logger:    logger,
	}
}

// OnReady registers fn to be called after every repository load with the
// number of usable countries, or 0 when the load failed.
func (s *QuizService) OnReady(fn func(loaded int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// LoadRepository fetches country data and notifies readiness subscribers.
// On failure the previously loaded data stays in place.
func (s *QuizService) LoadRepository(ctx context.Context) (int, error) {
	start := time.Now()
	loaded, err := s.repo.Load(ctx)
	s.metrics.ObserveLoad(loaded, err, time.Since(start))

	if err != nil {
		s.logger.Error("failed to load countries",
			zap.Int("kept", s.repo.Count()),
			zap.Error(err),
		)
		s.notify(0)
		return 0, fmt.Errorf("load repository: %w", err)
	}

	s.logger.Info("countries loaded",
		zap.Int("loaded", loaded),
		zap.Duration("took", time.Since(start)),
	)
	s.notify(loaded)

	return loaded, nil
}

func (s *QuizService) notify(loaded int) {
	s.mu.Lock()
	subs := append([]func(int){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(loaded)
	}
}

// Ready reports whether any country is loaded.
func (s *QuizService) Ready() bool {
	return s.repo.Count() > 0
}

// CountryCount returns the number of loaded countries.
func (s *QuizService) CountryCount() int {
	return s.repo.Count()
}

// Country looks a loaded country up by name.
func (s *QuizService) Country(name string) (entities.Country, error) {
	return s.repo.ByName(name)
}

// QuestionCount is the configured number of questions per quiz.
func (s *QuizService) QuestionCount() int {
	return s.opts.QuestionCount
}

// BuildSessionPool samples size countries from the repository without
// replacement. A size of 0 or less uses the configured pool size.
func (s *QuizService) BuildSessionPool(size int) ([]entities.Country, error) {
	all := s.repo.All()
	if len(all) == 0 {
		return nil, ErrRepositoryNotReady
	}
	if size <= 0 {
		size = s.opts.PoolSize
	}

	return Sample(s.rng, all, size), nil
}

// GenerateQuestionSet builds up to count questions in category about
// countries from pool, widening to the whole repository when the pool has
// no eligible country.
func (s *QuizService) GenerateQuestionSet(
	pool []entities.Country,
	category entities.Category,
	count int,
) []entities.Question {
	return s.generator.Generate(category, count, pool, s.repo.All())
}

// GenerateQuestionSetFeaturing is GenerateQuestionSet with the named pool
// country asked about first whenever it is eligible.
func (s *QuizService) GenerateQuestionSetFeaturing(
	pool []entities.Country,
	category entities.Category,
	count int,
	featured string,
) []entities.Question {
	return s.generator.GenerateFeaturing(category, count, pool, s.repo.All(), featured)
}
