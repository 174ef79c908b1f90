package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/countries-quiz-bot/internal/metrics"
	"github.com/aliskhannn/countries-quiz-bot/internal/storage"
)

var (
	ErrGameNotFound        = storage.ErrGameNotFound
	ErrCategoryNotSelected = errors.New("select a quiz category first")
	ErrCountryNotSelected  = errors.New("choose a country before starting")
	ErrCountryNotInPool    = errors.New("country is not part of this game")
	ErrInsufficientData    = errors.New("not enough data to start this quiz")
	ErrNoActiveQuestion    = errors.New("no question is waiting for an answer")
	ErrAlreadyAnswered     = errors.New("question already answered")
	ErrInvalidOption       = errors.New("invalid answer option")
	ErrNotAnswered         = errors.New("pick an answer before moving on")
	ErrSelectionChanged    = errors.New("selection changed while the quiz was starting")
)

// QuizEngine is the part of QuizService the game flow depends on.
type QuizEngine interface {
	BuildSessionPool(size int) ([]entities.Country, error)
	GenerateQuestionSetFeaturing(pool []entities.Country, category entities.Category, count int, featured string) []entities.Question
	QuestionCount() int
}

// GameService drives one quiz per player: category, country, questions and score.
type GameService struct {
	engine  QuizEngine
	games   GameStorage
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewGameService creates a game service. m may be nil.
func NewGameService(engine QuizEngine, games GameStorage, m *metrics.Metrics, logger *zap.Logger) *GameService {
	return &GameService{
		engine:  engine,
		games:   games,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// NewGame replaces the player's game with a fresh one on a new country pool.
func (s *GameService) NewGame(playerID int64) (entities.GameSession, error) {
	pool, err := s.engine.BuildSessionPool(0)
	if err != nil {
		return entities.GameSession{}, fmt.Errorf("build session pool: %w", err)
	}

	game := entities.NewGameSession(playerID, pool)
	s.games.Store(game)

	s.logger.Debug("new game", zap.Int64("player_id", playerID), zap.Int("pool", len(pool)))

	return *game, nil
}

// SelectCategory sets the category and clears the selected country and any
// quiz in progress. A game is created when the player has none.
func (s *GameService) SelectCategory(playerID int64, category entities.Category) (entities.GameSession, error) {
	category, err := entities.ParseCategory(string(category))
	if err != nil {
		return entities.GameSession{}, err
	}

	if _, err := s.games.Get(playerID); errors.Is(err, ErrGameNotFound) {
		if _, err := s.NewGame(playerID); err != nil {
			return entities.GameSession{}, err
		}
	}

	return s.games.Update(playerID, func(g *entities.GameSession) error {
		g.Category = category
		g.SelectedCountry = ""
		g.ResetQuiz()
		return nil
	})
}

// SelectCountry picks the quiz subject from the player's pool.
func (s *GameService) SelectCountry(playerID int64, name string) (entities.GameSession, error) {
	return s.games.Update(playerID, func(g *entities.GameSession) error {
		if g.Category == "" {
			return ErrCategoryNotSelected
		}

		c, ok := g.PoolCountry(name)
		if !ok {
			return ErrCountryNotInPool
		}

		g.SelectedCountry = c.Name
		g.ResetQuiz()
		return nil
	})
}

// StartQuiz generates the question set. The selected country is asked about
// first when it could produce a question. Generation runs on a snapshot
// outside the store lock; the result is committed only if the category and
// country are still the ones it was generated for.
func (s *GameService) StartQuiz(playerID int64) (entities.GameSession, error) {
	snapshot, err := s.games.Get(playerID)
	if err != nil {
		return entities.GameSession{}, err
	}
	if err := checkReadyToStart(&snapshot); err != nil {
		return snapshot, err
	}

	questions := s.engine.GenerateQuestionSetFeaturing(
		snapshot.Pool,
		snapshot.Category,
		s.engine.QuestionCount(),
		snapshot.SelectedCountry,
	)

	return s.games.Update(playerID, func(g *entities.GameSession) error {
		if err := checkReadyToStart(g); err != nil {
			return err
		}
		if g.Category != snapshot.Category || g.SelectedCountry != snapshot.SelectedCountry {
			return ErrSelectionChanged
		}

		if len(questions) == 0 {
			s.logger.Info("not enough data for quiz",
				zap.Int64("player_id", playerID),
				zap.String("category", string(g.Category)),
			)
			return ErrInsufficientData
		}

		g.ResetQuiz()
		g.Questions = selectedFirst(questions, g.SelectedCountry)
		g.StartedAt = s.now()

		s.metrics.IncrementGameStarted(string(g.Category))
		return nil
	})
}

func checkReadyToStart(g *entities.GameSession) error {
	if g.Category == "" {
		return ErrCategoryNotSelected
	}
	if g.SelectedCountry == "" {
		return ErrCountryNotSelected
	}
	return nil
}

func selectedFirst(questions []entities.Question, country string) []entities.Question {
	for i, q := range questions {
		if q.SubjectCountryName != country {
			continue
		}
		if i == 0 {
			return questions
		}

		out := make([]entities.Question, 0, len(questions))
		out = append(out, q)
		out = append(out, questions[:i]...)
		out = append(out, questions[i+1:]...)
		return out
	}
	return questions
}

// Answer records the player's choice for the current question.
func (s *GameService) Answer(playerID int64, optionIndex int) (entities.AnswerResult, error) {
	var res entities.AnswerResult

	_, err := s.games.Update(playerID, func(g *entities.GameSession) error {
		if g.IsComplete {
			return ErrNoActiveQuestion
		}
		q, ok := g.CurrentQuestion()
		if !ok {
			return ErrNoActiveQuestion
		}
		if g.HasAnswered {
			return ErrAlreadyAnswered
		}
		if optionIndex < 0 || optionIndex >= len(q.Options) {
			return ErrInvalidOption
		}

		correct := q.IsCorrect(optionIndex)
		g.RecordAnswer(correct)
		s.metrics.IncrementAnswer(correct)

		res = entities.AnswerResult{
			Question:      q,
			SelectedIndex: optionIndex,
			IsCorrect:     correct,
			Score:         g.Score,
			Wrong:         g.Wrong,
			Streak:        g.Streak,
			IsLast:        g.IsLastQuestion(),
		}
		return nil
	})

	return res, err
}

// Next moves to the following question, or completes the quiz after the last one.
func (s *GameService) Next(playerID int64) (entities.GameSession, error) {
	return s.games.Update(playerID, func(g *entities.GameSession) error {
		if g.IsComplete {
			return nil
		}
		if !g.Started() {
			return ErrNoActiveQuestion
		}
		if !g.HasAnswered {
			return ErrNotAnswered
		}

		if g.IsLastQuestion() {
			g.IsComplete = true
			return nil
		}

		g.CurrentIndex++
		g.HasAnswered = false
		return nil
	})
}

// PlayAgain draws a new pool, keeps the category and clears the selection.
func (s *GameService) PlayAgain(playerID int64) (entities.GameSession, error) {
	return s.games.Update(playerID, func(g *entities.GameSession) error {
		pool, err := s.engine.BuildSessionPool(0)
		if err != nil {
			return fmt.Errorf("build session pool: %w", err)
		}

		g.Pool = pool
		g.SelectedCountry = ""
		g.ResetQuiz()
		return nil
	})
}

// Current returns the player's game.
func (s *GameService) Current(playerID int64) (entities.GameSession, error) {
	return s.games.Get(playerID)
}

// EndGame discards the player's game.
func (s *GameService) EndGame(playerID int64) {
	s.games.Delete(playerID)
}
