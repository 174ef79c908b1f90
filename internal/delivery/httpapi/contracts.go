package httpapi

import (
	"context"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
)

type QuizService interface {
	Ready() bool
	CountryCount() int
	Country(name string) (entities.Country, error)
	QuestionCount() int
	LoadRepository(ctx context.Context) (int, error)
	BuildSessionPool(size int) ([]entities.Country, error)
	GenerateQuestionSet(pool []entities.Country, category entities.Category, count int) []entities.Question
}
