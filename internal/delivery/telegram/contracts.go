package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
)

// BotAPI is the subset of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type QuizService interface {
	Ready() bool
	CountryCount() int
	LoadRepository(ctx context.Context) (int, error)
}

type GameService interface {
	NewGame(playerID int64) (entities.GameSession, error)
	SelectCategory(playerID int64, category entities.Category) (entities.GameSession, error)
	SelectCountry(playerID int64, name string) (entities.GameSession, error)
	StartQuiz(playerID int64) (entities.GameSession, error)
	Answer(playerID int64, optionIndex int) (entities.AnswerResult, error)
	Next(playerID int64) (entities.GameSession, error)
	PlayAgain(playerID int64) (entities.GameSession, error)
	Current(playerID int64) (entities.GameSession, error)
}
