package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/countries-quiz-bot/internal/service"
)

// Commands lists the bot commands registered with Telegram.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "play", Description: "Start a new quiz"},
		{Command: "score", Description: "Show your current score"},
		{Command: "help", Description: "How to play"},
	}
}

// sendLoading sends the loading notice and reports whether it did.
func (h *Handler) sendLoading(chatID int64) bool {
	s := h.loadingScreen()
	if s == nil {
		return false
	}

	msg := newMessage(chatID, s.text)
	if s.kb != nil {
		msg.ReplyMarkup = *s.kb
	}
	h.send(msg)
	return true
}

// startHandler greets the player and offers the quiz categories.
func (h *Handler) startHandler(_ int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.sendLoading(chatID) {
			return nil
		}

		msg := newMessage(chatID, welcomeMarkdownV2(h.quizService.CountryCount()))
		msg.ReplyMarkup = buildCategoryKeyboard()
		h.send(msg)
		return nil
	}
}

// playHandler starts a new game on a fresh country pool.
func (h *Handler) playHandler(playerID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.sendLoading(chatID) {
			return nil
		}

		if _, err := h.gameService.NewGame(playerID); err != nil {
			if errors.Is(err, service.ErrRepositoryNotReady) {
				h.sendError(chatID, msgStillLoading)
				return nil
			}
			return err
		}

		msg := newMessage(chatID, md(msgSelectCategory))
		msg.ReplyMarkup = buildCategoryKeyboard()
		h.send(msg)
		return nil
	}
}

// scoreHandler shows the progress of the player's game.
func (h *Handler) scoreHandler(playerID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		game, err := h.gameService.Current(playerID)
		if errors.Is(err, service.ErrGameNotFound) {
			h.sendError(chatID, msgNoGame)
			return nil
		}
		if err != nil {
			return err
		}

		h.send(newMessage(chatID, formatScore(game)))
		return nil
	}
}
