package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot         BotAPI
	logger      *zap.Logger
	quizService QuizService
	gameService GameService

	mu          sync.RWMutex
	loadChecked bool
	lastLoaded  int
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	quizService QuizService,
	gameService GameService,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		quizService: quizService,
		gameService: gameService,
	}
}

// NotifyRepositoryLoaded records the outcome of a repository load. Zero means
// the last attempt produced no countries.
func (h *Handler) NotifyRepositoryLoaded(count int) {
	h.mu.Lock()
	h.loadChecked = true
	h.lastLoaded = count
	h.mu.Unlock()
}

// loadFailed reports whether a load was attempted and left the bot without data.
func (h *Handler) loadFailed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loadChecked && h.lastLoaded == 0 && !h.quizService.Ready()
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	playerID := chatID
	if update.Message.From != nil {
		playerID = update.Message.From.ID
	}

	if !update.Message.IsCommand() {
		h.send(newMessage(chatID, md(msgUseButtons)))
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.startHandler(playerID))(ctx, chatID)

	case "play":
		_ = h.withErrorHandling(h.playHandler(playerID))(ctx, chatID)

	case "score":
		_ = h.withErrorHandling(h.scoreHandler(playerID))(ctx, chatID)

	case "help":
		h.send(newMessage(chatID, helpMarkdownV2()))

	default:
		h.send(newMessage(chatID, md(msgUnknownCommand)))
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	h.send(newMessage(chatID, md(err)))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// answerCallback acknowledges a callback query, optionally with a toast.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		h.logger.Debug("failed to answer callback", zap.Error(err))
	}
}
