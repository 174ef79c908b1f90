package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/countries-quiz-bot/internal/service"
)

// screen is the message content a callback replaces the current message with.
type screen struct {
	text string
	kb   *tgbotapi.InlineKeyboardMarkup
}

func newScreen(text string, kb tgbotapi.InlineKeyboardMarkup) *screen {
	return &screen{text: text, kb: &kb}
}

// callbackFunc handles one callback action. A nil screen leaves the message as
// is; toast is shown to the player as a short notification.
type callbackFunc func(ctx context.Context, playerID int64, data callbackData) (s *screen, toast string, err error)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := decodeCallback(cb.Data)

	var fn callbackFunc
	switch data.Action {
	case actionCategory:
		fn = h.requireReady(h.handleCategoryCallback)
	case actionCountry:
		fn = h.requireReady(h.handleCountryCallback)
	case actionQuiz:
		switch data.param(0) {
		case quizStart:
			fn = h.requireReady(h.handleQuizStartCallback)
		case quizNext:
			fn = h.handleQuizNextCallback
		case quizAgain:
			fn = h.requireReady(h.handleQuizAgainCallback)
		}
	case actionAnswer:
		fn = h.handleAnswerCallback
	case actionData:
		if data.param(0) == dataReload {
			fn = h.handleReloadCallback
		}
	}

	if fn == nil {
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb, "")
		return
	}

	s, toast, err := fn(ctx, cb.From.ID, data)
	if err != nil {
		h.logger.Error("handle callback",
			zap.Int64("user_id", cb.From.ID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		toast = msgInternalError
	}

	if s != nil && cb.Message != nil {
		edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, s.text)
		edit.ReplyMarkup = s.kb
		h.send(edit)
	}

	// Remove the user's "clock".
	h.answerCallback(cb, toast)
}

// requireReady replaces the action with a loading screen until countries are available.
func (h *Handler) requireReady(fn callbackFunc) callbackFunc {
	return func(ctx context.Context, playerID int64, data callbackData) (*screen, string, error) {
		if s := h.loadingScreen(); s != nil {
			return s, "", nil
		}
		return fn(ctx, playerID, data)
	}
}

// loadingScreen returns the screen to show while no countries are loaded, or
// nil once the repository is ready.
func (h *Handler) loadingScreen() *screen {
	if h.quizService.Ready() {
		return nil
	}
	if h.loadFailed() {
		return newScreen(md(msgLoadFailed), buildReloadKeyboard())
	}
	return &screen{text: md(msgStillLoading)}
}

func (h *Handler) handleCategoryCallback(_ context.Context, playerID int64, data callbackData) (*screen, string, error) {
	game, err := h.gameService.SelectCategory(playerID, entities.Category(data.param(0)))
	if errors.Is(err, entities.ErrUnknownCategory) {
		return newScreen(md(msgSelectCategory), buildCategoryKeyboard()), "", nil
	}
	if err != nil {
		return nil, "", err
	}

	return newScreen(buildCategoryMessage(game.Category), buildCountryKeyboard(game.Pool)), "", nil
}

func (h *Handler) handleCountryCallback(_ context.Context, playerID int64, data callbackData) (*screen, string, error) {
	game, err := h.gameService.Current(playerID)
	if errors.Is(err, service.ErrGameNotFound) {
		return newScreen(md(msgSelectCategory), buildCategoryKeyboard()), msgNoGame, nil
	}
	if err != nil {
		return nil, "", err
	}

	index, ok := data.intParam(0)
	if !ok || index >= len(game.Pool) {
		return nil, msgCountryUnavailable, nil
	}
	country := game.Pool[index]

	game, err = h.gameService.SelectCountry(playerID, country.Name)
	switch {
	case errors.Is(err, service.ErrCategoryNotSelected):
		return newScreen(md(msgCategoryFirst), buildCategoryKeyboard()), "", nil
	case errors.Is(err, service.ErrCountryNotInPool):
		return nil, msgCountryUnavailable, nil
	case err != nil:
		return nil, "", err
	}

	return newScreen(buildSelectionMessage(game.Category, country), buildStartKeyboard()), "", nil
}

func (h *Handler) handleQuizStartCallback(_ context.Context, playerID int64, _ callbackData) (*screen, string, error) {
	game, err := h.gameService.StartQuiz(playerID)
	switch {
	case errors.Is(err, service.ErrGameNotFound), errors.Is(err, service.ErrCategoryNotSelected):
		return newScreen(md(msgCategoryFirst), buildCategoryKeyboard()), "", nil
	case errors.Is(err, service.ErrCountryNotSelected):
		return nil, msgCountryFirst, nil
	case errors.Is(err, service.ErrSelectionChanged):
		return nil, msgSelectionChanged, nil
	case errors.Is(err, service.ErrInsufficientData):
		return newScreen(md(msgInsufficientData), buildCategoryKeyboard()), "", nil
	case err != nil:
		return nil, "", err
	}

	return questionScreen(game), "", nil
}

func (h *Handler) handleAnswerCallback(_ context.Context, playerID int64, data callbackData) (*screen, string, error) {
	questionIndex, okQ := data.intParam(0)
	optionIndex, okO := data.intParam(1)
	if !okQ || !okO {
		return nil, msgQuestionExpired, nil
	}

	game, err := h.gameService.Current(playerID)
	if errors.Is(err, service.ErrGameNotFound) {
		return nil, msgNoActiveQuiz, nil
	}
	if err != nil {
		return nil, "", err
	}
	if !game.Started() || game.IsComplete || game.CurrentIndex != questionIndex {
		return nil, msgQuestionExpired, nil
	}

	res, err := h.gameService.Answer(playerID, optionIndex)
	switch {
	case errors.Is(err, service.ErrAlreadyAnswered):
		return nil, msgAlreadyAnswered, nil
	case errors.Is(err, service.ErrNoActiveQuestion), errors.Is(err, service.ErrInvalidOption):
		return nil, msgQuestionExpired, nil
	case err != nil:
		return nil, "", err
	}

	text := formatQuizQuestion(res.Question, questionIndex+1, len(game.Questions)) +
		"\n\n" + formatAnswerFeedback(res)

	return newScreen(text, buildNextKeyboard(res.IsLast)), "", nil
}

func (h *Handler) handleQuizNextCallback(_ context.Context, playerID int64, _ callbackData) (*screen, string, error) {
	game, err := h.gameService.Next(playerID)
	switch {
	case errors.Is(err, service.ErrNotAnswered):
		return nil, msgPickAnswerFirst, nil
	case errors.Is(err, service.ErrGameNotFound), errors.Is(err, service.ErrNoActiveQuestion):
		return nil, msgNoActiveQuiz, nil
	case err != nil:
		return nil, "", err
	}

	if game.IsComplete {
		return newScreen(formatQuizResult(game), buildResultKeyboard()), "", nil
	}

	return questionScreen(game), "", nil
}

func (h *Handler) handleQuizAgainCallback(_ context.Context, playerID int64, _ callbackData) (*screen, string, error) {
	game, err := h.gameService.PlayAgain(playerID)
	if errors.Is(err, service.ErrGameNotFound) {
		game, err = h.gameService.NewGame(playerID)
	}
	if err != nil {
		return nil, "", err
	}

	if game.Category == "" {
		return newScreen(md(msgSelectCategory), buildCategoryKeyboard()), "", nil
	}

	return newScreen(buildCategoryMessage(game.Category), buildCountryKeyboard(game.Pool)), "", nil
}

func (h *Handler) handleReloadCallback(ctx context.Context, _ int64, _ callbackData) (*screen, string, error) {
	count, err := h.quizService.LoadRepository(ctx)
	if err != nil {
		h.logger.Warn("reload requested by player failed", zap.Error(err))
		return newScreen(md(msgLoadFailed), buildReloadKeyboard()), "", nil
	}

	return newScreen(welcomeMarkdownV2(count), buildCategoryKeyboard()), "", nil
}

// questionScreen renders the current question of a started game.
func questionScreen(game entities.GameSession) *screen {
	q, ok := game.CurrentQuestion()
	if !ok {
		return &screen{text: md(msgNoActiveQuiz)}
	}
	return newScreen(
		formatQuizQuestion(q, game.CurrentIndex+1, len(game.Questions)),
		buildAnswerKeyboard(q, game.CurrentIndex),
	)
}
