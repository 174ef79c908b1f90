// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
)

// Error and status messages.
const (
	msgInternalError      = "Something went wrong. Please try again later."
	msgUnknownCommand     = "Unknown command. Use /play to start a quiz or /help to see what I can do."
	msgUseButtons         = "Use the buttons below the messages, or send /play to start a new quiz."
	msgStillLoading       = "Country data is still loading. Please try again in a moment."
	msgLoadFailed         = "Unable to load country data. Refresh and try again."
	msgSelectCategory     = "Select a quiz type, then choose a country to get started."
	msgCategoryFirst      = "Select a quiz type first to unlock the countries."
	msgCountryFirst       = "Choose a country before starting the quiz."
	msgInsufficientData   = "Not enough data to start this quiz. Try another category."
	msgPickAnswerFirst    = "Pick an answer before moving on."
	msgAlreadyAnswered    = "You already answered this question."
	msgQuestionExpired    = "This question is no longer active."
	msgNoGame             = "You have no game yet. Send /play to start one."
	msgNoActiveQuiz       = "There is no quiz in progress. Send /play to start one."
	msgCountryUnavailable = "That country is no longer available. Pick another one."
	msgSelectionChanged   = "Your selection changed. Press Start Quiz again."
)

const (
	progressBarLength = 10
	countriesPerRow   = 2
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// categoryTitle turns a category id into a display title.
func categoryTitle(c entities.Category) string {
	return cases.Title(language.English).String(string(c))
}

// welcomeMarkdownV2 builds the /start greeting.
func welcomeMarkdownV2(countries int) string {
	var sb strings.Builder

	sb.WriteString(bold("🌍 Countries Quiz"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Test what you know about the countries of the world: their populations, currencies and languages."))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("%d countries are loaded and ready.", countries)))
	sb.WriteString("\n\n")
	sb.WriteString(md(msgSelectCategory))

	return sb.String()
}

// helpMarkdownV2 builds the /help text.
func helpMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("How to play"))
	sb.WriteString("\n\n")
	sb.WriteString(md("1. Pick a quiz type."))
	sb.WriteString("\n")
	sb.WriteString(md("2. Choose one of the countries offered to you."))
	sb.WriteString("\n")
	sb.WriteString(md("3. Press Start Quiz and answer the questions."))
	sb.WriteString("\n\n")
	sb.WriteString(bold("Commands"))
	sb.WriteString("\n\n")
	sb.WriteString(md("/play - start a new game"))
	sb.WriteString("\n")
	sb.WriteString(md("/score - show your current score"))
	sb.WriteString("\n")
	sb.WriteString(md("/help - show this message"))

	return sb.String()
}

// buildCategoryMessage is shown after a category is chosen.
func buildCategoryMessage(category entities.Category) string {
	return fmt.Sprintf(
		"%s %s\n\n%s",
		md("Quiz type:"),
		bold(categoryTitle(category)),
		md("Choose a country to get started."),
	)
}

// buildSelectionMessage confirms the selected country.
func buildSelectionMessage(category entities.Category, country entities.Country) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf(
		"Quiz on %s: %s is locked in. Press Start Quiz when you are ready.",
		categoryTitle(category),
		country.Name,
	)))
	sb.WriteString("\n\n")
	sb.WriteString(italic(fmt.Sprintf("%s · capital %s · %s", country.Region, country.Capital, country.FlagAlt)))

	return sb.String()
}

// formatQuizQuestion formats a quiz question (MarkdownV2 safe for question text).
func formatQuizQuestion(q entities.Question, currentNum, totalQuestions int) string {
	return fmt.Sprintf(
		"%s\n\n%s",
		md(fmt.Sprintf("Question %d of %d", currentNum, totalQuestions)),
		bold(q.PromptText),
	)
}

// formatAnswerFeedback formats feedback for a quiz answer (MarkdownV2 safe).
func formatAnswerFeedback(res entities.AnswerResult) string {
	var sb strings.Builder

	if res.IsCorrect {
		sb.WriteString(md("✅ Correct! " + res.Question.ExplanationText))
	} else {
		sb.WriteString(md("❌ Not quite. The correct answer is "))
		sb.WriteString(bold(res.Question.CorrectAnswerLabel))
		sb.WriteString(md("."))
	}

	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Score: %d · Wrong: %d", res.Score, res.Wrong)))
	if res.Streak > 1 {
		sb.WriteString(md(fmt.Sprintf(" · Streak: %d 🔥", res.Streak)))
	}

	return sb.String()
}

// formatQuizResult formats quiz results (MarkdownV2 safe).
func formatQuizResult(game entities.GameSession) string {
	total := len(game.Questions)

	var percentage float64
	if total > 0 {
		percentage = float64(game.Score) / float64(total) * 100
	}

	emoji, message := "📚", "Keep exploring the world and try again!"
	switch {
	case percentage >= 90:
		emoji, message = "🌟", "Outstanding, you know your geography!"
	case percentage >= 70:
		emoji, message = "👍", "Great result!"
	case percentage >= 50:
		emoji, message = "💪", "Not bad, keep going!"
	}

	progressBar := buildProgressBar(game.Score, total, progressBarLength)

	return fmt.Sprintf(
		"%s %s\n\n%s\n%s\n%s\n\n%s",
		md(emoji),
		md(fmt.Sprintf("Quiz complete! You answered %d out of %d correctly.", game.Score, total)),
		md(progressBar),
		md(fmt.Sprintf("Best streak: %d", game.BestStreak)),
		md(fmt.Sprintf("Category: %s · Country: %s", categoryTitle(game.Category), game.SelectedCountry)),
		md(message),
	)
}

// formatScore renders the /score reply for the player's current game.
func formatScore(game entities.GameSession) string {
	switch {
	case game.IsComplete:
		return formatQuizResult(game)
	case game.Started():
		return fmt.Sprintf(
			"%s\n\n%s\n%s",
			bold(fmt.Sprintf("%s quiz on %s", categoryTitle(game.Category), game.SelectedCountry)),
			md(fmt.Sprintf("Question %d of %d", game.CurrentIndex+1, len(game.Questions))),
			md(fmt.Sprintf("Score: %d · Wrong: %d · Streak: %d", game.Score, game.Wrong, game.Streak)),
		)
	default:
		return md(msgNoActiveQuiz)
	}
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
