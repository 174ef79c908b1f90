package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
)

var categoryEmoji = map[entities.Category]string{
	entities.CategoryPopulation: "👥",
	entities.CategoryCurrency:   "💰",
	entities.CategoryLanguages:  "🗣",
}

// buildCategoryKeyboard builds one button per quiz category.
func buildCategoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(entities.Categories))
	for _, c := range entities.Categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(categoryEmoji[c]+" "+categoryTitle(c), buildCategoryCallback(c)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildCountryKeyboard lists the pool countries, two per row.
func buildCountryKeyboard(pool []entities.Country) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for i, c := range pool {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(c.Name, buildCountryCallback(i)))
		if len(row) == countriesPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildStartKeyboard offers to start the quiz or go back to the countries.
func buildStartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Start Quiz", buildQuizStartCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New countries", buildQuizAgainCallback()),
		),
	)
}

// buildAnswerKeyboard builds one button per option of the question.
func buildAnswerKeyboard(q entities.Question, questionIndex int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for i, o := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o.Label, buildAnswerCallback(questionIndex, i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildNextKeyboard is shown under an answered question.
func buildNextKeyboard(isLast bool) tgbotapi.InlineKeyboardMarkup {
	label := "➡️ Next Question"
	if isLast {
		label = "🏁 Finish Quiz"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildQuizNextCallback()),
		),
	)
}

// buildResultKeyboard is shown with the final score.
func buildResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Play Again", buildQuizAgainCallback()),
		),
	}
	return tgbotapi.NewInlineKeyboardMarkup(append(rows, buildCategoryKeyboard().InlineKeyboard...)...)
}

// buildReloadKeyboard offers a retry after a failed load.
func buildReloadKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildReloadCallback()),
		),
	)
}
