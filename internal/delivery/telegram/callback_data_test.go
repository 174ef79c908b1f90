package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
)

func TestCallbackData(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		action string
		params []string
	}{
		{name: "category", data: buildCategoryCallback(entities.CategoryLanguages), action: actionCategory, params: []string{"languages"}},
		{name: "country", data: buildCountryCallback(7), action: actionCountry, params: []string{"7"}},
		{name: "answer", data: buildAnswerCallback(2, 3), action: actionAnswer, params: []string{"2", "3"}},
		{name: "start", data: buildQuizStartCallback(), action: actionQuiz, params: []string{quizStart}},
		{name: "reload", data: buildReloadCallback(), action: actionData, params: []string{dataReload}},
		{name: "bare action", data: "noop", action: "noop", params: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd := decodeCallback(tt.data)
			assert.Equal(t, tt.action, cd.Action)
			assert.Equal(t, tt.params, cd.Params)
			assert.Equal(t, tt.data, cd.encode())
			assert.LessOrEqual(t, len(tt.data), 64)
		})
	}
}

func TestCallbackIntParam(t *testing.T) {
	cd := decodeCallback("ans:4:x")

	n, ok := cd.intParam(0)
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	_, ok = cd.intParam(1)
	assert.False(t, ok)

	_, ok = cd.intParam(5)
	assert.False(t, ok)

	_, ok = decodeCallback("country:-1").intParam(0)
	assert.False(t, ok)
}

func TestBuildProgressBar(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]", buildProgressBar(5, 10, 10))
	assert.Equal(t, "[██████████]", buildProgressBar(12, 10, 10))
	assert.Equal(t, "[░░░░░]", buildProgressBar(0, 0, 5))
}

func TestCountryKeyboardRows(t *testing.T) {
	pool := []entities.Country{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	kb := buildCountryKeyboard(pool)

	assert.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[0], countriesPerRow)
	assert.Equal(t, "C", kb.InlineKeyboard[1][0].Text)
	assert.Equal(t, "country:2", *kb.InlineKeyboard[1][0].CallbackData)
}

func TestCategoryTitle(t *testing.T) {
	assert.Equal(t, "Population", categoryTitle(entities.CategoryPopulation))
	assert.Equal(t, "Languages", categoryTitle(entities.CategoryLanguages))
}

func TestCommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range Commands() {
		names = append(names, c.Command)
	}
	assert.Equal(t, []string{"start", "play", "score", "help"}, names)
}
