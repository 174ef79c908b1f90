package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionCategory = "cat"
	actionCountry  = "country"
	actionQuiz     = "quiz"
	actionAnswer   = "ans"
	actionData     = "data"
)

// Quiz sub-actions.
const (
	quizStart = "start"
	quizNext  = "next"
	quizAgain = "again"
)

// Data sub-actions.
const (
	dataReload = "reload"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as a non-negative integer.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// buildCategoryCallback builds callback data for choosing a quiz category.
func buildCategoryCallback(category entities.Category) string {
	return callbackData{
		Action: actionCategory,
		Params: []string{string(category)},
	}.encode()
}

// buildCountryCallback builds callback data for picking a pool country.
// The pool index is used instead of the name to stay within Telegram's 64 byte limit.
func buildCountryCallback(index int) string {
	return callbackData{
		Action: actionCountry,
		Params: []string{strconv.Itoa(index)},
	}.encode()
}

// buildQuizStartCallback builds callback data for starting the quiz.
func buildQuizStartCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizStart}}.encode()
}

// buildQuizNextCallback builds callback data for moving to the next question.
func buildQuizNextCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizNext}}.encode()
}

// buildQuizAgainCallback builds callback data for playing again with a new pool.
func buildQuizAgainCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizAgain}}.encode()
}

// buildAnswerCallback builds callback data for answering a question.
func buildAnswerCallback(questionIndex, optionIndex int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			strconv.Itoa(questionIndex),
			strconv.Itoa(optionIndex),
		},
	}.encode()
}

// buildReloadCallback builds callback data for retrying the country load.
func buildReloadCallback() string {
	return callbackData{Action: actionData, Params: []string{dataReload}}.encode()
}
