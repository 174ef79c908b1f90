package entities

// OptionsPerQuestion is the number of choices every question carries.
const OptionsPerQuestion = 4

// Option is a single multiple choice entry. Value is the canonical answer
// (decimal digits for populations), Label is what the player sees.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Question is an immutable multiple choice question about one country.
type Question struct {
	ID                 string   `json:"id"`
	Category           Category `json:"category"`
	SubjectCountryName string   `json:"subjectCountryName"`
	PromptText         string   `json:"question"`
	Options            []Option `json:"options"`
	CorrectIndex       int      `json:"correctIndex"`
	CorrectAnswerLabel string   `json:"correctAnswerLabel"`
	ExplanationText    string   `json:"explanation"`
}

// Valid reports whether the question has exactly four options with distinct
// values and a correct index pointing at one of them.
func (q Question) Valid() bool {
	if len(q.Options) != OptionsPerQuestion {
		return false
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return false
	}

	seen := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if _, ok := seen[o.Value]; ok {
			return false
		}
		seen[o.Value] = struct{}{}
	}

	return true
}

// CorrectOption returns the option marked as correct.
func (q Question) CorrectOption() Option {
	return q.Options[q.CorrectIndex]
}

// IsCorrect checks the selected option index against the correct one.
func (q Question) IsCorrect(index int) bool {
	return index == q.CorrectIndex
}
