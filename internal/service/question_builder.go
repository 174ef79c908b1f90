package service

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
)

const (
	distractorCount   = entities.OptionsPerQuestion - 1
	minFakePopulation = 100_000
	maxPopulationPass = 4
)

// populationRatios generate fake populations when the pool has too few real ones.
var populationRatios = []float64{0.55, 0.75, 1.2, 1.4, 1.8}

var fallbackCurrencies = []string{
	"Euro",
	"United States dollar",
	"Japanese yen",
	"British pound",
	"Swiss franc",
	"Canadian dollar",
	"Australian dollar",
	"Chinese yuan",
	"Indian rupee",
	"Brazilian real",
}

var fallbackLanguages = []string{
	"English",
	"Spanish",
	"French",
	"Arabic",
	"Portuguese",
	"Russian",
	"German",
	"Mandarin",
	"Hindi",
	"Swahili",
}

// QuestionBuilder turns a country and a pool of neighbours into a multiple
// choice question.
type QuestionBuilder struct {
	rng   Rand
	newID func() string
}

// NewQuestionBuilder creates a builder using rng for every random choice.
func NewQuestionBuilder(rng Rand) *QuestionBuilder {
	if rng == nil {
		rng = DefaultRand
	}
	return &QuestionBuilder{
		rng:   rng,
		newID: uuid.NewString,
	}
}

// categorySpec describes how one category reads values and words its question.
type categorySpec struct {
	values      func(c entities.Country) []string
	correct     func(c entities.Country) string
	label       func(value string) string
	topUp       func(b *QuestionBuilder, correct string, chosen []string) []string
	prompt      string
	explanation func(country, label string) string
}

var categorySpecs = map[entities.Category]categorySpec{
	entities.CategoryPopulation: {
		values: func(c entities.Country) []string {
			return []string{strconv.FormatInt(c.Population, 10)}
		},
		correct: func(c entities.Country) string {
			return strconv.FormatInt(c.Population, 10)
		},
		label: func(value string) string {
			v, _ := strconv.ParseInt(value, 10, 64)
			return FormatPopulation(v)
		},
		topUp:  (*QuestionBuilder).topUpPopulation,
		prompt: "What is the population of %s?",
		explanation: func(country, label string) string {
			return fmt.Sprintf("%s has a population of %s.", country, label)
		},
	},
	entities.CategoryCurrency: {
		values:  func(c entities.Country) []string { return c.Currencies },
		correct: entities.Country.PrimaryCurrency,
		label:   func(value string) string { return value },
		topUp: func(b *QuestionBuilder, correct string, chosen []string) []string {
			return b.topUpFromList(fallbackCurrencies, correct, chosen)
		},
		prompt: "Which currency is used in %s?",
		explanation: func(country, label string) string {
			return fmt.Sprintf("The currency of %s is %s.", country, label)
		},
	},
	entities.CategoryLanguages: {
		values:  func(c entities.Country) []string { return c.Languages },
		correct: entities.Country.PrimaryLanguage,
		label:   func(value string) string { return value },
		topUp: func(b *QuestionBuilder, correct string, chosen []string) []string {
			return b.topUpFromList(fallbackLanguages, correct, chosen)
		},
		prompt: "Which language is spoken in %s?",
		explanation: func(country, label string) string {
			return fmt.Sprintf("%s is spoken in %s.", label, country)
		},
	},
}

// Build dispatches to the builder of the given category.
func (b *QuestionBuilder) Build(
	category entities.Category,
	subject entities.Country,
	pool []entities.Country,
) (entities.Question, bool) {
	spec, ok := categorySpecs[category]
	if !ok {
		return entities.Question{}, false
	}
	return b.build(category, spec, subject, pool)
}

// BuildPopulationQuestion asks for the population of subject.
func (b *QuestionBuilder) BuildPopulationQuestion(subject entities.Country, pool []entities.Country) (entities.Question, bool) {
	return b.Build(entities.CategoryPopulation, subject, pool)
}

// BuildCurrencyQuestion asks for the primary currency of subject.
func (b *QuestionBuilder) BuildCurrencyQuestion(subject entities.Country, pool []entities.Country) (entities.Question, bool) {
	return b.Build(entities.CategoryCurrency, subject, pool)
}

// BuildLanguagesQuestion asks for the primary language of subject.
func (b *QuestionBuilder) BuildLanguagesQuestion(subject entities.Country, pool []entities.Country) (entities.Question, bool) {
	return b.Build(entities.CategoryLanguages, subject, pool)
}

func (b *QuestionBuilder) build(
	category entities.Category,
	spec categorySpec,
	subject entities.Country,
	pool []entities.Country,
) (entities.Question, bool) {
	if !subject.HasDataForCategory(category) {
		return entities.Question{}, false
	}

	correct := spec.correct(subject)
	candidates := distractorCandidates(category, spec, subject, pool, correct)

	distractors := Sample(b.rng, candidates, distractorCount)
	if len(distractors) < distractorCount {
		distractors = spec.topUp(b, correct, distractors)
	}

	values := uniqueStrings(append([]string{correct}, distractors...))
	if len(values) != entities.OptionsPerQuestion || values[0] != correct {
		return entities.Question{}, false
	}

	options := make([]entities.Option, 0, len(values))
	for _, v := range values {
		options = append(options, entities.Option{Label: spec.label(v), Value: v})
	}
	options = Shuffle(b.rng, options)

	correctIndex := -1
	for i, o := range options {
		if o.Value == correct {
			correctIndex = i
			break
		}
	}

	correctLabel := spec.label(correct)

	return entities.Question{
		ID:                 b.newID(),
		Category:           category,
		SubjectCountryName: subject.Name,
		PromptText:         fmt.Sprintf(spec.prompt, subject.Name),
		Options:            options,
		CorrectIndex:       correctIndex,
		CorrectAnswerLabel: correctLabel,
		ExplanationText:    spec.explanation(subject.Name, correctLabel),
	}, true
}

// distractorCandidates collects distinct values of the other eligible pool
// countries, excluding the correct value.
func distractorCandidates(
	category entities.Category,
	spec categorySpec,
	subject entities.Country,
	pool []entities.Country,
	correct string,
) []string {
	seen := map[string]struct{}{correct: {}}
	var out []string

	for _, c := range pool {
		if c.Name == subject.Name || !c.HasDataForCategory(category) {
			continue
		}
		for _, v := range spec.values(c) {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}

	return out
}

// topUpPopulation derives fake populations from the correct one. Pass p scales
// every ratio by p+1 so later passes move further away from the answer.
func (b *QuestionBuilder) topUpPopulation(correct string, chosen []string) []string {
	value, err := strconv.ParseInt(correct, 10, 64)
	if err != nil {
		return chosen
	}

	used := toSet(append([]string{correct}, chosen...))

	for pass := 0; pass < maxPopulationPass && len(chosen) < distractorCount; pass++ {
		for _, ratio := range populationRatios {
			if len(chosen) >= distractorCount {
				break
			}

			fake := int64(math.Floor(float64(value) * ratio * float64(pass+1)))
			fake = max(fake, minFakePopulation)

			s := strconv.FormatInt(fake, 10)
			if _, ok := used[s]; ok {
				continue
			}
			used[s] = struct{}{}
			chosen = append(chosen, s)
		}
	}

	return chosen
}

func (b *QuestionBuilder) topUpFromList(list []string, correct string, chosen []string) []string {
	used := toSet(append([]string{correct}, chosen...))

	for _, name := range Shuffle(b.rng, list) {
		if len(chosen) >= distractorCount {
			break
		}
		if _, ok := used[name]; ok {
			continue
		}
		used[name] = struct{}{}
		chosen = append(chosen, name)
	}

	return chosen
}

// FormatPopulation renders a head count with thousands separators.
func FormatPopulation(v int64) string {
	if v <= 0 {
		return "Unknown"
	}
	return humanize.Comma(v) + " people"
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
