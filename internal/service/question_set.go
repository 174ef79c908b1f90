package service

import (
	"github.com/aliskhannn/countries-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/countries-quiz-bot/internal/metrics"
)

// QuestionSetGenerator produces a batch of questions for one category.
type QuestionSetGenerator struct {
	builder *QuestionBuilder
	rng     Rand
	metrics *metrics.Metrics
}

// NewQuestionSetGenerator creates a generator. m may be nil.
func NewQuestionSetGenerator(builder *QuestionBuilder, rng Rand, m *metrics.Metrics) *QuestionSetGenerator {
	if rng == nil {
		rng = DefaultRand
	}
	return &QuestionSetGenerator{
		builder: builder,
		rng:     rng,
		metrics: m,
	}
}

// Generate builds up to desiredCount questions about countries from pool.
// When no pool country is eligible the whole repository (all) is used instead.
// Distractors are drawn from the pool and the repository together.
// A short or empty result means there was not enough data.
func (g *QuestionSetGenerator) Generate(
	category entities.Category,
	desiredCount int,
	pool []entities.Country,
	all []entities.Country,
) []entities.Question {
	return g.GenerateFeaturing(category, desiredCount, pool, all, "")
}

// GenerateFeaturing works like Generate but tries the country named featured
// first, so it is part of the set whenever it can produce a question.
func (g *QuestionSetGenerator) GenerateFeaturing(
	category entities.Category,
	desiredCount int,
	pool []entities.Country,
	all []entities.Country,
	featured string,
) []entities.Question {
	questions := []entities.Question{}
	if desiredCount <= 0 {
		return questions
	}

	candidates := eligibleCountries(category, pool)
	if len(candidates) == 0 {
		candidates = eligibleCountries(category, all)
	}
	if len(candidates) == 0 {
		g.metrics.IncrementInsufficient(string(category))
		return questions
	}

	distractorPool := uniqueCountries(append(append([]entities.Country{}, candidates...), all...))

	for _, subject := range featuredFirst(Shuffle(g.rng, candidates), featured) {
		if len(questions) >= desiredCount {
			break
		}

		q, ok := g.builder.Build(category, subject, distractorPool)
		if !ok {
			g.metrics.IncrementBuildSkipped(string(category))
			continue
		}
		questions = append(questions, q)
	}

	g.metrics.AddQuestions(string(category), len(questions))
	if len(questions) < desiredCount {
		g.metrics.IncrementInsufficient(string(category))
	}

	return questions
}

// featuredFirst moves the country named featured to the front of countries.
func featuredFirst(countries []entities.Country, featured string) []entities.Country {
	if featured == "" {
		return countries
	}
	for i, c := range countries {
		if c.Name != featured {
			continue
		}
		copy(countries[1:i+1], countries[:i])
		countries[0] = c
		break
	}
	return countries
}

func eligibleCountries(category entities.Category, countries []entities.Country) []entities.Country {
	var out []entities.Country
	for _, c := range uniqueCountries(countries) {
		if c.HasDataForCategory(category) {
			out = append(out, c)
		}
	}
	return out
}

// uniqueCountries drops later countries sharing a name with an earlier one.
func uniqueCountries(countries []entities.Country) []entities.Country {
	seen := make(map[string]struct{}, len(countries))
	out := make([]entities.Country, 0, len(countries))
	for _, c := range countries {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		out = append(out, c)
	}
	return out
}
