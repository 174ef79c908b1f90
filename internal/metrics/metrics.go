// Package metrics exposes Prometheus metrics for country loading and question generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the quiz engine metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Repository loads by result: "success" or "failure"
	RepositoryLoads *prometheus.CounterVec

	// Countries currently held by the repository
	CountriesLoaded prometheus.Gauge

	// Duration of a full fetch + normalize cycle
	LoadLatency prometheus.Histogram

	// Questions produced by category
	QuestionsGenerated *prometheus.CounterVec

	// Candidate countries that could not yield a valid question
	BuildsSkipped *prometheus.CounterVec

	// Question sets shorter than requested
	InsufficientSets *prometheus.CounterVec

	// Quizzes started by category
	GamesStarted *prometheus.CounterVec

	// Answers by correctness: "correct" or "wrong"
	Answers *prometheus.CounterVec
}

// New registers all metrics on reg. Pass prometheus.DefaultRegisterer in production
// and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		RepositoryLoads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_quiz_repository_loads_total",
			Help: "Total country repository loads by result",
		}, []string{"result"}),

		CountriesLoaded: f.NewGauge(prometheus.GaugeOpts{
			Name: "countries_quiz_countries_loaded",
			Help: "Number of usable countries held by the repository",
		}),

		LoadLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "countries_quiz_repository_load_duration_seconds",
			Help:    "Duration of country repository loads",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		QuestionsGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_quiz_questions_generated_total",
			Help: "Total questions generated by category",
		}, []string{"category"}),

		BuildsSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_quiz_question_builds_skipped_total",
			Help: "Candidate countries that could not produce a valid question",
		}, []string{"category"}),

		InsufficientSets: f.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_quiz_insufficient_sets_total",
			Help: "Question sets that came out shorter than requested",
		}, []string{"category"}),

		GamesStarted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_quiz_games_started_total",
			Help: "Quizzes started by category",
		}, []string{"category"}),

		Answers: f.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_quiz_answers_total",
			Help: "Answers submitted by correctness",
		}, []string{"result"}),
	}
}

// ObserveLoad records the outcome of a repository load.
func (m *Metrics) ObserveLoad(loaded int, err error, d time.Duration) {
	if m == nil {
		return
	}

	m.LoadLatency.Observe(d.Seconds())
	if err != nil {
		m.RepositoryLoads.WithLabelValues("failure").Inc()
		return
	}
	m.RepositoryLoads.WithLabelValues("success").Inc()
	m.CountriesLoaded.Set(float64(loaded))
}

// AddQuestions records generated questions for a category.
func (m *Metrics) AddQuestions(category string, n int) {
	if m != nil && n > 0 {
		m.QuestionsGenerated.WithLabelValues(category).Add(float64(n))
	}
}

// IncrementBuildSkipped records a candidate that yielded no question.
func (m *Metrics) IncrementBuildSkipped(category string) {
	if m != nil {
		m.BuildsSkipped.WithLabelValues(category).Inc()
	}
}

// IncrementInsufficient records a short question set.
func (m *Metrics) IncrementInsufficient(category string) {
	if m != nil {
		m.InsufficientSets.WithLabelValues(category).Inc()
	}
}

// IncrementGameStarted records a started quiz.
func (m *Metrics) IncrementGameStarted(category string) {
	if m != nil {
		m.GamesStarted.WithLabelValues(category).Inc()
	}
}

// IncrementAnswer records a submitted answer.
func (m *Metrics) IncrementAnswer(correct bool) {
	if m == nil {
		return
	}
	if correct {
		m.Answers.WithLabelValues("correct").Inc()
		return
	}
	m.Answers.WithLabelValues("wrong").Inc()
}
