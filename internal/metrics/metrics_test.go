package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLoad(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveLoad(250, nil, time.Second)
	m.ObserveLoad(0, errors.New("boom"), time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RepositoryLoads.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RepositoryLoads.WithLabelValues("failure")))
	assert.Equal(t, 250.0, testutil.ToFloat64(m.CountriesLoaded), "failed load keeps the gauge")
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.AddQuestions("currency", 3)
	m.AddQuestions("currency", 0)
	m.IncrementBuildSkipped("population")
	m.IncrementInsufficient("languages")
	m.IncrementGameStarted("currency")
	m.IncrementAnswer(true)
	m.IncrementAnswer(false)
	m.IncrementAnswer(false)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.QuestionsGenerated.WithLabelValues("currency")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildsSkipped.WithLabelValues("population")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InsufficientSets.WithLabelValues("languages")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesStarted.WithLabelValues("currency")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Answers.WithLabelValues("correct")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Answers.WithLabelValues("wrong")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveLoad(1, nil, time.Millisecond)
		m.AddQuestions("population", 1)
		m.IncrementBuildSkipped("population")
		m.IncrementInsufficient("population")
		m.IncrementGameStarted("population")
		m.IncrementAnswer(true)
	})
}
