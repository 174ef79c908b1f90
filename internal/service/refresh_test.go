package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingLoader struct {
	calls atomic.Int32
}

func (l *countingLoader) LoadRepository(_ context.Context) (int, error) {
	l.calls.Add(1)
	return 1, nil
}

func TestRefreshServiceRunsSchedule(t *testing.T) {
	loader := &countingLoader{}
	svc := NewRefreshService(loader, "@every 1s", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	assert.Eventually(t, func() bool { return loader.calls.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("refresh service did not stop")
	}
}

func TestRefreshServiceDisabled(t *testing.T) {
	loader := &countingLoader{}
	svc := NewRefreshService(loader, "", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, svc.Start(ctx))
	assert.Zero(t, loader.calls.Load())
}

func TestRefreshServiceBadSchedule(t *testing.T) {
	svc := NewRefreshService(&countingLoader{}, "every now and then", zap.NewNop())

	err := svc.Start(context.Background())
	assert.Error(t, err)
}

func TestRefreshKeepsDataOnFailure(t *testing.T) {
	repo := &fakeRepo{next: europe()}
	quiz := NewQuizService(repo, testRand(3), QuizOptions{}, nil, zap.NewNop())
	_, err := quiz.LoadRepository(context.Background())
	require.NoError(t, err)

	repo.loadErr = assert.AnError
	svc := NewRefreshService(quiz, DefaultRefreshSchedule, zap.NewNop())
	svc.refresh(context.Background())

	assert.Equal(t, 2, repo.loads)
	assert.Equal(t, 6, quiz.CountryCount())
}
