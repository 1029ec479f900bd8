package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/infrastructure/cache"
	"github.com/DanielPopoola/broker-gateway/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCacheJanitor_Sweep(t *testing.T) {
	sweeper := mocks.NewMockSweeper(t)
	j := NewCacheJanitor(sweeper, time.Minute, testLogger)

	sweeper.EXPECT().PurgeExpired(mock.Anything).Return(4, nil).Once()
	require.NoError(t, j.Sweep(context.Background()))

	sweeper.EXPECT().PurgeExpired(mock.Anything).Return(0, errors.New("db down")).Once()
	assert.Error(t, j.Sweep(context.Background()))
}

func TestCacheJanitor_StopsOnCancel(t *testing.T) {
	sweeper := mocks.NewMockSweeper(t)
	sweeper.EXPECT().PurgeExpired(mock.Anything).Return(0, nil).Maybe()

	j := NewCacheJanitor(sweeper, 5*time.Millisecond, testLogger)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		j.Start(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestCacheJanitor_MemoryCacheIsSweeper(t *testing.T) {
	var _ Sweeper = cache.NewMemoryCache()
}
