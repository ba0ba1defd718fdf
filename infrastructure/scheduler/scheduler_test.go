package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_Add(t *testing.T) {
	s := NewScheduler(nil, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "expiry-check", "@daily", func(context.Context) {}))
	require.NoError(t, s.Add(ctx, "expiry-check-5am", "0 5 * * *", func(context.Context) {}))
	assert.Error(t, s.Add(ctx, "broken", "every day please", func(context.Context) {}))
	assert.Equal(t, 2, s.Entries())
}

func TestScheduler_RunStopsWithContext(t *testing.T) {
	s := NewScheduler(time.UTC, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
