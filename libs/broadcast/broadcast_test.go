package broadcast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcast_NoSubscribers(t *testing.T) {
	b := New[int](4)
	assert.ErrorIs(t, b.Broadcast(42), ErrNoSubscribers)
}

func TestBroadcast_FanOut(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)

	b := New[int](4)
	first, second := b.Subscribe(), b.Subscribe()

	require.NoError(t, b.Broadcast(1))
	require.NoError(t, b.Broadcast(2))

	for _, sub := range []*Subscription[int]{first, second} {
		got, err := sub.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, got)
		got, err = sub.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, got)
	}
}

func TestBroadcast_SlowSubscriberDropsOldest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)

	b := New[int](2)
	sub := b.Subscribe()

	for i := 1; i <= 5; i++ {
		require.NoError(t, b.Broadcast(i))
	}

	got, err := sub.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, got)
	got, err = sub.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestClose_DrainsThenErrClosed(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)

	b := New[string](4)
	sub := b.Subscribe()

	require.NoError(t, b.Broadcast("last"))
	b.Close()

	got, err := sub.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = sub.Next(ctx)
	assert.ErrorIs(t, err, ErrClosed)

	assert.ErrorIs(t, b.Broadcast("late"), ErrClosed)
}

func TestSubscribeAfterClose(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)

	b := New[int](1)
	b.Close()

	sub := b.Subscribe()
	_, err := sub.Next(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)

	b := New[int](1)
	sub := b.Subscribe()
	sub.Cancel()
	sub.Cancel() // idempotent

	_, err := sub.Next(ctx)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, b.Broadcast(1), ErrNoSubscribers)
}

func TestNext_ContextCanceled(t *testing.T) {
	b := New[int](1)
	sub := b.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sub.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
