package rpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/availproject/avail-crawler/block"
	"github.com/availproject/avail-crawler/libs/broadcast"
)

type fakeSubscriber struct {
	headers chan *block.RawHeader
}

func (f *fakeSubscriber) SubscribeFinalizedHeaders(context.Context) (<-chan *block.RawHeader, error) {
	return f.headers, nil
}

func TestListener_RepublishesHeaders(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)

	sub := &fakeSubscriber{headers: make(chan *block.RawHeader, 1)}
	events := broadcast.New[Event](4)
	eventsSub := events.Subscribe()

	l := NewListener(sub, events)
	require.NoError(t, l.Start(ctx))

	before := time.Now()
	sub.headers <- &block.RawHeader{Number: 42}

	ev, err := eventsSub.Next(ctx)
	require.NoError(t, err)

	update, ok := ev.(HeaderUpdate)
	require.True(t, ok)
	assert.Equal(t, uint32(42), update.Header.Number)
	assert.False(t, update.ReceivedAt.Before(before))

	require.NoError(t, l.Stop(ctx))
}

func TestListener_ClosesEventStreamOnSubscriptionEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)

	sub := &fakeSubscriber{headers: make(chan *block.RawHeader)}
	events := broadcast.New[Event](4)
	eventsSub := events.Subscribe()

	l := NewListener(sub, events)
	require.NoError(t, l.Start(ctx))

	close(sub.headers)

	_, err := eventsSub.Next(ctx)
	assert.ErrorIs(t, err, broadcast.ErrClosed)
}

func TestListener_StartTwice(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)

	sub := &fakeSubscriber{headers: make(chan *block.RawHeader)}
	l := NewListener(sub, broadcast.New[Event](1))

	require.NoError(t, l.Start(ctx))
	assert.Error(t, l.Start(ctx))
	require.NoError(t, l.Stop(ctx))
}
