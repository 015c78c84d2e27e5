package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/availproject/avail-crawler/block"
	"github.com/availproject/avail-crawler/libs/broadcast"
)

var log = logging.Logger("rpc")

// HeaderSubscriber is the subset of Client the Listener needs. It is an
// interface so tests can feed the Listener synthetic header streams.
type HeaderSubscriber interface {
	SubscribeFinalizedHeaders(ctx context.Context) (<-chan *block.RawHeader, error)
}

// Listener consumes the finalized-headers subscription and republishes each
// header as a HeaderUpdate event stamped with its local receipt time. When
// the subscription ends, the event stream is closed, terminating all
// consumers.
type Listener struct {
	subscriber HeaderSubscriber
	events     *broadcast.Broadcaster[Event]

	cancel context.CancelFunc
	done   chan struct{}
}

// NewListener creates a Listener publishing to the given event stream.
func NewListener(subscriber HeaderSubscriber, events *broadcast.Broadcaster[Event]) *Listener {
	return &Listener{
		subscriber: subscriber,
		events:     events,
	}
}

// Start subscribes to finalized headers and spawns the republishing routine.
func (l *Listener) Start(context.Context) error {
	if l.cancel != nil {
		return fmt.Errorf("rpc: listener already started")
	}

	// this context outlives Start and controls the subscription lifetime
	ctx, cancel := context.WithCancel(context.Background())
	headers, err := l.subscriber.SubscribeFinalizedHeaders(ctx)
	if err != nil {
		cancel()
		return fmt.Errorf("rpc: subscribing to finalized headers: %w", err)
	}

	l.cancel = cancel
	l.done = make(chan struct{})
	go l.listen(ctx, headers)
	return nil
}

// Stop terminates the subscription and waits for the republishing routine.
func (l *Listener) Stop(ctx context.Context) error {
	if l.cancel == nil {
		return fmt.Errorf("rpc: listener not started")
	}

	l.cancel()
	select {
	case <-l.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	l.cancel = nil
	return nil
}

func (l *Listener) listen(ctx context.Context, headers <-chan *block.RawHeader) {
	defer close(l.done)
	defer l.events.Close()

	for {
		select {
		case h, ok := <-headers:
			if !ok {
				log.Info("header subscription closed")
				return
			}
			err := l.events.Broadcast(HeaderUpdate{Header: h, ReceivedAt: time.Now()})
			if errors.Is(err, broadcast.ErrNoSubscribers) {
				log.Debugw("dropped header update, no subscribers", "height", h.Number)
			}
		case <-ctx.Done():
			return
		}
	}
}
