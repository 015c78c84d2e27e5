// Package broadcast provides an in-process multi-producer, multi-consumer
// message stream. Messages are fanned out to every active subscriber; slow
// subscribers lose the oldest buffered message rather than blocking
// producers, and broadcasting without subscribers is reported as an error
// the producer is free to ignore.
package broadcast

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Next once the broadcaster has been closed and the
// subscription buffer is drained, and by Broadcast on a closed broadcaster.
var ErrClosed = errors.New("broadcast: closed")

// ErrNoSubscribers is returned by Broadcast when nobody is listening.
// The message is dropped.
var ErrNoSubscribers = errors.New("broadcast: no subscribers")

// Broadcaster fans messages out to all active subscriptions.
type Broadcaster[T any] struct {
	buffer int

	mu     sync.Mutex
	subs   map[*Subscription[T]]struct{}
	closed bool
}

// New creates a Broadcaster whose subscriptions buffer up to buffer messages.
func New[T any](buffer int) *Broadcaster[T] {
	if buffer < 1 {
		buffer = 1
	}
	return &Broadcaster[T]{
		buffer: buffer,
		subs:   make(map[*Subscription[T]]struct{}),
	}
}

// Subscribe registers a new subscription. Messages broadcast before
// Subscribe are not delivered to it.
func (b *Broadcaster[T]) Subscribe() *Subscription[T] {
	sub := &Subscription[T]{
		ch:   make(chan T, b.buffer),
		done: make(chan struct{}),
		b:    b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(sub.done)
		return sub
	}
	b.subs[sub] = struct{}{}
	return sub
}

// Broadcast delivers msg to every active subscription. A subscription whose
// buffer is full drops its oldest message to make room.
func (b *Broadcaster[T]) Broadcast(msg T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	if len(b.subs) == 0 {
		return ErrNoSubscribers
	}

	for sub := range b.subs {
		select {
		case sub.ch <- msg:
		default:
			// buffer full: evict the oldest message
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- msg:
			default:
			}
		}
	}
	return nil
}

// Close terminates the broadcaster. Subscribers drain their buffers and then
// receive ErrClosed from Next.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		close(sub.done)
	}
	b.subs = nil
}

func (b *Broadcaster[T]) cancel(sub *Subscription[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub.done)
	}
}

// Subscription is a single consumer's view of the stream.
type Subscription[T any] struct {
	ch   chan T
	done chan struct{}
	b    *Broadcaster[T]
}

// Next blocks until a message is available, the subscription terminates or
// the context is done. After termination it keeps returning buffered
// messages until the buffer is drained, then ErrClosed.
func (s *Subscription[T]) Next(ctx context.Context) (T, error) {
	var zero T

	select {
	case msg := <-s.ch:
		return msg, nil
	default:
	}

	select {
	case msg := <-s.ch:
		return msg, nil
	case <-s.done:
		// drain messages that raced with termination
		select {
		case msg := <-s.ch:
			return msg, nil
		default:
		}
		return zero, ErrClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Cancel removes the subscription from the broadcaster. Safe to call more
// than once.
func (s *Subscription[T]) Cancel() {
	s.b.cancel(s)
}
