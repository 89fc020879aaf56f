// Package notify delivers the storage-update signal raised after a
// completion is persisted. Delivery is fire-and-forget: there is no payload
// and no acknowledgment.
package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/bodypath/internal/logger"
)

// EventStorageUpdate is raised after completed items change.
const EventStorageUpdate = "tsv2StorageUpdate"

// Notifier publishes named events.
type Notifier interface {
	Notify(ctx context.Context, event string) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Notify(context.Context, string) error { return nil }

// Listener receives an event name.
type Listener func(event string)

// Bus fans events out to in-process listeners in subscription order.
type Bus struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
	order     []int
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[int]Listener)}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.order = append(b.order, id)
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// Notify calls every current listener. Listeners run on the caller's
// goroutine after the lock is released, so they may subscribe or
// unsubscribe.
func (b *Bus) Notify(_ context.Context, event string) error {
	b.mu.Lock()
	fns := make([]Listener, 0, len(b.listeners))
	live := b.order[:0]
	for _, id := range b.order {
		if fn, ok := b.listeners[id]; ok {
			fns = append(fns, fn)
			live = append(live, id)
		}
	}
	b.order = live
	b.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
	return nil
}

// Log writes each event to a logger.
type Log struct {
	log *logger.Logger
}

// NewLog creates a Notifier that logs events at info level.
func NewLog(log *logger.Logger) *Log {
	return &Log{log: log.With("component", "notify")}
}

func (l *Log) Notify(_ context.Context, event string) error {
	l.log.Info("storage event", "event", event)
	return nil
}

// Multi publishes to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, event string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
