package hooks

import (
	"sync"

	"github.com/sirupsen/logrus"

	"rental_frontend/client"
)

// base carries what every hook shares: the lock over its state, the last
// error message and its listeners. Each hook keeps its data fields next to
// base and guards them with base.mu.
type base struct {
	mu      sync.RWMutex
	loading bool
	err     string

	listenersMu sync.Mutex
	listeners   map[int]func()
	nextID      int

	logger *logrus.Logger
}

func (b *base) init(logger *logrus.Logger) {
	b.listeners = map[int]func(){}
	b.logger = logger
}

// begin flips the given loading flag on and clears the previous error.
func (b *base) begin(flag *bool) {
	b.mu.Lock()
	*flag = true
	b.err = ""
	b.mu.Unlock()
	b.notify()
}

// succeed applies the result and flips flag off in one step.
func (b *base) succeed(flag *bool, apply func()) {
	b.mu.Lock()
	if apply != nil {
		apply()
	}
	*flag = false
	b.err = ""
	b.mu.Unlock()
	b.notify()
}

// fail records the display message and hands back err itself so callers can
// return it unchanged.
func (b *base) fail(flag *bool, err error, fallback string, apply func()) error {
	b.mu.Lock()
	if apply != nil {
		apply()
	}
	*flag = false
	b.err = client.MessageOf(err, fallback)
	b.mu.Unlock()
	b.notify()

	b.logger.WithFields(logrus.Fields{
		"kind":   client.KindOf(err),
		"status": client.StatusOf(err),
	}).Warn(b.err)
	return err
}

func (b *base) ClearError() {
	b.mu.Lock()
	b.err = ""
	b.mu.Unlock()
	b.notify()
}

func (b *base) subscribe(fn func()) func() {
	b.listenersMu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.listenersMu.Unlock()

	return func() {
		b.listenersMu.Lock()
		delete(b.listeners, id)
		b.listenersMu.Unlock()
	}
}

func (b *base) notify() {
	b.listenersMu.Lock()
	listeners := make([]func(), 0, len(b.listeners))
	for _, fn := range b.listeners {
		listeners = append(listeners, fn)
	}
	b.listenersMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
