package game

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// EventBus delivers events to observers. Publish must not return before
// every observer has seen the event.
type EventBus interface {
	Publish(ctx context.Context, ev Event)
}

type Observer interface {
	OnEvent(ctx context.Context, ev Event)
}

type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) OnEvent(ctx context.Context, ev Event) { f(ctx, ev) }

// Dispatcher is the in-process EventBus. Observers run synchronously in
// subscription order on the publishing goroutine.
type Dispatcher struct {
	mu        sync.RWMutex
	observers []*subscription
	log       logrus.FieldLogger
}

type subscription struct {
	observer Observer
}

func NewDispatcher(log logrus.FieldLogger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{log: log}
}

// Subscribe registers an observer and returns a func that removes it.
func (d *Dispatcher) Subscribe(o Observer) func() {
	sub := &subscription{observer: o}

	d.mu.Lock()
	d.observers = append(d.observers, sub)
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, s := range d.observers {
			if s == sub {
				d.observers = append(d.observers[:i:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

func (d *Dispatcher) Publish(ctx context.Context, ev Event) {
	d.mu.RLock()
	observers := make([]*subscription, len(d.observers))
	copy(observers, d.observers)
	d.mu.RUnlock()

	d.log.WithField("event", ev.Kind()).Trace("dispatch")
	for _, s := range observers {
		s.observer.OnEvent(ctx, ev)
	}
}

type discardBus struct{}

func (discardBus) Publish(context.Context, Event) {}
