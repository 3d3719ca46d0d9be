package event

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/mathfield/internal/event/topic"
)

// Bus delivers events synchronously to matching subscriptions. It is safe
// for concurrent use; handlers may subscribe and publish re-entrantly.
type Bus struct {
	mu   sync.RWMutex
	subs []*Subscription
	seq  uint64

	panicHandler PanicHandler

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithPanicHandler sets the function told about recovered handler panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *Bus) {
		if h != nil {
			b.panicHandler = h
		}
	}
}

// NewBus creates an event bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for every topic matching pattern.
func (b *Bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, fmt.Errorf("subscribe %q: %w", pattern, ErrInvalidTopic)
	}

	config := SubscriptionConfig{Priority: PriorityNormal}
	for _, opt := range opts {
		opt(&config)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	sub := &Subscription{
		id:      uuid.NewString(),
		pattern: pattern,
		handler: handler,
		config:  config,
		seq:     b.seq,
	}
	b.subs = append(b.subs, sub)
	slices.SortStableFunc(b.subs, func(x, y *Subscription) int {
		if x.config.Priority != y.config.Priority {
			return int(x.config.Priority - y.config.Priority)
		}
		return int(x.seq) - int(y.seq)
	})
	return sub, nil
}

// SubscribeFunc subscribes a function handler.
func (b *Bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe cancels sub and removes it from the bus.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}
	sub.Cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.Index(b.subs, sub)
	if i < 0 {
		return ErrSubscriptionNotFound
	}
	b.subs = slices.Delete(b.subs, i, i+1)
	return nil
}

// Publish delivers event to every matching subscription, in priority order,
// before returning. event must implement TopicProvider. The returned error
// joins every handler failure.
func (b *Bus) Publish(ctx context.Context, event any) error {
	tp, ok := event.(TopicProvider)
	if !ok || !tp.EventTopic().IsValid() {
		return ErrInvalidEvent
	}
	eventTopic := tp.EventTopic()

	b.mu.RLock()
	var matched []*Subscription
	for _, sub := range b.subs {
		if eventTopic.Matches(sub.pattern) {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	b.eventsPublished.Add(1)

	var errs []error
	for _, sub := range matched {
		if !sub.shouldDeliver(event) {
			continue
		}
		if err := b.deliver(ctx, sub, event); err != nil {
			errs = append(errs, err)
			continue
		}
		b.eventsDelivered.Add(1)
		if sub.config.Once {
			_ = b.Unsubscribe(sub)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) deliver(ctx context.Context, sub *Subscription, event any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			if b.panicHandler != nil {
				b.panicHandler(event, r)
			}
			err = &PanicError{SubscriptionID: sub.id, Topic: sub.pattern.String(), Value: r}
		}
	}()

	if herr := sub.handler.Handle(ctx, event); herr != nil {
		b.handlerErrors.Add(1)
		return &HandlerError{SubscriptionID: sub.id, Topic: sub.pattern.String(), Err: herr}
	}
	return nil
}

// Stats returns current bus counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	active := 0
	for _, sub := range b.subs {
		if sub.IsActive() {
			active++
		}
	}
	b.mu.RUnlock()

	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		EventsDelivered:   b.eventsDelivered.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: active,
	}
}
