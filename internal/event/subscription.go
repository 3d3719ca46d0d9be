package event

import (
	"sync/atomic"

	"github.com/dshills/mathfield/internal/event/topic"
)

// Subscription is a registered handler and its pattern.
type Subscription struct {
	id        string
	pattern   topic.Topic
	handler   Handler
	config    SubscriptionConfig
	seq       uint64
	cancelled atomic.Bool
}

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig struct {
	Priority Priority

	// Filter, if set, must accept an event for it to be delivered.
	Filter FilterFunc

	// Once cancels the subscription after its first successful delivery.
	Once bool
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPriority sets the subscription priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Priority = p
	}
}

// WithFilter sets a filter predicate.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Filter = f
	}
}

// WithOnce makes the subscription cancel itself after the first event.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string { return s.id }

// Topic returns the subscribed pattern.
func (s *Subscription) Topic() topic.Topic { return s.pattern }

// IsActive reports whether the subscription still receives events.
func (s *Subscription) IsActive() bool { return !s.cancelled.Load() }

// Cancel stops delivery to the subscription. It does not remove it from
// the bus; Unsubscribe does both.
func (s *Subscription) Cancel() { s.cancelled.Store(true) }

func (s *Subscription) shouldDeliver(event any) bool {
	return s.IsActive() && (s.config.Filter == nil || s.config.Filter(event))
}
