package app

import (
	"context"

	"github.com/dshills/mathfield/internal/event"
	"github.com/dshills/mathfield/internal/event/events"
	"github.com/dshills/mathfield/internal/event/topic"
)

// subscribe installs the application's own bus subscriptions. Handlers run
// while the publisher holds the application lock and must not call Do.
func (app *Application) subscribe() error {
	log := app.logger.WithComponent("event")

	subs := []struct {
		pattern topic.Topic
		fn      event.HandlerFunc
		opts    []event.SubscriptionOption
	}{
		{
			pattern: "field.**",
			fn: func(_ context.Context, ev any) error {
				log.Debug("%s", describe(ev))
				return nil
			},
			opts: []event.SubscriptionOption{event.WithPriority(event.PriorityLow)},
		},
		{
			pattern: events.TopicPluginLoaded,
			fn: func(_ context.Context, ev any) error {
				if p, ok := event.Payload[events.PluginLoaded](ev); ok {
					log.Info("plugin %s registered %v", p.Path, p.Registered)
				}
				return nil
			},
		},
	}

	for _, s := range subs {
		sub, err := app.bus.SubscribeFunc(s.pattern, s.fn, s.opts...)
		if err != nil {
			return err
		}
		app.subs = append(app.subs, sub)
	}
	return nil
}

func describe(ev any) string {
	if p, ok := event.Payload[events.FieldEdited](ev); ok {
		return "field " + p.FieldID + " edited: " + p.Latex
	}
	if p, ok := event.Payload[events.SelectionChanged](ev); ok {
		return "field " + p.FieldID + " selection: " + p.Latex
	}
	return string(topicOf(ev))
}

func topicOf(ev any) topic.Topic {
	if tp, ok := ev.(event.TopicProvider); ok {
		return tp.EventTopic()
	}
	return ""
}
