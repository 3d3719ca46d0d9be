// Package event provides the synchronous publish/subscribe bus that carries
// field notifications to the rest of the application.
//
// Events are published under hierarchical topics (see package topic) and
// delivered in the publisher's goroutine, in priority order, to every
// subscription whose pattern matches:
//
//	bus := event.NewBus()
//	bus.SubscribeFunc("field.**", func(ctx context.Context, e any) error {
//		log.Println(e.(event.TopicProvider).EventTopic())
//		return nil
//	})
//	bus.Publish(ctx, event.NewEvent(events.TopicFieldEdited, payload, "field"))
//
// Handler errors and panics never stop delivery to the remaining handlers.
// Publish reports them joined together; panics are also passed to the
// bus's panic handler.
package event
