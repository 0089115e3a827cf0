// Package event provides the publish/subscribe bus for Scrollstorm.
//
// The bus is the coordination backbone between the scroll container, the
// active-section resolver, and the animation engine. It is deliberately
// synchronous: a call to Publish invokes every subscriber for the topic in
// registration order, in the publisher's goroutine, before returning. This
// mirrors the single main-thread callback model of the environment the
// library coordinates.
//
// # Dispatch guarantees
//
//   - Subscribers run in registration order within one topic.
//   - Dispatch operates on a snapshot of the subscription list taken before
//     the first handler runs. Subscriptions added or removed while a publish
//     is in flight do not affect that publish.
//   - A handler that returns an error or panics is reported through the
//     bus's error handler and never prevents the remaining handlers from
//     running.
//   - Once-subscriptions are collected during dispatch and removed only
//     after the full fan-out completes.
//
// No ordering is guaranteed across topics, only within one topic's dispatch.
//
// # Basic usage
//
//	bus := event.NewBus()
//	sub, _ := bus.Subscribe(event.TopicScroll, event.HandlerFunc(onScroll))
//	bus.Publish(ctx, event.TopicScroll, sample)
//	bus.Unsubscribe(sub)
//
// # Waiting for an event
//
//	fut := bus.WaitFor(event.TopicLoad, 5*time.Second)
//	payload, err := fut.Wait(ctx)
//
// A Future resolves with the next payload published on its topic, or rejects
// with a TimeoutError when the deadline passes first.
package event
