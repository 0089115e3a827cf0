package event

import "sync"

// registry holds subscriptions organized by topic, preserving registration
// order within each topic. It is safe for concurrent use.
type registry struct {
	mu   sync.RWMutex
	subs map[Topic][]*Subscription
	byID map[string]*Subscription
}

func newRegistry() *registry {
	return &registry{
		subs: make(map[Topic][]*Subscription),
		byID: make(map[string]*Subscription),
	}
}

// add appends the subscription to its topic's list.
func (r *registry) add(sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs[sub.topic] = append(r.subs[sub.topic], sub)
	r.byID[sub.id] = sub
}

// remove deletes a subscription by ID. The topic entry is pruned entirely
// once its list becomes empty.
func (r *registry) remove(subID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, exists := r.byID[subID]
	if !exists {
		return false
	}

	subs := r.subs[sub.topic]
	for i, s := range subs {
		if s.id == subID {
			r.subs[sub.topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(r.subs[sub.topic]) == 0 {
		delete(r.subs, sub.topic)
	}

	delete(r.byID, subID)
	sub.cancel()
	return true
}

// snapshot returns a copy of the topic's subscription list in registration
// order. Mutations after the snapshot do not affect the returned slice.
func (r *registry) snapshot(topic Topic) []*Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := r.subs[topic]
	if len(subs) == 0 {
		return nil
	}
	out := make([]*Subscription, len(subs))
	copy(out, subs)
	return out
}

// count returns the total number of registered subscriptions.
func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// countTopic returns the number of subscriptions for one topic.
func (r *registry) countTopic(topic Topic) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[topic])
}

// topics returns all topics that currently have subscriptions.
func (r *registry) topics() []Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.subs) == 0 {
		return nil
	}
	out := make([]Topic, 0, len(r.subs))
	for t := range r.subs {
		out = append(out, t)
	}
	return out
}

// clear removes every subscription.
func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.byID {
		sub.cancel()
	}
	r.subs = make(map[Topic][]*Subscription)
	r.byID = make(map[string]*Subscription)
}
