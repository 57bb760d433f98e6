package promptrelay

import "sync"

// notifyHub fans incoming requests out to UI-side subscribers. Delivery is
// best-effort: a subscriber that stops draining its channel loses
// notifications rather than blocking the accept path.
type notifyHub struct {
	mu          sync.Mutex
	subscribers map[chan Notification]struct{}
	eventNames  []string
	closed      bool
}

func newNotifyHub(eventNames []string) *notifyHub {
	if len(eventNames) == 0 {
		eventNames = DefaultEventNames()
	}
	return &notifyHub{
		subscribers: map[chan Notification]struct{}{},
		eventNames:  eventNames,
	}
}

func (hub *notifyHub) subscribe(buffer int) (<-chan Notification, func()) {
	if buffer <= 0 {
		buffer = 32
	}
	sub := make(chan Notification, buffer)

	hub.mu.Lock()
	if hub.closed {
		hub.mu.Unlock()
		close(sub)
		return sub, func() {}
	}
	hub.subscribers[sub] = struct{}{}
	hub.mu.Unlock()

	var cancelOnce sync.Once
	cancel := func() {
		cancelOnce.Do(func() {
			hub.mu.Lock()
			defer hub.mu.Unlock()
			// The hub's close may have beaten us to the channel.
			if _, subscribed := hub.subscribers[sub]; subscribed {
				delete(hub.subscribers, sub)
				close(sub)
			}
		})
	}
	return sub, cancel
}

// publish sends one Notification per configured event name, in order.
// Sends happen under hub.mu so an unsubscribe cannot close a channel out
// from under an in-flight publish; the sends are non-blocking, so the lock
// is never held on a full subscriber.
func (hub *notifyHub) publish(request Request) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for sub := range hub.subscribers {
		for _, event := range hub.eventNames {
			select {
			case sub <- Notification{Event: event, Request: request}:
			default:
			}
		}
	}
}

func (hub *notifyHub) close() {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if hub.closed {
		return
	}
	hub.closed = true
	for sub := range hub.subscribers {
		close(sub)
		delete(hub.subscribers, sub)
	}
}
