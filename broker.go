package promptrelay

import "promptrelay/internal/slot"

// pendingPrompt pairs a request with the one-shot resolver its connection is
// waiting on. The resolver carries at most one answer and is closed either
// way; a close without a send is observed as cancellation.
type pendingPrompt struct {
	request Request
	answer  chan string
}

// Broker correlates the single in-flight request with the answer delivered
// for it. It deliberately holds at most one pending entry: a second
// SetPending displaces the first, whose connection then sees a cancellation.
// Callers above this layer are responsible for keeping one logical request
// in flight at a time; the broker does not queue or reject.
type Broker struct {
	pending *slot.Slot[pendingPrompt]
	hub     *notifyHub
}

func NewBroker(eventNames ...string) *Broker {
	return &Broker{
		pending: slot.New[pendingPrompt](),
		hub:     newNotifyHub(eventNames),
	}
}

// SetPending installs request as the pending entry and returns the resolver
// channel its connection should wait on. Any previously pending entry is
// displaced and its resolver closed unused.
func (broker *Broker) SetPending(request Request) <-chan string {
	entry := pendingPrompt{request: request, answer: make(chan string, 1)}
	displaced, wasOccupied := broker.pending.Put(request.ID, entry)
	if wasOccupied {
		close(displaced.answer)
	}
	return entry.answer
}

// Resolve delivers the human's answer for requestID. It fails with
// ErrNoPending when nothing is waiting and with ErrIDMismatch when the
// pending entry has a different id; a mismatch leaves the entry pending so
// a stray resolve cannot clear someone else's request.
func (broker *Broker) Resolve(requestID string, answer string) error {
	entry, err := broker.pending.Take(requestID)
	if err != nil {
		return err
	}
	entry.answer <- answer
	close(entry.answer)
	return nil
}

// PendingID reports the id of the request currently awaiting an answer.
func (broker *Broker) PendingID() (string, bool) {
	return broker.pending.Pending()
}

// Subscribe registers a UI-side listener for incoming requests. The returned
// cancel func must be called when the listener goes away.
func (broker *Broker) Subscribe(buffer int) (<-chan Notification, func()) {
	return broker.hub.subscribe(buffer)
}

// Announce publishes request to all subscribers, once per configured event
// name. Decoupled from SetPending so the UI layer picks up new requests
// asynchronously from the resolve path.
func (broker *Broker) Announce(request Request) {
	broker.hub.publish(request)
}

// Close shuts down the notification hub. Pending resolvers are not touched;
// their connections keep waiting until resolved or dropped.
func (broker *Broker) Close() {
	broker.hub.close()
}
