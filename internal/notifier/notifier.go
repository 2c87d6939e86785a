// Package notifier carries the process-wide "cart changed" signal. The
// event has no payload; listeners re-query the cart store for current data.
package notifier

import "sync"

// Listener is invoked synchronously on every publish.
type Listener func()

// Notifier fans a payload-less signal out to subscribers in subscription
// order. It holds no persisted state.
type Notifier struct {
	mu      sync.Mutex
	nextID  int
	entries []entry
}

type entry struct {
	id int
	fn Listener
}

func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers fn and returns an idempotent unsubscribe func. The
// subscribing surface owns calling it on teardown so a disposed listener is
// never notified again.
func (n *Notifier) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.entries = append(n.entries, entry{id: id, fn: fn})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, e := range n.entries {
			if e.id == id {
				n.entries = append(n.entries[:i:i], n.entries[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the signal to every current subscriber, synchronously and
// in subscription order. Listeners registered during delivery are not called
// until the next publish.
func (n *Notifier) Publish() {
	n.mu.Lock()
	snapshot := make([]entry, len(n.entries))
	copy(snapshot, n.entries)
	n.mu.Unlock()

	for _, e := range snapshot {
		e.fn()
	}
}

// Len reports the current subscriber count.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.entries)
}
