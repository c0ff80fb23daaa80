// Package notifier fans out change pings to the editor's SSE streams.
package notifier

import "sync"

// Notifier tells subscribed SSE streams that the source dataset changed and
// their view should be rebuilt from the current workspace. Pings carry no
// payload; a subscriber reacts the same way no matter how many changes
// coalesced behind one ping.
type Notifier struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a listener and returns its ping channel. The channel
// has capacity one so repeated broadcasts coalesce instead of queueing.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener and closes its channel. Closing under the
// lock keeps Broadcast from sending on a closed channel; calling it twice
// for the same channel is a no-op.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.subs[ch]; !ok {
		return
	}
	delete(n.subs, ch)
	close(ch)
}

// Broadcast pings every listener without blocking. A listener whose channel
// is already full picks the change up on its next receive.
func (n *Notifier) Broadcast() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
