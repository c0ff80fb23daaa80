package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeAndBroadcast(t *testing.T) {
	n := New()

	ch1 := n.Subscribe()
	ch2 := n.Subscribe()
	defer n.Unsubscribe(ch1)
	defer n.Unsubscribe(ch2)

	n.Broadcast()

	for _, ch := range []chan struct{}{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("listener did not receive broadcast")
		}
	}
}

func TestBroadcastDoesNotBlockOnFullChannel(t *testing.T) {
	n := New()
	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	// The channel has capacity 1; repeated broadcasts coalesce.
	n.Broadcast()
	n.Broadcast()
	n.Broadcast()

	<-ch
	select {
	case <-ch:
		t.Fatal("expected coalesced broadcasts")
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	n := New()
	ch := n.Subscribe()
	n.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)

	// Broadcasting after unsubscribe must not panic.
	n.Broadcast()
}

func TestUnsubscribeTwiceIsNoOp(t *testing.T) {
	n := New()
	ch := n.Subscribe()

	n.Unsubscribe(ch)
	n.Unsubscribe(ch) // must not panic on the already-closed channel
}
