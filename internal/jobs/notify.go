package jobs

// Kind names a job kind. Each kind gets its own controller with its own
// slots and goroutines; kinds never share state.
type Kind string

const (
	// KindPush is the push job kind.
	KindPush Kind = "push"
)

// Notification is a payload-less wake signal: "something changed for
// this job kind". Receivers re-poll the controller accessors to learn
// what changed; a notification that changes nothing observable is
// normal and must be tolerated.
type Notification struct {
	Kind Kind
}

// Notifier delivers notifications from many producers (workers, relays)
// to a single consumer, typically the UI event loop.
type Notifier struct {
	ch chan Notification
}

// NewNotifier creates a notifier with the given buffer size.
// A buffer of at least 1 is enforced so a completion signal always has
// room when the consumer is between polls.
func NewNotifier(buffer int) *Notifier {
	if buffer < 1 {
		buffer = 1
	}
	return &Notifier{ch: make(chan Notification, buffer)}
}

// Notify emits a wake signal without blocking. When the buffer is full
// the signal is dropped: an undelivered notification is indistinguishable
// from one coalesced with the signal already queued, because receivers
// re-poll state rather than consume diffs.
func (n *Notifier) Notify(kind Kind) {
	select {
	case n.ch <- Notification{Kind: kind}:
	default:
	}
}

// C returns the receive side for the single consumer.
func (n *Notifier) C() <-chan Notification {
	return n.ch
}
