package acquisition

// Handoff is a single-slot, most-recent-value channel between one producer
// and one consumer. A publish overwrites any unread value, so the consumer
// observes either the latest complete value or nothing; intermediate values
// are dropped without notification. Neither side ever blocks.
type Handoff[T any] struct {
	slot chan T
}

// NewHandoff creates an empty handoff slot.
func NewHandoff[T any]() *Handoff[T] {
	return &Handoff[T]{slot: make(chan T, 1)}
}

// Publish stores v as the latest value, discarding any unread predecessor.
func (h *Handoff[T]) Publish(v T) {
	for {
		select {
		case h.slot <- v:
			return
		default:
		}
		// Slot full: drain the stale value and retry. With a single
		// producer the retry succeeds immediately unless the consumer
		// drained first, in which case the send does.
		select {
		case <-h.slot:
		default:
		}
	}
}

// Poll returns the latest published value, or false when nothing has been
// published since the previous Poll.
func (h *Handoff[T]) Poll() (T, bool) {
	select {
	case v := <-h.slot:
		return v, true
	default:
		var zero T
		return zero, false
	}
}
