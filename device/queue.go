package device

const (
	QUEUE_DEPTH = 8 // Maximum pending interrupt requests.
)

// Queue is the bounded buffer between event sources and the processor.
// Raising on a full queue drops the event, like hardware missing an
// edge; nothing ever blocks on either side.
type Queue struct {
	events chan Event
}

func NewQueue() *Queue {
	return &Queue{
		events: make(chan Event, QUEUE_DEPTH),
	}
}

// Raise enqueues an event. Returns false if the queue was full and the
// event was dropped.
func (q *Queue) Raise(ev Event) (ok bool) {
	select {
	case q.events <- ev:
		ok = true
	default:
	}

	return
}

// Poll dequeues one pending event, if any.
func (q *Queue) Poll() (ev Event, ok bool) {
	select {
	case ev = <-q.events:
		ok = true
	default:
	}

	return
}
