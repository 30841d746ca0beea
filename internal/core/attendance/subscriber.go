package attendance

import "sync"

// subscriber queues events for one observer. push never blocks the tracker;
// pump forwards the queue to out on its own goroutine.
type subscriber struct {
	mu      sync.Mutex
	pending []Event
	ticks   int
	limit   int
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once
	out     chan Event
}

func newSubscriber(buffer int) *subscriber {
	return &subscriber{
		limit: buffer,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
		out:   make(chan Event, buffer),
	}
}

func (sub *subscriber) push(event Event) {
	sub.mu.Lock()
	if event.Type == EventTick {
		if last := len(sub.pending) - 1; last >= 0 && sub.pending[last].Type == EventTick {
			sub.pending[last] = event
			sub.mu.Unlock()
			return
		}
		if sub.ticks >= sub.limit {
			sub.mu.Unlock()
			return
		}
		sub.ticks++
	}
	sub.pending = append(sub.pending, event)
	sub.mu.Unlock()

	select {
	case sub.wake <- struct{}{}:
	default:
	}
}

func (sub *subscriber) next() (Event, bool) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if len(sub.pending) == 0 {
		return Event{}, false
	}
	event := sub.pending[0]
	sub.pending[0] = Event{}
	sub.pending = sub.pending[1:]
	if event.Type == EventTick {
		sub.ticks--
	}
	return event, true
}

func (sub *subscriber) pump() {
	defer close(sub.out)
	for {
		event, ok := sub.next()
		if !ok {
			select {
			case <-sub.wake:
				continue
			case <-sub.done:
				return
			}
		}
		select {
		case sub.out <- event:
		case <-sub.done:
			return
		}
	}
}

// close stops the pump, which then closes out. Undelivered events are dropped.
func (sub *subscriber) close() {
	sub.once.Do(func() {
		close(sub.done)
	})
}
