package bridge

import (
	"sync"
	"time"

	list "github.com/bahlo/generic-list-go"
	"github.com/mj1618/focus-border/internal/model"
)

// eventQueue is an unbounded FIFO between the native thread and the dispatch
// goroutine. push never blocks on the consumer.
type eventQueue struct {
	mu       sync.Mutex
	items    *list.List[model.FocusEvent]
	ready    chan struct{}
	closed   bool
	seq      uint64
	coalesce bool
	last     model.FocusEvent
	hasLast  bool
	dropped  uint64
}

func newEventQueue(coalesce bool) *eventQueue {
	return &eventQueue{
		items:    list.New[model.FocusEvent](),
		ready:    make(chan struct{}, 1),
		coalesce: coalesce,
	}
}

// push stamps ev with the next sequence number and enqueues it. It returns
// false when the queue is closed or ev was coalesced into its predecessor.
func (q *eventQueue) push(ev model.FocusEvent) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	if q.coalesce && q.hasLast && q.last.SameTarget(ev) {
		q.dropped++
		q.mu.Unlock()
		return false
	}
	q.seq++
	ev.Seq = q.seq
	ev.TS = time.Now().Unix()
	q.items.PushBack(ev)
	q.last, q.hasLast = ev, true
	q.mu.Unlock()

	q.signal()
	return true
}

// drain removes and returns everything queued, and whether the queue is closed.
func (q *eventQueue) drain() ([]model.FocusEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.items.Len() == 0 {
		return nil, q.closed
	}
	batch := make([]model.FocusEvent, 0, q.items.Len())
	for e := q.items.Front(); e != nil; e = e.Next() {
		batch = append(batch, e.Value)
	}
	q.items.Init()
	return batch, q.closed
}

// close stops accepting events. Already queued events remain drainable.
func (q *eventQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}

func (q *eventQueue) coalesced() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

func (q *eventQueue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
