package session

import (
	"sync"

	"github.com/AlexZinkM/ton-gamefi/internal/model"
)

type subscriber struct {
	id uint64
	cb func(model.StatusEvent)
}

// dispatcher delivers status events in the order they were queued.
// Only one goroutine drains at a time; events queued meanwhile are
// delivered by the draining goroutine, so callbacks may re-enter the manager.
type dispatcher struct {
	mu       sync.Mutex
	queue    []model.StatusEvent
	draining bool
	nextID   uint64
	subs     []subscriber
}

func (d *dispatcher) add(cb func(model.StatusEvent)) func() {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscriber{id: id, cb: cb})
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

// enqueue must be called while holding the lock that orders transitions
func (d *dispatcher) enqueue(ev model.StatusEvent) {
	d.mu.Lock()
	d.queue = append(d.queue, ev)
	d.mu.Unlock()
}

// flush delivers queued events unless another goroutine is already doing it
func (d *dispatcher) flush() {
	d.mu.Lock()
	if d.draining {
		d.mu.Unlock()
		return
	}
	d.draining = true

	for len(d.queue) > 0 {
		ev := d.queue[0]
		d.queue = d.queue[1:]
		subs := append([]subscriber(nil), d.subs...)
		d.mu.Unlock()

		for _, s := range subs {
			s.cb(ev)
		}

		d.mu.Lock()
	}
	d.draining = false
	d.mu.Unlock()
}
