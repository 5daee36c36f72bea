// Package frames provides the "run this once before the next repaint"
// primitive the render loop schedules itself with.
package frames

import "sync"

// Handle identifies a pending frame request. The zero Handle is never issued.
type Handle uint64

type request struct {
	handle Handle
	fn     func()
}

// Queue collects frame callbacks and runs them once per frame. Callbacks
// requested while a frame is running are deferred to the following frame, so
// a callback that reschedules itself runs at most once per frame.
type Queue struct {
	sync.Mutex
	last      Handle
	pending   []request
	running   []request
	cancelled map[Handle]struct{}
}

// RequestFrame schedules fn to run on the next frame.
func (q *Queue) RequestFrame(fn func()) Handle {
	q.Lock()
	defer q.Unlock()

	q.last++
	q.pending = append(q.pending, request{handle: q.last, fn: fn})
	return q.last
}

// CancelFrame removes a pending request. Unknown or already run handles are
// ignored.
func (q *Queue) CancelFrame(h Handle) {
	q.Lock()
	defer q.Unlock()

	for i, r := range q.pending {
		if r.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// still waiting in the batch currently being run
	for _, r := range q.running {
		if r.handle == h {
			if q.cancelled == nil {
				q.cancelled = make(map[Handle]struct{})
			}
			q.cancelled[h] = struct{}{}
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next frame.
func (q *Queue) Pending() int {
	q.Lock()
	defer q.Unlock()
	return len(q.pending)
}

// RunPending runs every callback requested before the call and returns how
// many ran. A callback cancelled by an earlier callback of the same frame is
// skipped.
func (q *Queue) RunPending() int {
	q.Lock()
	batch := q.pending
	q.pending = nil
	q.running = batch
	q.Unlock()

	ran := 0
	for _, r := range batch {
		if q.skip(r.handle) {
			continue
		}
		r.fn()
		ran++
	}

	q.Lock()
	q.running = nil
	q.cancelled = nil
	q.Unlock()
	return ran
}

func (q *Queue) skip(h Handle) bool {
	q.Lock()
	defer q.Unlock()
	_, ok := q.cancelled[h]
	return ok
}
