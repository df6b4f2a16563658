package lighting

import "errors"

// Edit is a deferred change to the light, applied on the frame thread.
type Edit func(*Controls)

// ErrQueueFull is returned by Push when the frame thread has fallen behind.
var ErrQueueFull = errors.New("edit queue full")

// EditQueue carries edits from goroutines (remote control, file watchers) to the
// frame thread. Push is safe for concurrent use; Drain must only be called from
// the frame thread.
type EditQueue struct {
	edits chan Edit
}

// NewEditQueue creates a queue holding at most size pending edits.
func NewEditQueue(size int) *EditQueue {
	if size <= 0 {
		size = 1
	}
	return &EditQueue{edits: make(chan Edit, size)}
}

// Push enqueues an edit without blocking.
func (q *EditQueue) Push(e Edit) error {
	select {
	case q.edits <- e:
		return nil
	default:
		return ErrQueueFull
	}
}

// Drain applies every pending edit in arrival order and returns how many ran.
// Edits pushed while draining wait for the next frame.
func (q *EditQueue) Drain(c *Controls) int {
	n := len(q.edits)
	for i := 0; i < n; i++ {
		e := <-q.edits
		e(c)
	}
	return n
}

// Len returns the number of pending edits.
func (q *EditQueue) Len() int {
	return len(q.edits)
}
