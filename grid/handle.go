package grid

import "context"

// Handle is a completion token for work scheduled against a grid buffer.
// A nil *Handle counts as complete.
type Handle struct {
	done chan struct{}
}

var completed = func() *Handle {
	h := &Handle{done: make(chan struct{})}
	close(h.done)
	return h
}()

// Completed returns a handle that is already complete.
func Completed() *Handle { return completed }

// Schedule runs fn on its own goroutine after every dependency completed and
// returns the handle of that run.
func Schedule(fn func(), deps ...*Handle) *Handle {
	h := &Handle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		for _, d := range deps {
			d.Complete()
		}
		fn()
	}()
	return h
}

// Combine returns a handle that completes once every one of deps completed.
func Combine(deps ...*Handle) *Handle {
	pending := make([]*Handle, 0, len(deps))
	for _, d := range deps {
		if !d.IsCompleted() {
			pending = append(pending, d)
		}
	}
	switch len(pending) {
	case 0:
		return completed
	case 1:
		return pending[0]
	}
	return Schedule(func() {}, pending...)
}

// Complete blocks until the work behind h finished.
func (h *Handle) Complete() {
	if h == nil {
		return
	}
	<-h.done
}

// Wait is Complete with cancellation.
func (h *Handle) Wait(ctx context.Context) error {
	if h == nil {
		return nil
	}
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsCompleted reports whether the work behind h finished, without blocking.
func (h *Handle) IsCompleted() bool {
	if h == nil {
		return true
	}
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the work behind h finished.
func (h *Handle) Done() <-chan struct{} {
	if h == nil {
		return completed.done
	}
	return h.done
}
