package eventloop

import "sync"

// Future is a one-shot value. Callbacks registered with Then are posted to
// the dispatcher once the future resolves, never run inline.
type Future[T any] struct {
	mu         sync.Mutex
	dispatcher Dispatcher
	resolved   bool
	value      T
	callbacks  []func(T)
}

// NewFuture returns an unresolved future bound to dispatcher.
func NewFuture[T any](dispatcher Dispatcher) *Future[T] {
	return &Future[T]{dispatcher: dispatcher}
}

// Resolve sets the value. Later calls are ignored and report false.
func (f *Future[T]) Resolve(value T) bool {
	f.mu.Lock()
	if f.resolved {
		f.mu.Unlock()
		return false
	}
	f.resolved = true
	f.value = value
	callbacks := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()

	for _, callback := range callbacks {
		f.post(callback, value)
	}
	return true
}

// Then registers callback. On an already resolved future the callback is
// posted immediately.
func (f *Future[T]) Then(callback func(T)) {
	if callback == nil {
		return
	}
	f.mu.Lock()
	if !f.resolved {
		f.callbacks = append(f.callbacks, callback)
		f.mu.Unlock()
		return
	}
	value := f.value
	f.mu.Unlock()
	f.post(callback, value)
}

// Resolved reports whether Resolve has been called.
func (f *Future[T]) Resolved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolved
}

// Value returns the resolved value and whether there is one.
func (f *Future[T]) Value() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.resolved
}

func (f *Future[T]) post(callback func(T), value T) {
	f.dispatcher.Post(func() { callback(value) })
}
