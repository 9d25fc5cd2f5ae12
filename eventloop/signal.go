package eventloop

import "sync"

// Signal is a typed notification with any number of handlers. Emit runs
// handlers synchronously on the caller's goroutine.
type Signal[T any] struct {
	mu       sync.Mutex
	nextID   uint64
	handlers []signalHandler[T]
}

type signalHandler[T any] struct {
	id uint64
	fn func(T)
}

// Connect adds handler and returns a func that removes it. The returned func
// is safe to call more than once.
func (s *Signal[T]) Connect(handler func(T)) (disconnect func()) {
	if handler == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, signalHandler[T]{id: id, fn: handler})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, h := range s.handlers {
			if h.id == id {
				s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every handler connected at the time of the call. Handlers
// connected or disconnected during emission take effect on the next Emit.
func (s *Signal[T]) Emit(value T) {
	s.mu.Lock()
	snapshot := make([]signalHandler[T], len(s.handlers))
	copy(snapshot, s.handlers)
	s.mu.Unlock()

	for _, h := range snapshot {
		h.fn(value)
	}
}

// Len returns the number of connected handlers.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

// Clear disconnects every handler.
func (s *Signal[T]) Clear() {
	s.mu.Lock()
	s.handlers = nil
	s.mu.Unlock()
}
