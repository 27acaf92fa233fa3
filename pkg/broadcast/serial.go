package broadcast

import "sync"

// Serial runs queued functions one at a time, in the order they were queued.
// The goroutine that finds it idle runs the queue until it is empty; any other
// goroutine only appends and returns. A function queued from inside a running
// one runs after it, on the same goroutine.
// The zero value is ready to use.
type Serial struct {
	mu      sync.Mutex
	queue   []func()
	running bool
}

// Do queues fn. It returns after fn ran unless another goroutine is draining,
// in which case that goroutine runs fn.
func (s *Serial) Do(fn func()) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	s.queue = append(s.queue, fn)
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	done := false
	defer func() {
		// fn panicked.
		if !done {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}
	}()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.running = false
			s.mu.Unlock()
			done = true
			return
		}
		next := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()

		next()
	}
}
