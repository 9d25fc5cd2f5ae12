// Package eventloop provides the single-threaded dispatcher every editor
// callback runs on, plus the one-shot Future and typed Signal used to wire
// components together.
package eventloop

import (
	"context"
	"fmt"
	"sync"

	"github.com/rgonek/md-wysiwyg/logging"
)

// Dispatcher accepts work to run on the loop goroutine.
type Dispatcher interface {
	Post(task func())
}

// Loop runs posted tasks one at a time, in posting order. Post is safe from
// any goroutine; tasks themselves always run on the goroutine that calls Run
// or Drain.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool
	logger logging.Logger
}

var _ Dispatcher = (*Loop)(nil)

// New returns an empty loop. A nil logger discards panic reports.
func New(logger logging.Logger) *Loop {
	return &Loop{
		wake:   make(chan struct{}, 1),
		logger: logging.OrNoOp(logger),
	}
}

// Post queues task. Tasks posted after Close are dropped.
func (l *Loop) Post(task func()) {
	if task == nil {
		return
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		l.logger.Debug("eventloop.post.closed")
		return
	}
	l.queue = append(l.queue, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Drain runs queued tasks, including ones posted while draining, until the
// queue is empty. It returns the number of tasks run.
func (l *Loop) Drain() int {
	ran := 0
	for {
		task, ok := l.next()
		if !ok {
			return ran
		}
		l.run(task)
		ran++
	}
}

// Run processes tasks until ctx is done or the loop is closed. Tasks still
// queued at Close are run before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()

		l.mu.Lock()
		closed := l.closed
		l.mu.Unlock()
		if closed {
			l.Drain()
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Close stops accepting tasks and wakes Run.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	task := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return task, true
}

// run executes one task. A panicking task is logged and does not stop the loop.
func (l *Loop) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("eventloop.task.panic", "panic", fmt.Sprint(r))
		}
	}()
	task()
}
