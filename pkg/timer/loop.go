package timer

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultLoopBuffer is the number of fired callbacks a Loop buffers before
// timer goroutines block.
const DefaultLoopBuffer = 16

// Loop is a Scheduler for hosts built around a single event loop. Timers fire
// on runtime goroutines but only post their callback to Tasks; the host runs
// the callback on the loop goroutine alongside input events.
//
// A handle cancelled on the loop goroutine before its task is dispatched
// never runs, even if the task is already queued.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates a loop scheduler. A buffer below 1 uses DefaultLoopBuffer.
func NewLoop(buffer int) *Loop {
	if buffer < 1 {
		buffer = DefaultLoopBuffer
	}

	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Tasks returns the channel of fired callbacks. The host must call every
// received function on its event loop goroutine.
func (l *Loop) Tasks() <-chan func() {
	return l.tasks
}

// Close stops delivering callbacks. Pending timers are dropped.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

// Schedule implements Scheduler.
func (l *Loop) Schedule(delay time.Duration, fn func()) Handle {
	h := &loopHandle{}

	h.timer = time.AfterFunc(delay, func() {
		task := func() {
			if h.cancelled.Load() {
				return
			}
			h.cancelled.Store(true)
			fn()
		}

		select {
		case l.tasks <- task:
		case <-l.done:
		}
	})

	return h
}

type loopHandle struct {
	timer     *time.Timer
	cancelled atomic.Bool
}

func (h *loopHandle) Cancel() {
	h.cancelled.Store(true)
	h.timer.Stop()
}
