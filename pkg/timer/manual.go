package timer

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by a virtual clock. Nothing fires until
// Advance is called, which makes gesture timing deterministic in tests and
// in recorded-gesture replay. Manual is not safe for concurrent use.
type Manual struct {
	now     time.Duration
	seq     uint64
	pending []*manualHandle
}

// NewManual creates a manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of scheduled callbacks not yet fired or
// cancelled.
func (m *Manual) Pending() int {
	n := 0
	for _, h := range m.pending {
		if !h.cancelled {
			n++
		}
	}
	return n
}

// Schedule implements Scheduler.
func (m *Manual) Schedule(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}

	m.seq++
	h := &manualHandle{
		deadline: m.now + delay,
		seq:      m.seq,
		fn:       fn,
	}
	m.pending = append(m.pending, h)

	return h
}

// Advance moves the clock forward by d, running every callback whose
// deadline falls inside the window in deadline order. Callbacks scheduled by
// a running callback fire in the same call when they are due.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d

	for {
		h := m.next(end)
		if h == nil {
			break
		}

		m.now = h.deadline
		h.cancelled = true
		h.fn()
	}

	m.now = end
}

// next removes and returns the earliest live handle due by end.
func (m *Manual) next(end time.Duration) *manualHandle {
	live := m.pending[:0]
	for _, h := range m.pending {
		if !h.cancelled {
			live = append(live, h)
		}
	}
	m.pending = live

	if len(m.pending) == 0 {
		return nil
	}

	sort.SliceStable(m.pending, func(i, j int) bool {
		a, b := m.pending[i], m.pending[j]
		if a.deadline != b.deadline {
			return a.deadline < b.deadline
		}
		return a.seq < b.seq
	})

	h := m.pending[0]
	if h.deadline > end {
		return nil
	}

	m.pending = m.pending[1:]
	return h
}

type manualHandle struct {
	deadline  time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

func (h *manualHandle) Cancel() {
	h.cancelled = true
}
