package device

import (
	"time"
)

const (
	// DefaultTimerInterval is the wall-clock period of the timer
	// interrupt. The timer compares elapsed time against this on
	// every poll, so how often the machine polls does not skew the
	// tick rate.
	DefaultTimerInterval = 1 * time.Second
)

// Timer raises LineTimer whenever Interval has elapsed since the last
// baseline reset. A zero Interval disables the timer. Now may be
// replaced in tests to drive the timer synthetically.
type Timer struct {
	Interval time.Duration
	Now      func() time.Time // nil means time.Now

	baseline time.Time
}

var _ Source = (*Timer)(nil)

func (t *Timer) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// Reset re-arms the timer from the current moment. The processor calls
// this through the interrupt-return hook.
func (t *Timer) Reset() {
	t.baseline = t.now()
}

// Poll reports a timer event when the interval has elapsed, and
// re-arms. The first poll only arms the baseline.
func (t *Timer) Poll() (ev Event, ok bool) {
	if t.Interval <= 0 {
		return
	}

	if t.baseline.IsZero() {
		t.Reset()
		return
	}

	if t.now().Sub(t.baseline) < t.Interval {
		return
	}

	t.Reset()
	ev = Event{Line: LineTimer}
	ok = true
	return
}
