package translate

import (
	"sync"
	"time"
)

// timerSet is a registry of one-shot auto-release timers, one per held-key
// identity, so session stop can cancel everything still outstanding. A
// timer that already fired races harmlessly with cancelAll: its release
// action is idempotent.
type timerSet struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	after  func(time.Duration, func()) *time.Timer
}

func newTimerSet() *timerSet {
	return &timerSet{
		timers: make(map[string]*time.Timer),
		after:  time.AfterFunc,
	}
}

// schedule arms a one-shot timer for an identity, replacing any timer
// already armed for it.
func (ts *timerSet) schedule(identity string, delay time.Duration, fire func()) {
	ts.mu.Lock()
	if old, ok := ts.timers[identity]; ok {
		old.Stop()
	}
	ts.timers[identity] = ts.after(delay, func() {
		ts.remove(identity)
		fire()
	})
	ts.mu.Unlock()
}

func (ts *timerSet) remove(identity string) {
	ts.mu.Lock()
	delete(ts.timers, identity)
	ts.mu.Unlock()
}

// cancelAll stops every outstanding timer. Stopping a fired timer is a
// no-op; double cancellation is safe.
func (ts *timerSet) cancelAll() {
	ts.mu.Lock()
	for id, t := range ts.timers {
		t.Stop()
		delete(ts.timers, id)
	}
	ts.mu.Unlock()
}

// outstanding returns the number of armed timers.
func (ts *timerSet) outstanding() int {
	ts.mu.Lock()
	n := len(ts.timers)
	ts.mu.Unlock()
	return n
}
