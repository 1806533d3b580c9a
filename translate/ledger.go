package translate

import "sync"

// ledger tracks every key this session currently has pressed, keyed by a
// canonical identity: the plain token, or "shift+"+token for shift-wrapped
// symbol presses. The value is the action that inverts the press. At most
// one entry per identity exists at any time.
type ledger struct {
	mu      sync.Mutex
	entries map[string]func()
}

func newLedger() *ledger {
	return &ledger{entries: make(map[string]func())}
}

// record stores the inverse of a press under its identity, replacing any
// previous entry for the same identity.
func (l *ledger) record(identity string, inverse func()) {
	l.mu.Lock()
	l.entries[identity] = inverse
	l.mu.Unlock()
}

// forget drops an identity. Forgetting an absent identity is a no-op.
func (l *ledger) forget(identity string) {
	l.mu.Lock()
	delete(l.entries, identity)
	l.mu.Unlock()
}

// has reports whether an identity is currently recorded.
func (l *ledger) has(identity string) bool {
	l.mu.Lock()
	_, ok := l.entries[identity]
	l.mu.Unlock()
	return ok
}

// size returns the number of live entries.
func (l *ledger) size() int {
	l.mu.Lock()
	n := len(l.entries)
	l.mu.Unlock()
	return n
}

// drainAll snapshots the current entries, clears the ledger, then invokes
// every inverse action. A second call over the emptied ledger does
// nothing, so racing shutdown paths stay benign.
func (l *ledger) drainAll() {
	l.mu.Lock()
	snapshot := l.entries
	l.entries = make(map[string]func())
	l.mu.Unlock()

	for _, inverse := range snapshot {
		inverse()
	}
}
