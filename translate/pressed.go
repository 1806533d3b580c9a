package translate

import (
	"sort"
	"sync"
)

// pressedSet is the observational set of human-readable key names currently
// down. Display and logging only; the ledger is what correctness rests on.
type pressedSet struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newPressedSet() *pressedSet {
	return &pressedSet{keys: make(map[string]struct{})}
}

func (p *pressedSet) add(name string) {
	p.mu.Lock()
	p.keys[name] = struct{}{}
	p.mu.Unlock()
}

func (p *pressedSet) remove(name string) {
	p.mu.Lock()
	delete(p.keys, name)
	p.mu.Unlock()
}

func (p *pressedSet) clear() {
	p.mu.Lock()
	p.keys = make(map[string]struct{})
	p.mu.Unlock()
}

// names returns the current keys in sorted order.
func (p *pressedSet) names() []string {
	p.mu.Lock()
	out := make([]string, 0, len(p.keys))
	for k := range p.keys {
		out = append(out, k)
	}
	p.mu.Unlock()
	sort.Strings(out)
	return out
}
