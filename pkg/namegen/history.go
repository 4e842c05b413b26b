package namegen

import (
	"sort"
	"sync"
)

// History is the set of names a NameSet has produced. Linked NameSets share
// one instance by reference, so a name recorded through any member excludes
// it from all of them. The mutex keeps a shared instance safe when linked
// sets generate from different goroutines.
type History struct {
	mu    sync.Mutex
	names map[string]struct{}
}

func newHistory() *History {
	return &History{names: make(map[string]struct{})}
}

func (h *History) add(names ...string) {
	h.mu.Lock()
	for _, n := range names {
		h.names[n] = struct{}{}
	}
	h.mu.Unlock()
}

func (h *History) has(name string) bool {
	h.mu.Lock()
	_, ok := h.names[name]
	h.mu.Unlock()
	return ok
}

func (h *History) clear() {
	h.mu.Lock()
	clear(h.names)
	h.mu.Unlock()
}

func (h *History) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.names)
}

// contents returns an unsorted copy of the set.
func (h *History) contents() []string {
	h.mu.Lock()
	out := make([]string, 0, len(h.names))
	for n := range h.names {
		out = append(out, n)
	}
	h.mu.Unlock()
	return out
}

// clone returns an unshared History with the same contents.
func (h *History) clone() *History {
	fresh := newHistory()
	fresh.add(h.contents()...)
	return fresh
}

// History returns a sorted copy of the linked history's contents.
func (ns *NameSet) History() []string {
	out := ns.history.contents()
	sort.Strings(out)
	return out
}

// HistoryLen returns the number of names in the linked history.
func (ns *NameSet) HistoryLen() int {
	return ns.history.size()
}

// AddToHistory inserts names into the linked history, where every linked
// member sees them.
func (ns *NameSet) AddToHistory(names ...string) {
	ns.history.add(names...)
}

// ClearHistory empties the linked history in place. Linked members see the
// cleared set too; use UnlinkHistory first to clear only this set.
func (ns *NameSet) ClearHistory() {
	ns.history.clear()
}

// LinkHistories merges the current histories of ns and every other into one
// fresh shared instance and rebinds all involved sets to it, so a name
// generated by any of them excludes it from all. Linking is symmetric and
// transitive within a call. Any prior link a participant had is broken;
// previous partners not named here keep the old instance.
func (ns *NameSet) LinkHistories(others ...*NameSet) {
	merged := newHistory()
	merged.add(ns.history.contents()...)
	for _, other := range others {
		merged.add(other.history.contents()...)
	}
	ns.history = merged
	for _, other := range others {
		other.history = merged
	}
}

// UnlinkHistory detaches ns from any shared history, giving it a private
// copy of the current contents. Remaining members keep sharing the original
// instance.
func (ns *NameSet) UnlinkHistory() {
	ns.history = ns.history.clone()
}
