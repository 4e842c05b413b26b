package namegen

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// DefaultOrder is the Markov order used when callers have no reason to pick
// another one. Three trailing runes keep most corpora pronounceable without
// reproducing whole training names.
const DefaultOrder = 3

// ErrNameNotFound is returned by Remove when the name has no occurrence in
// the training multiset.
var ErrNameNotFound = errors.New("name is not in the training data")

// NameSet couples a training multiset with the model derived from it, the
// length function used to rank candidates, and the history of names it has
// produced. The model is rebuilt or updated by every mutation, so it is
// always consistent with the current multiset and order.
//
// A NameSet is not safe for concurrent use. The process RNG, the banned-word
// registry, and each shared history carry their own locks, so distinct sets
// may generate concurrently; using one set from several goroutines needs
// external coordination.
type NameSet struct {
	names    []string
	counts   map[string]int
	order    int
	lengthFn LengthFunc
	sumLen   float64
	model    *Model
	history  *History
	logger   *slog.Logger
}

// New builds a NameSet from a copy of names. The order must be at least 1
// and names must not be empty; a nil lengthFn selects RuneCount.
func New(names []string, order int, lengthFn LengthFunc) (*NameSet, error) {
	if order < 1 {
		return nil, fmt.Errorf("cannot build a name set with order %d: %w", order, ErrInvalidOrder)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("cannot build a name set: %w", ErrNoTrainingData)
	}
	return newNameSet(append([]string(nil), names...), order, lengthFn, nil), nil
}

// newNameSet wires a set around the given backing slice, taking ownership
// of it. Internal callers may pass an empty slice; generation against an
// empty set returns the failure sentinel.
func newNameSet(names []string, order int, lengthFn LengthFunc, logger *slog.Logger) *NameSet {
	if lengthFn == nil {
		lengthFn = RuneCount
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ns := &NameSet{
		names:    names,
		counts:   make(map[string]int, len(names)),
		order:    order,
		lengthFn: lengthFn,
		model:    newModel(names, order),
		history:  newHistory(),
		logger:   logger,
	}
	for _, name := range names {
		ns.counts[name]++
		ns.sumLen += lengthFn(name)
	}
	return ns
}

// SetLogger sets the logger used for operand mismatch warnings. By default,
// all logs are discarded.
func (ns *NameSet) SetLogger(logger *slog.Logger) {
	if logger != nil {
		ns.logger = logger
	}
}

func (ns *NameSet) String() string {
	return fmt.Sprintf("NameSet(%d names, order %d)", len(ns.names), ns.order)
}

// Names returns a copy of the training multiset in insertion order,
// duplicates included.
func (ns *NameSet) Names() []string {
	return append([]string(nil), ns.names...)
}

// Len returns the total number of training names, duplicates included.
func (ns *NameSet) Len() int {
	return len(ns.names)
}

// Count returns the multiplicity of name in the training multiset.
func (ns *NameSet) Count(name string) int {
	return ns.counts[name]
}

// Contains reports whether name occurs in the training multiset.
func (ns *NameSet) Contains(name string) bool {
	return ns.counts[name] > 0
}

// Order returns the Markov order, the number of trailing runes used as
// context.
func (ns *NameSet) Order() int {
	return ns.order
}

// MeanLength returns the average of the length function over the training
// multiset, or 0 for an empty set.
func (ns *NameSet) MeanLength() float64 {
	if len(ns.names) == 0 {
		return 0
	}
	return ns.sumLen / float64(len(ns.names))
}

// Append adds name to the training multiset whether or not it is already
// present, updating the model incrementally.
func (ns *NameSet) Append(name string) {
	ns.names = append(ns.names, name)
	ns.counts[name]++
	ns.sumLen += ns.lengthFn(name)
	ns.model.add(name)
}

// Add adds name only if it has no occurrence yet, reporting whether it was
// added.
func (ns *NameSet) Add(name string) bool {
	if ns.counts[name] > 0 {
		return false
	}
	ns.Append(name)
	return true
}

// Remove deletes the earliest occurrence of name, updating the model
// incrementally. It returns ErrNameNotFound if the name is not present.
func (ns *NameSet) Remove(name string) error {
	if ns.counts[name] == 0 {
		return fmt.Errorf("cannot remove %q: %w", name, ErrNameNotFound)
	}
	for i, n := range ns.names {
		if n == name {
			ns.names = append(ns.names[:i], ns.names[i+1:]...)
			break
		}
	}
	ns.counts[name]--
	if ns.counts[name] == 0 {
		delete(ns.counts, name)
	}
	ns.sumLen -= ns.lengthFn(name)
	ns.model.remove(name)
	return nil
}

// RemoveDuplicates collapses the multiset to at most one occurrence per
// name, keeping first occurrences, and rebuilds the model if anything was
// dropped.
func (ns *NameSet) RemoveDuplicates() {
	seen := make(map[string]struct{}, len(ns.counts))
	kept := make([]string, 0, len(ns.counts))
	for _, name := range ns.names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		kept = append(kept, name)
	}
	if len(kept) == len(ns.names) {
		return
	}
	ns.names = kept
	ns.rebuild()
}

// ChangeOrder sets a new order and rebuilds the model. Orders below 1
// return ErrInvalidOrder.
func (ns *NameSet) ChangeOrder(order int) error {
	if order < 1 {
		return fmt.Errorf("cannot change to order %d: %w", order, ErrInvalidOrder)
	}
	if order == ns.order {
		return nil
	}
	ns.order = order
	ns.model = newModel(ns.names, order)
	return nil
}

// SetLengthFunc replaces the length function and recomputes the cached
// training mean under it. A nil value selects RuneCount. The model does not
// depend on the length function, so it is untouched.
func (ns *NameSet) SetLengthFunc(f LengthFunc) {
	if f == nil {
		f = RuneCount
	}
	ns.lengthFn = f
	ns.sumLen = 0
	for _, name := range ns.names {
		ns.sumLen += f(name)
	}
}

// Copy returns a deep copy: the multiset, the model, and the history are
// all duplicated, so no mutation of either set reaches the other. The
// copy's history holds the same names but is never linked, exactly as if
// UnlinkHistory had been called on it.
func (ns *NameSet) Copy() *NameSet {
	cp := &NameSet{
		names:    append([]string(nil), ns.names...),
		counts:   make(map[string]int, len(ns.counts)),
		order:    ns.order,
		lengthFn: ns.lengthFn,
		sumLen:   ns.sumLen,
		model:    ns.model.clone(),
		history:  ns.history.clone(),
		logger:   ns.logger,
	}
	for name, c := range ns.counts {
		cp.counts[name] = c
	}
	return cp
}

// rebuild recomputes the counts, the cached length sum, and the model from
// the current names slice.
func (ns *NameSet) rebuild() {
	ns.counts = make(map[string]int, len(ns.names))
	ns.sumLen = 0
	for _, name := range ns.names {
		ns.counts[name]++
		ns.sumLen += ns.lengthFn(name)
	}
	ns.model = newModel(ns.names, ns.order)
}
