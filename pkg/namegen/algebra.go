package namegen

import (
	"log/slog"
	"reflect"
)

// NameSource is an algebra operand: anything that can provide an ordered
// multiset of names. *NameSet satisfies it, and NameList adapts a plain
// slice.
type NameSource interface {
	Names() []string
}

// NameList adapts a []string for use as an algebra operand. Order and
// duplicates are preserved, like any training multiset.
type NameList []string

// Names returns a copy of the list.
func (l NameList) Names() []string {
	return append([]string(nil), l...)
}

// Combine returns a new NameSet holding every occurrence from both
// operands, ns's names first. The result keeps ns's order and length
// function and starts with an empty, unlinked history.
func (ns *NameSet) Combine(other NameSource) *NameSet {
	result := ns.Copy()
	result.history = newHistory()
	result.CombineInPlace(other)
	return result
}

// CombineInPlace appends every occurrence of other's names to ns. When
// other is a NameSet of the same order its model entries are merged
// directly; a differing order is logged and other's transitions are
// re-derived at ns's order. ns's history and linkage are untouched.
func (ns *NameSet) CombineInPlace(other NameSource) {
	otherNames := other.Names()
	var src *Model
	if o, ok := other.(*NameSet); ok {
		ns.warnMismatch("combine", o)
		if o.order == ns.order {
			src = o.model
		}
	}
	if src == nil {
		src = newModel(otherNames, ns.order)
	}
	ns.model.merge(src)
	ns.names = append(ns.names, otherNames...)
	for _, name := range otherNames {
		ns.counts[name]++
		ns.sumLen += ns.lengthFn(name)
	}
}

// Subtract returns a new NameSet with other's occurrences removed from
// ns's: each name keeps max(0, count(ns) - count(other)) occurrences. The
// result keeps ns's order and length function and starts with an empty,
// unlinked history.
func (ns *NameSet) Subtract(other NameSource) *NameSet {
	result := ns.Copy()
	result.history = newHistory()
	result.SubtractInPlace(other)
	return result
}

// SubtractInPlace removes one occurrence from ns, the earliest, for each
// occurrence of a name in other. Names absent from ns are ignored. ns's
// history and linkage are untouched.
func (ns *NameSet) SubtractInPlace(other NameSource) {
	if o, ok := other.(*NameSet); ok {
		ns.warnMismatch("subtract", o)
	}
	for _, name := range other.Names() {
		if ns.counts[name] > 0 {
			_ = ns.Remove(name)
		}
	}
}

// Union returns a new NameSet where every name present in either operand
// occurs exactly once. The result keeps ns's order and length function and
// starts with an empty, unlinked history.
func (ns *NameSet) Union(other NameSource) *NameSet {
	result := ns.Copy()
	result.history = newHistory()
	result.UnionInPlace(other)
	return result
}

// UnionInPlace appends other's names that ns lacks, then collapses every
// multiplicity to one, keeping first occurrences. ns's history and linkage
// are untouched.
func (ns *NameSet) UnionInPlace(other NameSource) {
	if o, ok := other.(*NameSet); ok {
		ns.warnMismatch("union", o)
	}
	var fresh []string
	for _, name := range other.Names() {
		if ns.counts[name] == 0 {
			fresh = append(fresh, name)
		}
	}
	ns.CombineInPlace(NameList(fresh))
	ns.RemoveDuplicates()
}

// Intersect returns a new NameSet keeping each name's shared occurrences:
// min(count(ns), count(other)). The result keeps ns's order and length
// function and starts with an empty, unlinked history.
func (ns *NameSet) Intersect(other NameSource) *NameSet {
	result := ns.Copy()
	result.history = newHistory()
	result.IntersectInPlace(other)
	return result
}

// IntersectInPlace walks ns's names in order, keeping each occurrence only
// while other still has an unconsumed occurrence of that name, then
// rebuilds the model. ns's history and linkage are untouched.
func (ns *NameSet) IntersectInPlace(other NameSource) {
	if o, ok := other.(*NameSet); ok {
		ns.warnMismatch("intersect", o)
	}
	budget := make(map[string]int)
	for _, name := range other.Names() {
		budget[name]++
	}
	kept := make([]string, 0, len(ns.names))
	for _, name := range ns.names {
		if budget[name] > 0 {
			budget[name]--
			kept = append(kept, name)
		}
	}
	ns.names = kept
	ns.rebuild()
}

// warnMismatch logs the recoverable operand mismatches. The left operand's
// settings always win.
func (ns *NameSet) warnMismatch(op string, other *NameSet) {
	if other.order != ns.order {
		ns.logger.Warn("Operand order mismatch, keeping left order",
			slog.String("op", op),
			slog.Int("left_order", ns.order),
			slog.Int("right_order", other.order),
		)
	}
	if !sameLengthFunc(ns.lengthFn, other.lengthFn) {
		ns.logger.Warn("Operand length function mismatch, keeping left function",
			slog.String("op", op),
		)
	}
}

// sameLengthFunc compares length functions by code pointer. Distinct
// closures compare unequal even when behaviorally identical.
func sameLengthFunc(a, b LengthFunc) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
