package namegen

import "errors"

// Terminator is the distinguished successor symbol meaning "the name ends
// here". It shares model entries with ordinary runes and can never collide
// with one, since negative values do not occur in decoded text.
const Terminator rune = -1

var (
	// ErrInvalidOrder is returned when a model or name set is created with,
	// or changed to, an order below 1.
	ErrInvalidOrder = errors.New("order must be at least 1")
	// ErrNoTrainingData is returned when a model or name set is created from
	// an empty multiset.
	ErrNoTrainingData = errors.New("training data is empty")
)

// Model maps a context of 0..order trailing runes to the ordered list of
// successor symbols observed after that context in the training data. Every
// context length from 0 up to the order gets its own keys, so a walk that
// starts from nothing always finds an entry. Entry lists preserve training
// order and keep duplicates; selection draws position-uniformly over the
// list, which makes repeated transitions proportionally more likely.
type Model struct {
	order  int
	chains map[string][]rune
}

// NewModel builds a model of the given order from the names. The order must
// be at least 1 and the multiset must not be empty; generating from an empty
// model is reported here, at construction, rather than during a walk.
func NewModel(names []string, order int) (*Model, error) {
	if order < 1 {
		return nil, ErrInvalidOrder
	}
	if len(names) == 0 {
		return nil, ErrNoTrainingData
	}
	return newModel(names, order), nil
}

// newModel builds without the construction guards, for internal callers
// that may legitimately hold an empty multiset (set algebra results).
func newModel(names []string, order int) *Model {
	m := &Model{order: order, chains: make(map[string][]rune)}
	for _, name := range names {
		m.add(name)
	}
	return m
}

// Order returns the model's order.
func (m *Model) Order() int {
	return m.order
}

// Contexts returns the number of distinct context keys in the model.
func (m *Model) Contexts() int {
	return len(m.chains)
}

// Successors returns a copy of the successor list for the given context, or
// nil if the context never occurs in the training data. The list holds
// single runes and possibly Terminator entries.
func (m *Model) Successors(context string) []rune {
	list, ok := m.chains[context]
	if !ok {
		return nil
	}
	out := make([]rune, len(list))
	copy(out, list)
	return out
}

// Walk draws one raw candidate name. Starting from the empty context it
// repeatedly draws a successor for the trailing min(order, built) runes of
// the name so far, stopping at a Terminator. A context without an entry
// also ends the walk; that cannot happen for a model built from a non-empty
// multiset, and an empty model yields "" immediately.
func (m *Model) Walk(rng RNG) string {
	var name, ctx []rune
	for {
		list := m.chains[string(ctx)]
		if len(list) == 0 {
			break
		}
		next := list[rng.IntN(len(list))]
		if next == Terminator {
			break
		}
		name = append(name, next)
		ctx = append(ctx, next)
		if len(ctx) > m.order {
			ctx = ctx[1:]
		}
	}
	return string(name)
}

// add appends one name's transitions: for every rune position, the trailing
// context of up to order runes gains the rune as a successor, and the final
// context gains a Terminator.
func (m *Model) add(name string) {
	var ctx []rune
	for _, r := range name {
		key := string(ctx)
		m.chains[key] = append(m.chains[key], r)
		ctx = append(ctx, r)
		if len(ctx) > m.order {
			ctx = ctx[1:]
		}
	}
	key := string(ctx)
	m.chains[key] = append(m.chains[key], Terminator)
}

// remove deletes one occurrence of each of one name's transitions, dropping
// context keys whose lists empty out. The caller guarantees the name was
// previously added.
func (m *Model) remove(name string) {
	var ctx []rune
	for _, r := range name {
		m.removeSymbol(string(ctx), r)
		ctx = append(ctx, r)
		if len(ctx) > m.order {
			ctx = ctx[1:]
		}
	}
	m.removeSymbol(string(ctx), Terminator)
}

func (m *Model) removeSymbol(key string, symbol rune) {
	list := m.chains[key]
	for i, r := range list {
		if r == symbol {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(m.chains, key)
		return
	}
	m.chains[key] = list
}

// merge concatenates another model's entries into this one. Both models
// must have the same order.
func (m *Model) merge(other *Model) {
	for key, list := range other.chains {
		m.chains[key] = append(m.chains[key], list...)
	}
}

// clone deep-copies the model, including every entry list, so the clone
// never aliases the original's chains.
func (m *Model) clone() *Model {
	chains := make(map[string][]rune, len(m.chains))
	for key, list := range m.chains {
		cp := make([]rune, len(list))
		copy(cp, list)
		chains[key] = cp
	}
	return &Model{order: m.order, chains: chains}
}
