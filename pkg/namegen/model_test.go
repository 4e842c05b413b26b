package namegen

import (
	"errors"
	"sort"
	"testing"
)

func TestNewModelErrors(t *testing.T) {
	if _, err := NewModel(fixtureNames(), 0); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("NewModel(order 0) error = %v, want ErrInvalidOrder", err)
	}
	if _, err := NewModel(fixtureNames(), -3); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("NewModel(order -3) error = %v, want ErrInvalidOrder", err)
	}
	if _, err := NewModel(nil, 2); !errors.Is(err, ErrNoTrainingData) {
		t.Errorf("NewModel(empty) error = %v, want ErrNoTrainingData", err)
	}
}

func TestEmptyContextSize(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		order int
	}{
		{"fixture order 1", fixtureNames(), 1},
		{"fixture order 2", fixtureNames(), 2},
		{"fixture order 5", fixtureNames(), 5},
		{"duplicates", []string{"Ann", "Ann", "Ann", "Bea"}, 2},
		{"single", []string{"Zoe"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewModel(tt.names, tt.order)
			if err != nil {
				t.Fatalf("NewModel() error = %v", err)
			}
			if got := len(m.Successors("")); got != len(tt.names) {
				t.Errorf("len(Successors(\"\")) = %d, want %d (multiset size)", got, len(tt.names))
			}
		})
	}
}

func TestModelFixture(t *testing.T) {
	m, err := NewModel(fixtureNames(), 2)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	root := m.Successors("")
	if len(root) != 3 {
		t.Fatalf("Successors(\"\") = %v, want three entries", root)
	}
	for _, r := range root {
		if r != 'J' {
			t.Errorf("Successors(\"\") contains %q, want all 'J'", r)
		}
	}

	jo := m.Successors("Jo")
	want := []rune{'e', 'h', 's'}
	sort.Slice(jo, func(i, j int) bool { return jo[i] < jo[j] })
	if len(jo) != len(want) {
		t.Fatalf("Successors(\"Jo\") = %v, want %v", jo, want)
	}
	for i, r := range want {
		if jo[i] != r {
			t.Errorf("Successors(\"Jo\") sorted = %v, want %v", jo, want)
			break
		}
	}

	for _, ctx := range []string{"hn", "ey", "ph"} {
		succ := m.Successors(ctx)
		if len(succ) != 1 || succ[0] != Terminator {
			t.Errorf("Successors(%q) = %v, want [Terminator]", ctx, succ)
		}
	}
}

func TestSuccessorsUnknownContext(t *testing.T) {
	m, err := NewModel(fixtureNames(), 2)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	if got := m.Successors("zz"); got != nil {
		t.Errorf("Successors(\"zz\") = %v, want nil", got)
	}
}

// scriptFor computes the draw sequence that makes Walk reproduce name
// exactly, by locating each of the name's runes (and the final Terminator)
// in the successor list of its context.
func scriptFor(t *testing.T, m *Model, name string) []int {
	t.Helper()
	var draws []int
	var ctx []rune
	pick := func(key string, symbol rune) {
		list := m.Successors(key)
		for i, r := range list {
			if r == symbol {
				draws = append(draws, i)
				return
			}
		}
		t.Fatalf("context %q has no successor %q in %v", key, symbol, list)
	}
	for _, r := range name {
		pick(string(ctx), r)
		ctx = append(ctx, r)
		if len(ctx) > m.Order() {
			ctx = ctx[1:]
		}
	}
	pick(string(ctx), Terminator)
	return draws
}

func TestWalkReconstructsTraining(t *testing.T) {
	for _, order := range []int{1, 2, 4} {
		m, err := NewModel(fixtureNames(), order)
		if err != nil {
			t.Fatalf("NewModel() error = %v", err)
		}
		for _, name := range fixtureNames() {
			rng := &scriptedRNG{draws: scriptFor(t, m, name)}
			if got := m.Walk(rng); got != name {
				t.Errorf("order %d: scripted Walk() = %q, want %q", order, got, name)
			}
		}
	}
}

func TestWalkEmptyModel(t *testing.T) {
	m := newModel(nil, 2)
	if got := m.Walk(&scriptedRNG{}); got != "" {
		t.Errorf("Walk() on empty model = %q, want \"\"", got)
	}
}

func TestWalkMultiByte(t *testing.T) {
	m, err := NewModel([]string{"Åse", "Åsa"}, 2)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	rng := &scriptedRNG{draws: scriptFor(t, m, "Åse")}
	if got := m.Walk(rng); got != "Åse" {
		t.Errorf("scripted Walk() = %q, want %q", got, "Åse")
	}
}

// assertSameChains compares two models as multisets per context key,
// ignoring within-key ordering.
func assertSameChains(t *testing.T, got, want *Model) {
	t.Helper()
	if len(got.chains) != len(want.chains) {
		t.Fatalf("model has %d contexts, want %d", len(got.chains), len(want.chains))
	}
	for key, wantList := range want.chains {
		gotList := got.Successors(key)
		if gotList == nil {
			t.Errorf("model is missing context %q", key)
			continue
		}
		g := append([]rune(nil), gotList...)
		w := append([]rune(nil), wantList...)
		sort.Slice(g, func(i, j int) bool { return g[i] < g[j] })
		sort.Slice(w, func(i, j int) bool { return w[i] < w[j] })
		if len(g) != len(w) {
			t.Errorf("context %q has %d successors, want %d", key, len(g), len(w))
			continue
		}
		for i := range g {
			if g[i] != w[i] {
				t.Errorf("context %q successors = %v, want %v", key, g, w)
				break
			}
		}
	}
}

func TestModelIncrementalAddRemove(t *testing.T) {
	m := newModel([]string{"John", "Joey"}, 2)
	m.add("Joseph")
	assertSameChains(t, m, newModel(fixtureNames(), 2))

	m.remove("Joey")
	assertSameChains(t, m, newModel([]string{"John", "Joseph"}, 2))

	// Removing the last name drops every key it populated.
	m.remove("John")
	m.remove("Joseph")
	if m.Contexts() != 0 {
		t.Errorf("Contexts() after removing everything = %d, want 0", m.Contexts())
	}
}

func BenchmarkNewModel(b *testing.B) {
	names := benchmarkNames()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		newModel(names, 3)
	}
}

func BenchmarkWalk(b *testing.B) {
	m := newModel(benchmarkNames(), 3)
	rng := seededRNG(1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Walk(rng)
	}
}
