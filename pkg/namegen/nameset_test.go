package namegen

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewErrors(t *testing.T) {
	if _, err := New(fixtureNames(), 0, nil); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("New(order 0) error = %v, want ErrInvalidOrder", err)
	}
	if _, err := New(nil, 2, nil); !errors.Is(err, ErrNoTrainingData) {
		t.Errorf("New(empty) error = %v, want ErrNoTrainingData", err)
	}
}

func TestNewCopiesInput(t *testing.T) {
	names := []string{"John", "Joey"}
	ns := newTestSet(t, names, 2)
	names[0] = "mutated"
	if got := ns.Names()[0]; got != "John" {
		t.Errorf("Names()[0] = %q, the set aliases the caller's slice", got)
	}
}

func TestAppendAndAdd(t *testing.T) {
	ns := newTestSet(t, []string{"Ann"}, 2)

	ns.Append("Ann")
	if got := ns.Count("Ann"); got != 2 {
		t.Errorf("Count(Ann) after Append = %d, want 2", got)
	}

	if ns.Add("Ann") {
		t.Error("Add() of a present name reported true")
	}
	if !ns.Add("Bea") {
		t.Error("Add() of an absent name reported false")
	}
	if got, want := ns.Names(), []string{"Ann", "Ann", "Bea"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	assertSameChains(t, ns.model, newModel(ns.names, 2))
}

func TestRemove(t *testing.T) {
	ns := newTestSet(t, []string{"Ann", "Bea", "Ann"}, 2)

	if err := ns.Remove("Ann"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if got, want := ns.Names(), []string{"Bea", "Ann"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want the earliest occurrence removed: %v", got, want)
	}
	assertSameChains(t, ns.model, newModel(ns.names, 2))

	if err := ns.Remove("Cleo"); !errors.Is(err, ErrNameNotFound) {
		t.Errorf("Remove(absent) error = %v, want ErrNameNotFound", err)
	}
}

func TestRemoveDuplicates(t *testing.T) {
	ns := newTestSet(t, []string{"Ann", "Bea", "Ann", "Cleo", "Bea"}, 2)
	ns.RemoveDuplicates()
	if got, want := ns.Names(), []string{"Ann", "Bea", "Cleo"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want first occurrences %v", got, want)
	}
	assertSameChains(t, ns.model, newModel(ns.names, 2))
}

func TestChangeOrder(t *testing.T) {
	ns := newTestSet(t, fixtureNames(), 2)
	if err := ns.ChangeOrder(0); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("ChangeOrder(0) error = %v, want ErrInvalidOrder", err)
	}
	if err := ns.ChangeOrder(1); err != nil {
		t.Fatalf("ChangeOrder(1) error = %v", err)
	}
	if got := ns.Order(); got != 1 {
		t.Errorf("Order() = %d, want 1", got)
	}
	assertSameChains(t, ns.model, newModel(ns.names, 1))
}

func TestSetLengthFunc(t *testing.T) {
	ns := newTestSet(t, []string{"ab", "abcd"}, 1)
	if got := ns.MeanLength(); got != 3 {
		t.Fatalf("MeanLength() = %v, want 3 under RuneCount", got)
	}

	ns.SetLengthFunc(func(string) float64 { return 7 })
	if got := ns.MeanLength(); got != 7 {
		t.Errorf("MeanLength() = %v, want 7 under the constant function", got)
	}

	ns.SetLengthFunc(nil)
	if got := ns.MeanLength(); got != 3 {
		t.Errorf("MeanLength() = %v, want RuneCount restored by nil", got)
	}
}

func TestMeanTracksMutations(t *testing.T) {
	ns := newTestSet(t, []string{"ab", "abcd"}, 1)
	ns.Append("abcdef")
	if got := ns.MeanLength(); got != 4 {
		t.Errorf("MeanLength() = %v, want 4 after Append", got)
	}
	if err := ns.Remove("ab"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if got := ns.MeanLength(); got != 5 {
		t.Errorf("MeanLength() = %v, want 5 after Remove", got)
	}
}

func TestCopyIsolation(t *testing.T) {
	ns := newTestSet(t, fixtureNames(), 2)
	ns.AddToHistory("past")

	cp := ns.Copy()
	if !containsName(cp.History(), "past") {
		t.Error("Copy() lost the history snapshot")
	}

	cp.Append("Jonas")
	cp.AddToHistory("new")
	if ns.Contains("Jonas") {
		t.Error("mutating the copy's multiset reached the original")
	}
	if containsName(ns.History(), "new") {
		t.Error("mutating the copy's history reached the original")
	}
	assertSameChains(t, ns.model, newModel(fixtureNames(), 2))
}

func TestStats(t *testing.T) {
	ns := newTestSet(t, []string{"Ann", "Ann", "Bea"}, 2)
	ns.AddToHistory("Ano")

	got := ns.Stats()
	if got.TrainingNames != 3 {
		t.Errorf("TrainingNames = %d, want 3", got.TrainingNames)
	}
	if got.UniqueNames != 2 {
		t.Errorf("UniqueNames = %d, want 2", got.UniqueNames)
	}
	if got.Order != 2 {
		t.Errorf("Order = %d, want 2", got.Order)
	}
	if got.Contexts != ns.model.Contexts() {
		t.Errorf("Contexts = %d, want %d", got.Contexts, ns.model.Contexts())
	}
	if got.HistorySize != 1 {
		t.Errorf("HistorySize = %d, want 1", got.HistorySize)
	}
	if got.MeanLength != 3 {
		t.Errorf("MeanLength = %v, want 3", got.MeanLength)
	}
}
