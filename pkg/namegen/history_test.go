package namegen

import "testing"

// containsName reports whether the sorted history snapshot holds name.
func containsName(history []string, name string) bool {
	for _, n := range history {
		if n == name {
			return true
		}
	}
	return false
}

func TestAddAndClearHistory(t *testing.T) {
	ns := newTestSet(t, fixtureNames(), 2)

	ns.AddToHistory("Jory", "Jocel")
	if got := ns.HistoryLen(); got != 2 {
		t.Errorf("HistoryLen() = %d, want 2", got)
	}
	if got := ns.History(); !containsName(got, "Jory") || !containsName(got, "Jocel") {
		t.Errorf("History() = %v, missing added names", got)
	}

	ns.ClearHistory()
	if got := ns.HistoryLen(); got != 0 {
		t.Errorf("HistoryLen() after ClearHistory = %d, want 0", got)
	}
}

func TestLinkHistoriesSharesAdditions(t *testing.T) {
	a := newTestSet(t, fixtureNames(), 2)
	// The only walk b's model allows is "ab", so one excluded name is a
	// guaranteed exhaustion.
	b := newTestSet(t, []string{"ab"}, 1)

	a.LinkHistories(b)
	a.AddToHistory("ab")

	if !containsName(b.History(), "ab") {
		t.Fatalf("b.History() = %v, want the name a recorded", b.History())
	}
	got := b.MakeName(WithRNG(seededRNG(1)), WithTrainingExclusion(false), WithMaxAttempts(20))
	if got != "" {
		t.Errorf("b.MakeName() = %q, want \"\" once its only output is in the shared history", got)
	}
}

func TestLinkHistoriesMergesPriorContents(t *testing.T) {
	a := newTestSet(t, fixtureNames(), 2)
	b := newTestSet(t, fixtureNames(), 2)
	c := newTestSet(t, fixtureNames(), 2)
	a.AddToHistory("one")
	b.AddToHistory("two")
	c.AddToHistory("three")

	a.LinkHistories(b, c)

	for _, ns := range []*NameSet{a, b, c} {
		h := ns.History()
		for _, want := range []string{"one", "two", "three"} {
			if !containsName(h, want) {
				t.Errorf("history after link = %v, missing %q", h, want)
			}
		}
	}
	if a.history != b.history || b.history != c.history {
		t.Error("linked sets do not share one history instance")
	}
}

func TestLinkBreaksPriorLinkage(t *testing.T) {
	a := newTestSet(t, fixtureNames(), 2)
	b := newTestSet(t, fixtureNames(), 2)
	c := newTestSet(t, fixtureNames(), 2)

	a.LinkHistories(b)
	a.LinkHistories(c)

	if a.history != c.history {
		t.Error("a and c do not share a history after the second link")
	}
	if b.history == a.history {
		t.Error("b still shares a's history; re-linking must rebind only the named sets")
	}

	a.AddToHistory("fresh")
	if containsName(b.History(), "fresh") {
		t.Errorf("b.History() = %v, must not see additions after the link was broken", b.History())
	}
}

func TestUnlinkHistory(t *testing.T) {
	a := newTestSet(t, fixtureNames(), 2)
	b := newTestSet(t, fixtureNames(), 2)
	c := newTestSet(t, fixtureNames(), 2)
	a.LinkHistories(b, c)
	a.AddToHistory("shared")

	b.UnlinkHistory()

	if !containsName(b.History(), "shared") {
		t.Errorf("b.History() = %v, want a snapshot of the shared contents", b.History())
	}

	a.AddToHistory("after")
	if containsName(b.History(), "after") {
		t.Error("b sees additions made after it unlinked")
	}
	if !containsName(c.History(), "after") {
		t.Error("c no longer shares a's history; unlink must not touch other members")
	}

	b.AddToHistory("private")
	if containsName(a.History(), "private") {
		t.Error("a sees additions to b's private history")
	}
}

func TestSharedHistoryClearIsVisible(t *testing.T) {
	a := newTestSet(t, fixtureNames(), 2)
	b := newTestSet(t, fixtureNames(), 2)
	a.LinkHistories(b)
	b.AddToHistory("x")

	a.ClearHistory()
	if got := b.HistoryLen(); got != 0 {
		t.Errorf("b.HistoryLen() = %d after a cleared the shared history, want 0", got)
	}
}
