package namegen

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

// fixtureNames returns the small corpus used throughout the model tests.
func fixtureNames() []string {
	return []string{"John", "Joey", "Joseph"}
}

// newTestSet builds a NameSet or fails the test.
func newTestSet(t *testing.T, names []string, order int) *NameSet {
	t.Helper()
	ns, err := New(names, order, nil)
	if err != nil {
		t.Fatalf("New(%v, %d) error = %v", names, order, err)
	}
	return ns
}

// seededRNG returns a deterministic source. Tests that assert on generated
// output must route randomness through this instead of the package default.
func seededRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// scriptedRNG replays a fixed sequence of draw values, then returns 0
// forever. Draws outside [0, n) are clamped so a script can never panic.
type scriptedRNG struct {
	draws []int
	pos   int
}

func (r *scriptedRNG) IntN(n int) int {
	if r.pos >= len(r.draws) {
		return 0
	}
	v := r.draws[r.pos]
	r.pos++
	if v >= n {
		v = n - 1
	}
	return v
}

// resetBannedWords empties the process-wide registry after a test that
// populated it.
func resetBannedWords(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { SetBannedWords(nil) })
}

// benchmarkNames synthesizes a corpus large enough for stable benchmark
// numbers without shipping data files.
func benchmarkNames() []string {
	syllables := []string{"ka", "ri", "ta", "lon", "mir", "ved", "sa", "the", "or", "ban"}
	names := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		a := syllables[i%len(syllables)]
		b := syllables[(i/len(syllables))%len(syllables)]
		c := syllables[(i*7)%len(syllables)]
		names = append(names, fmt.Sprintf("%s%s%s", a, b, c))
	}
	return names
}
