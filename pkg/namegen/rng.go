package namegen

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// RNG is the randomness capability generation draws from. Implementations
// must return a uniform value in [0, n) for n > 0; *math/rand/v2.Rand
// satisfies the interface directly.
type RNG interface {
	IntN(n int) int
}

// lockedRNG serializes access to an unshared rand.Rand so the package
// default stays safe when linked sets generate from several goroutines.
type lockedRNG struct {
	mu  sync.Mutex
	src *rand.Rand
}

func (l *lockedRNG) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

var rngState = struct {
	mu sync.RWMutex
	r  RNG
}{r: newSeededRNG()}

// newSeededRNG builds a PCG source seeded from crypto/rand, so the package
// default never shares state with the process-global math/rand source.
func newSeededRNG() RNG {
	var seed [16]byte
	_, _ = crand.Read(seed[:])
	s1 := binary.LittleEndian.Uint64(seed[:8])
	s2 := binary.LittleEndian.Uint64(seed[8:])
	return &lockedRNG{src: rand.New(rand.NewPCG(s1, s2))}
}

// SetRNG replaces the process-wide randomness source used when no WithRNG
// option is given. Passing nil restores a freshly seeded default. A custom
// source is responsible for its own thread safety if generation happens
// concurrently.
func SetRNG(r RNG) {
	rngState.mu.Lock()
	defer rngState.mu.Unlock()
	if r == nil {
		rngState.r = newSeededRNG()
		return
	}
	rngState.r = r
}

// CurrentRNG returns the process-wide randomness source.
func CurrentRNG() RNG {
	rngState.mu.RLock()
	defer rngState.mu.RUnlock()
	return rngState.r
}
