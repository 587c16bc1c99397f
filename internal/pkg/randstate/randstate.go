// Package randstate provides the seeded random source shared by prime sampling,
// public exponent sampling and Miller-Rabin witness selection.
//
// A Source is deterministic: the same seed and the same sequence of draws
// always yields the same values, which keeps key generation reproducible in tests.
package randstate

import (
	"errors"
	"math/big"
	"math/rand/v2"
	"sync"
)

// ErrCleared is the panic value raised when a Source is used after Clear.
var ErrCleared = errors.New("randstate: source used after Clear")

// pcgIncrement is mixed into the second PCG word so that seed 0 still yields a usable stream.
const pcgIncrement = 0x9e3779b97f4a7c15

// Source is a seeded generator of uniform random integers.
// It is safe for concurrent use.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New initializes a Source from a 64-bit seed.
func New(seed uint64) *Source {
	return &Source{
		rng: rand.New(rand.NewPCG(seed, seed^pcgIncrement)),
	}
}

// Clear tears the Source down. Draws after Clear panic.
func (s *Source) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = nil
}

// Bits returns a uniform random integer in [0, 2^n).
func (s *Source) Bits(n uint) *big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bitsLocked(n)
}

// Below returns a uniform random integer in [0, n). It panics if n <= 0.
func (s *Source) Below(n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		panic("randstate: Below called with non-positive bound")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bits := uint(n.BitLen())
	for {
		x := s.bitsLocked(bits)
		if x.Cmp(n) < 0 {
			return x
		}
	}
}

// Uint64n returns a uniform random integer in [0, n). It panics if n == 0.
func (s *Source) Uint64n(n uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLive()
	return s.rng.Uint64N(n)
}

func (s *Source) bitsLocked(n uint) *big.Int {
	s.ensureLive()
	if n == 0 {
		return new(big.Int)
	}

	buf := make([]byte, (n+7)/8)
	for i := 0; i < len(buf); i += 8 {
		word := s.rng.Uint64()
		for j := 0; j < 8 && i+j < len(buf); j++ {
			buf[i+j] = byte(word >> (8 * j))
		}
	}

	// buf is big-endian; drop the excess high bits of the leading byte
	if excess := uint(len(buf))*8 - n; excess > 0 {
		buf[0] &= 0xFF >> excess
	}
	return new(big.Int).SetBytes(buf)
}

func (s *Source) ensureLive() {
	if s.rng == nil {
		panic(ErrCleared)
	}
}
