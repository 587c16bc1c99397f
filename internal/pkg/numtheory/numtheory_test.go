//go:build unit
// +build unit

package numtheory

import (
	"math/big"
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/randstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIterations = 50

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{0, 0, 0},
		{0, 9, 9},
		{9, 0, 9},
		{12, 18, 6},
		{17, 5, 1},
		{270, 192, 6},
		{1071, 462, 21},
	}

	for _, tt := range tests {
		got := GCD(big.NewInt(tt.a), big.NewInt(tt.b))
		assert.Equal(t, tt.want, got.Int64(), "gcd(%d, %d)", tt.a, tt.b)
	}
}

func TestGCD_DoesNotMutateArguments(t *testing.T) {
	a, b := big.NewInt(48), big.NewInt(36)
	GCD(a, b)
	assert.Equal(t, int64(48), a.Int64())
	assert.Equal(t, int64(36), b.Int64())
}

func TestModInverse_Coprime(t *testing.T) {
	tests := []struct{ a, n int64 }{
		{3, 11},
		{10, 17},
		{7, 40},
		{17, 3120},
		{65537, 3233 * 1000},
		{1, 2},
		{123, 4567},
	}

	for _, tt := range tests {
		a, n := big.NewInt(tt.a), big.NewInt(tt.n)
		inv := ModInverse(a, n)

		require.GreaterOrEqual(t, inv.Sign(), 0)
		require.Negative(t, inv.Cmp(n))

		product := new(big.Int).Mul(a, inv)
		product.Mod(product, n)
		assert.Equal(t, int64(1), product.Int64(), "(%d * inverse) mod %d", tt.a, tt.n)
	}
}

func TestModInverse_NotInvertible(t *testing.T) {
	tests := []struct{ a, n int64 }{
		{2, 4},
		{6, 9},
		{0, 7},
		{15, 25},
	}

	for _, tt := range tests {
		inv := ModInverse(big.NewInt(tt.a), big.NewInt(tt.n))
		assert.Equal(t, 0, inv.Sign(), "inverse of %d mod %d", tt.a, tt.n)
	}
}

func TestModInverse_MatchesStandardLibrary(t *testing.T) {
	rs := randstate.New(5)
	n := new(big.Int).SetUint64(1_000_000_007)
	for i := 0; i < 100; i++ {
		a := rs.Below(n)
		if a.Sign() == 0 {
			continue
		}
		want := new(big.Int).ModInverse(a, n)
		assert.Equal(t, 0, want.Cmp(ModInverse(a, n)))
	}
}

func TestPowMod(t *testing.T) {
	tests := []struct {
		base, exponent, modulus, want int64
	}{
		{4, 13, 497, 445},
		{2, 10, 1000, 24},
		{7, 0, 13, 1},
		{0, 0, 13, 1},
		{0, 5, 13, 0},
		{5, 3, 1, 0},
		{5, 0, 1, 0},
		{123, 1, 7, 4},
		{20, 2, 7, 1},
	}

	for _, tt := range tests {
		got := PowMod(big.NewInt(tt.base), big.NewInt(tt.exponent), big.NewInt(tt.modulus))
		assert.Equal(t, tt.want, got.Int64(), "%d^%d mod %d", tt.base, tt.exponent, tt.modulus)
	}
}

func TestPowMod_MatchesStandardLibrary(t *testing.T) {
	rs := randstate.New(11)
	for i := 0; i < 50; i++ {
		base := rs.Bits(300)
		exponent := rs.Bits(200)
		modulus := rs.Bits(256)
		modulus.Add(modulus, big.NewInt(2))

		want := new(big.Int).Exp(base, exponent, modulus)
		assert.Equal(t, 0, want.Cmp(PowMod(base, exponent, modulus)))
	}
}

func TestPowMod_PanicsOnInvalidArguments(t *testing.T) {
	assert.Panics(t, func() { PowMod(big.NewInt(2), big.NewInt(3), big.NewInt(0)) })
	assert.Panics(t, func() { PowMod(big.NewInt(2), big.NewInt(3), big.NewInt(-5)) })
	assert.Panics(t, func() { PowMod(big.NewInt(2), big.NewInt(-1), big.NewInt(5)) })
}

func TestIsProbablePrime_SmallValues(t *testing.T) {
	rs := randstate.New(42)

	for _, n := range []int64{0, 1, 4} {
		assert.False(t, IsProbablePrime(big.NewInt(n), testIterations, rs), "n=%d", n)
	}
	for _, n := range []int64{2, 3} {
		assert.True(t, IsProbablePrime(big.NewInt(n), testIterations, rs), "n=%d", n)
	}
}

func TestIsProbablePrime_KnownPrimes(t *testing.T) {
	rs := randstate.New(42)
	for _, n := range []int64{5, 7, 11, 13, 97, 7919, 104729, 2147483647} {
		assert.True(t, IsProbablePrime(big.NewInt(n), testIterations, rs), "n=%d", n)
	}

	mersenne, ok := new(big.Int).SetString("170141183460469231731687303715884105727", 10)
	require.True(t, ok)
	assert.True(t, IsProbablePrime(mersenne, testIterations, rs))
}

func TestIsProbablePrime_KnownComposites(t *testing.T) {
	rs := randstate.New(42)
	for _, n := range []int64{9, 15, 221, 561, 1105, 1729, 7917, 1000000} {
		assert.False(t, IsProbablePrime(big.NewInt(n), testIterations, rs), "n=%d", n)
	}
	for _, n := range []int64{9, 15, 221} {
		assert.False(t, IsProbablePrime(big.NewInt(n), 5, rs), "n=%d with 5 iterations", n)
	}
}

func TestIsProbablePrime_AgreesWithStandardLibrary(t *testing.T) {
	rs := randstate.New(2024)
	for i := int64(0); i < 2000; i++ {
		n := big.NewInt(i)
		assert.Equal(t, n.ProbablyPrime(20), IsProbablePrime(n, testIterations, rs), "n=%d", i)
	}
}

func TestGenerateProbablePrime(t *testing.T) {
	rs := randstate.New(42)
	for _, bits := range []uint64{2, 8, 16, 64, 128} {
		p, err := GenerateProbablePrime(bits, testIterations, rs)
		require.NoError(t, err)
		assert.LessOrEqual(t, p.BitLen(), int(bits))
		assert.True(t, p.ProbablyPrime(20), "%s should be prime", p)
	}
}

func TestGenerateProbablePrime_Deterministic(t *testing.T) {
	p1, err := GenerateProbablePrime(128, testIterations, randstate.New(7))
	require.NoError(t, err)
	p2, err := GenerateProbablePrime(128, testIterations, randstate.New(7))
	require.NoError(t, err)
	assert.Equal(t, 0, p1.Cmp(p2))
}

func TestGenerateProbablePrime_RejectsTinyBitLength(t *testing.T) {
	rs := randstate.New(1)
	for _, bits := range []uint64{0, 1} {
		_, err := GenerateProbablePrime(bits, testIterations, rs)
		assert.ErrorIs(t, err, ErrBitLengthTooSmall)
	}
}

// countingSource records how many Miller-Rabin witnesses are drawn.
type countingSource struct {
	*randstate.Source
	below int
}

func (c *countingSource) Below(n *big.Int) *big.Int {
	c.below++
	return c.Source.Below(n)
}

func TestIsProbablePrime_WitnessCount(t *testing.T) {
	prime := big.NewInt(1000003)

	tests := []struct {
		iterations uint64
		want       int
	}{
		{1, 0},
		{2, 1},
		{5, 4},
		{50, 49},
	}

	for _, tt := range tests {
		rs := &countingSource{Source: randstate.New(42)}
		require.True(t, IsProbablePrime(prime, tt.iterations, rs))
		assert.Equal(t, tt.want, rs.below, "iterations=%d", tt.iterations)
	}
}

func TestIsProbablePrime_SingleIterationRunsNoTrials(t *testing.T) {
	rs := &countingSource{Source: randstate.New(42)}

	// 9 is composite but no witness is tried
	assert.True(t, IsProbablePrime(big.NewInt(9), 1, rs))
	assert.Zero(t, rs.below)
}
