// Package numtheory implements the modular arithmetic and primality testing used
// by RSA key generation and the scalar encrypt, decrypt, sign and verify operations.
//
// All functions treat their *big.Int arguments as read-only and return fresh values.
package numtheory

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrBitLengthTooSmall is returned when a prime of fewer than two bits is requested.
var ErrBitLengthTooSmall = errors.New("bit length must be at least 2")

var (
	one  = big.NewInt(1)
	two  = big.NewInt(2)
	four = big.NewInt(4)
)

// RandomSource supplies the uniform random integers consumed by the primality
// test and prime generation.
type RandomSource interface {
	// Bits returns a uniform random integer in [0, 2^n).
	Bits(n uint) *big.Int
	// Below returns a uniform random integer in [0, n).
	Below(n *big.Int) *big.Int
}

// GCD returns the greatest common divisor of the non-negative integers a and b.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Set(a)
	y := new(big.Int).Set(b)
	for y.Sign() != 0 {
		x.Mod(x, y)
		x, y = y, x
	}
	return x
}

// ModInverse returns the inverse of a modulo n in [0, n).
// When gcd(a, n) > 1 there is no inverse and 0 is returned.
func ModInverse(a, n *big.Int) *big.Int {
	r, rNext := new(big.Int).Set(n), new(big.Int).Set(a)
	t, tNext := new(big.Int), big.NewInt(1)
	q, tmp := new(big.Int), new(big.Int)

	for rNext.Sign() != 0 {
		q.Div(r, rNext)

		tmp.Mul(q, rNext)
		tmp.Sub(r, tmp)
		r, rNext = rNext, new(big.Int).Set(tmp)

		tmp.Mul(q, tNext)
		tmp.Sub(t, tmp)
		t, tNext = tNext, new(big.Int).Set(tmp)
	}

	if r.Cmp(one) > 0 {
		return new(big.Int)
	}
	if t.Sign() < 0 {
		t.Add(t, n)
	}
	return t
}

// PowMod returns base^exponent mod modulus using right-to-left square and multiply.
// exponent must be non-negative and modulus positive; PowMod panics otherwise.
func PowMod(base, exponent, modulus *big.Int) *big.Int {
	if modulus.Sign() <= 0 {
		panic(fmt.Sprintf("numtheory: PowMod with non-positive modulus %s", modulus))
	}
	if exponent.Sign() < 0 {
		panic(fmt.Sprintf("numtheory: PowMod with negative exponent %s", exponent))
	}

	v := new(big.Int).Mod(one, modulus)
	p := new(big.Int).Mod(base, modulus)
	d := new(big.Int).Set(exponent)

	for d.Sign() > 0 {
		if d.Bit(0) == 1 {
			v.Mul(v, p)
			v.Mod(v, modulus)
		}
		p.Mul(p, p)
		p.Mod(p, modulus)
		d.Rsh(d, 1)
	}
	return v
}

// IsProbablePrime runs the Miller-Rabin test on n.
//
// The loop performs iterations-1 witness trials, so iterations=1 only settles
// the small cases n < 5. A composite survives every trial with probability at
// most 4^-(iterations-1).
func IsProbablePrime(n *big.Int, iterations uint64, rs RandomSource) bool {
	if n.Cmp(two) < 0 || n.Cmp(four) == 0 {
		return false
	}
	if n.Cmp(four) < 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}

	nMinusOne := new(big.Int).Sub(n, one)

	// n-1 = r * 2^s with r odd
	s := nMinusOne.TrailingZeroBits()
	r := new(big.Int).Rsh(nMinusOne, s)

	// witnesses are drawn from [2, n-2]
	bound := new(big.Int).Sub(n, big.NewInt(3))

	for i := uint64(1); i < iterations; i++ {
		a := rs.Below(bound)
		a.Add(a, two)

		y := PowMod(a, r, n)
		if y.Cmp(one) == 0 || y.Cmp(nMinusOne) == 0 {
			continue
		}

		for j := uint(1); j < s && y.Cmp(nMinusOne) != 0; j++ {
			y = PowMod(y, two, n)
			if y.Cmp(one) == 0 {
				return false
			}
		}
		if y.Cmp(nMinusOne) != 0 {
			return false
		}
	}
	return true
}

// GenerateProbablePrime samples bits-bit random integers until one passes
// IsProbablePrime. The returned value may have fewer than bits significant bits.
func GenerateProbablePrime(bits uint64, iterations uint64, rs RandomSource) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("cannot generate a %d-bit prime: %w", bits, ErrBitLengthTooSmall)
	}

	for {
		p := rs.Bits(uint(bits))
		if IsProbablePrime(p, iterations, rs) {
			return p, nil
		}
	}
}
