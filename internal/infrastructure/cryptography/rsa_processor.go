package cryptography

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/numtheory"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/validators"
)

var one = big.NewInt(1)

// ErrNoRandomSource is returned by GenerateKeyPair on a processor built without a random source.
var ErrNoRandomSource = errors.New("key generation requires a random source")

// RandomSource is the randomness consumed by key generation.
// *randstate.Source satisfies it.
type RandomSource interface {
	numtheory.RandomSource
	Uint64n(n uint64) uint64
}

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	random RandomSource
	logger logger.Logger
}

// NewRSAProcessor creates and returns a new instance of rsaProcessor.
// random may be nil when the processor never generates keys.
func NewRSAProcessor(random RandomSource, logger logger.Logger) (cryptoalg.RSAProcessor, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	return &rsaProcessor{
		random: random,
		logger: logger,
	}, nil
}

// GenerateKeyPair splits nbits between p and q at random, regenerating both
// until their product has exactly nbits bits, then samples a coprime public exponent.
func (r *rsaProcessor) GenerateKeyPair(nbits, iterations uint64) (*cryptoalg.KeyPair, error) {
	if r.random == nil {
		return nil, ErrNoRandomSource
	}
	if nbits < validators.MinRSAKeySize {
		return nil, fmt.Errorf("%d-bit modulus requested, need at least %d: %w", nbits, validators.MinRSAKeySize, keys.ErrKeyTooSmall)
	}
	if iterations < 2 {
		return nil, fmt.Errorf("miller-rabin iterations must be at least 2, got %d", iterations)
	}

	lower := nbits / 4
	upper := (3 * nbits) / 4

	var p, q, n *big.Int
	attempts := 0
	for {
		attempts++
		pBits := lower + r.random.Uint64n(upper-lower+1)
		qBits := nbits - pBits

		var err error
		p, err = numtheory.GenerateProbablePrime(pBits, iterations, r.random)
		if err != nil {
			return nil, fmt.Errorf("failed to generate p: %w", err)
		}
		q, err = numtheory.GenerateProbablePrime(qBits, iterations, r.random)
		if err != nil {
			return nil, fmt.Errorf("failed to generate q: %w", err)
		}

		n = new(big.Int).Mul(p, q)
		if uint64(n.BitLen()) == nbits && p.Cmp(q) != 0 {
			break
		}
	}

	phi := totient(p, q)

	var e *big.Int
	for {
		e = r.random.Bits(uint(nbits))
		if e.Cmp(one) > 0 && numtheory.GCD(e, phi).Cmp(one) == 0 {
			break
		}
	}

	r.logger.Debug("Generated RSA key pair", "bits", nbits, "attempts", attempts)
	return &cryptoalg.KeyPair{P: p, Q: q, N: n, E: e}, nil
}

// DerivePrivateExponent computes d = e^-1 mod (p-1)(q-1).
func (r *rsaProcessor) DerivePrivateExponent(e, p, q *big.Int) (*big.Int, error) {
	d := numtheory.ModInverse(e, totient(p, q))
	if d.Sign() == 0 {
		return nil, keys.ErrNotInvertible
	}
	return d, nil
}

// Encrypt computes c = m^e mod n.
func (r *rsaProcessor) Encrypt(m, e, n *big.Int) *big.Int {
	return numtheory.PowMod(m, e, n)
}

// Decrypt computes m = c^d mod n.
func (r *rsaProcessor) Decrypt(c, d, n *big.Int) *big.Int {
	return numtheory.PowMod(c, d, n)
}

// Sign computes s = m^d mod n.
func (r *rsaProcessor) Sign(m, d, n *big.Int) *big.Int {
	return numtheory.PowMod(m, d, n)
}

// Verify checks s^e mod n == m.
func (r *rsaProcessor) Verify(m, s, e, n *big.Int) bool {
	return numtheory.PowMod(s, e, n).Cmp(m) == 0
}

// EncodeIdentity reads owner as a base-62 numeral.
func (r *rsaProcessor) EncodeIdentity(owner string) (*big.Int, error) {
	return EncodeIdentity(owner)
}

func totient(p, q *big.Int) *big.Int {
	pMinusOne := new(big.Int).Sub(p, one)
	qMinusOne := new(big.Int).Sub(q, one)
	return pMinusOne.Mul(pMinusOne, qMinusOne)
}
