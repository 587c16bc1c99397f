package cryptoalg

import (
	"io"
	"math/big"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
)

// KeyPair is the outcome of RSA key generation: two probable primes, their product and a public exponent.
type KeyPair struct {
	P *big.Int
	Q *big.Int
	N *big.Int
	E *big.Int
}

// RSAProcessor handles the RSA protocol on raw big integers.
// There is no padding: messages and signatures are integers in [0, n).
type RSAProcessor interface {
	// GenerateKeyPair returns primes p, q with bitlen(p*q) == nbits exactly and a random
	// nbits-bit public exponent coprime to (p-1)(q-1). iterations is the Miller-Rabin parameter.
	GenerateKeyPair(nbits, iterations uint64) (*KeyPair, error)

	// DerivePrivateExponent returns the inverse of e modulo (p-1)(q-1).
	// It returns keys.ErrNotInvertible when no inverse exists.
	DerivePrivateExponent(e, p, q *big.Int) (*big.Int, error)

	// Encrypt returns m^e mod n.
	Encrypt(m, e, n *big.Int) *big.Int

	// Decrypt returns c^d mod n.
	Decrypt(c, d, n *big.Int) *big.Int

	// Sign returns m^d mod n.
	Sign(m, d, n *big.Int) *big.Int

	// Verify reports whether s^e mod n equals m.
	Verify(m, s, e, n *big.Int) bool

	// EncodeIdentity maps an owner identity onto the integer that gets signed.
	EncodeIdentity(owner string) (*big.Int, error)
}

// StreamCodec maps arbitrary byte streams onto lines of RSA-encrypted block integers and back.
type StreamCodec interface {
	// EncryptStream encrypts r block by block into w, one lower-case hex line per block.
	// It returns the number of blocks written.
	EncryptStream(r io.Reader, w io.Writer, pub *keys.PublicKey) (int, error)

	// DecryptStream reverses EncryptStream. It returns the number of blocks read.
	DecryptStream(r io.Reader, w io.Writer, priv *keys.PrivateKey) (int, error)
}
