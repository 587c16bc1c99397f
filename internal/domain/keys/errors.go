package keys

import "errors"

var (
	// ErrMalformedKeyRecord is returned when a public or private key record is truncated or unparsable.
	ErrMalformedKeyRecord = errors.New("malformed key record")

	// ErrInvalidIdentity is returned when an owner identity cannot be read as a base-62 numeral.
	ErrInvalidIdentity = errors.New("invalid owner identity")

	// ErrKeyTooSmall is returned when a modulus is too short to carry a payload byte per block.
	ErrKeyTooSmall = errors.New("modulus too small")

	// ErrNotInvertible is returned when the public exponent has no inverse modulo the totient.
	// Key generation never produces such an exponent, so this indicates corrupted key material.
	ErrNotInvertible = errors.New("public exponent is not invertible modulo the totient")

	// ErrStreamFormat is returned when a ciphertext stream holds a line that is not a valid record.
	ErrStreamFormat = errors.New("malformed ciphertext stream")

	// ErrSignatureMismatch is returned when the owner signature of a public key does not verify.
	ErrSignatureMismatch = errors.New("invalid signature")

	// ErrKeyNotFound is returned by repositories when no key matches the given ID.
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyInUse is returned when deleting a key that stored blobs are still encrypted with.
	ErrKeyInUse = errors.New("key is still referenced by blobs")
)
