package cryptography

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
)

// identityAlphabet lists the base-62 digits in value order: 0-9, A-Z, a-z.
const identityAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var identityBase = big.NewInt(int64(len(identityAlphabet)))

// EncodeIdentity interprets owner as a base-62 numeral over identityAlphabet.
// The mapping is not a hash; signer and verifier must use the same alphabet.
func EncodeIdentity(owner string) (*big.Int, error) {
	if owner == "" {
		return nil, fmt.Errorf("empty owner: %w", keys.ErrInvalidIdentity)
	}

	m := new(big.Int)
	digit := new(big.Int)
	for i, c := range owner {
		v := strings.IndexRune(identityAlphabet, c)
		if v < 0 {
			return nil, fmt.Errorf("owner %q has character %q at offset %d outside [0-9A-Za-z]: %w", owner, c, i, keys.ErrInvalidIdentity)
		}
		m.Mul(m, identityBase)
		m.Add(m, digit.SetInt64(int64(v)))
	}
	return m, nil
}
