package testutil

import (
	"io"
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/randstate"
	"github.com/stretchr/testify/require"
)

// Defaults of the deterministic test keys.
const (
	TestSeed       = 42
	TestKeySize    = 256
	TestIterations = 50
	TestOwner      = "alice"
)

// NewTestKeyBundle generates a signed key bundle for owner from a fixed seed.
// The same arguments always yield the same bundle.
func NewTestKeyBundle(t *testing.T, owner string, keySize uint64) *keys.KeyBundle {
	t.Helper()

	log := logger.NewWriterLogger(config.LogLevelInfo, io.Discard)

	processor, err := cryptography.NewRSAProcessor(randstate.New(TestSeed), log)
	require.NoError(t, err)

	pair, err := processor.GenerateKeyPair(keySize, TestIterations)
	require.NoError(t, err)

	d, err := processor.DerivePrivateExponent(pair.E, pair.P, pair.Q)
	require.NoError(t, err)

	m, err := processor.EncodeIdentity(owner)
	require.NoError(t, err)

	return &keys.KeyBundle{
		P:       pair.P,
		Q:       pair.Q,
		Public:  &keys.PublicKey{N: pair.N, E: pair.E, S: processor.Sign(m, d, pair.N), Owner: owner},
		Private: &keys.PrivateKey{N: pair.N, D: d},
	}
}

