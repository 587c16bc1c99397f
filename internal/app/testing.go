//go:build integration
// +build integration

package app

import (
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/domain/blobs"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/persistence"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/randstate"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// Test constants
const (
	TestSeed       = 42
	TestKeySize    = 256
	TestIterations = 50
	TestOwner      = "alice"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	// Blob services
	BlobUploadService   blobs.BlobUploadService
	BlobDownloadService blobs.BlobDownloadService
	BlobMetadataService blobs.BlobMetadataService

	// Crypto key services
	CryptoKeyUploadService   keys.CryptoKeyUploadService
	CryptoKeyMetadataService keys.CryptoKeyMetadataService
	CryptoKeyDownloadService keys.CryptoKeyDownloadService

	// Infrastructure
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	processor, err := cryptography.NewRSAProcessor(randstate.New(TestSeed), logger)
	require.NoError(t, err, "Failed to create RSA processor")

	codec, err := cryptography.NewStreamCodec(processor, logger)
	require.NoError(t, err, "Failed to create stream codec")

	generator, err := NewKeyGenerationService(processor, logger)
	require.NoError(t, err, "Failed to create key generation service")

	cipher, err := NewStreamCipherService(processor, codec, logger)
	require.NoError(t, err, "Failed to create stream cipher service")

	cryptoKeyUploadService, err := NewCryptoKeyUploadService(generator, dbContext.KeyRepo, logger)
	require.NoError(t, err, "Failed to create crypto key upload service")

	cryptoKeyMetadataService, err := NewCryptoKeyMetadataService(dbContext.KeyRepo, dbContext.BlobRepo, logger)
	require.NoError(t, err, "Failed to create crypto key metadata service")

	cryptoKeyDownloadService, err := NewCryptoKeyDownloadService(dbContext.KeyRepo, logger)
	require.NoError(t, err, "Failed to create crypto key download service")

	blobUploadService, err := NewBlobUploadService(dbContext.BlobRepo, dbContext.KeyRepo, cipher, logger)
	require.NoError(t, err, "Failed to create blob upload service")

	blobMetadataService, err := NewBlobMetadataService(dbContext.BlobRepo, logger)
	require.NoError(t, err, "Failed to create blob metadata service")

	blobDownloadService, err := NewBlobDownloadService(dbContext.BlobRepo, dbContext.KeyRepo, cipher, logger)
	require.NoError(t, err, "Failed to create blob download service")

	return &TestServices{
		BlobUploadService:        blobUploadService,
		BlobDownloadService:      blobDownloadService,
		BlobMetadataService:      blobMetadataService,
		CryptoKeyUploadService:   cryptoKeyUploadService,
		CryptoKeyMetadataService: cryptoKeyMetadataService,
		CryptoKeyDownloadService: cryptoKeyDownloadService,
		DBContext:                dbContext,
	}
}
