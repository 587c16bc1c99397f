//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/blobs"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestKeySize256  = 256
	TestKeySize512  = 512
	TestKeySize2048 = 2048

	TestOwnerAlice = "alice"
	TestOwnerBob   = "bob"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB       *gorm.DB
	BlobRepo blobs.BlobRepository
	KeyRepo  keys.RSAKeyRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type:   config.PostgresDbType,
			DSN:    "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			DBName: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)

	blobRepo, err := NewGormBlobRepository(db, logger)
	require.NoError(t, err, "Failed to create blob repository")

	keyRepo, err := NewGormRSAKeyRepository(db, logger)
	require.NoError(t, err, "Failed to create rsa key repository")

	return &TestContext{
		DB:       db,
		BlobRepo: blobRepo,
		KeyRepo:  keyRepo,
	}
}

// CreateTestKey creates a vault key entry holding a real, deterministic 256-bit key pair
func CreateTestKey(t *testing.T, owner string) *keys.RSAKeyMeta {
	t.Helper()

	bundle := testutil.NewTestKeyBundle(t, owner, TestKeySize256)
	return keys.NewRSAKeyMeta(uuid.NewString(), bundle, time.Now())
}

// CreateTestKeyWithSize creates a vault key entry of the given modulus size.
// The key material is a placeholder so that large sizes stay cheap.
func CreateTestKeyWithSize(t *testing.T, owner string, keySize uint32) *keys.RSAKeyMeta {
	t.Helper()

	return &keys.RSAKeyMeta{
		ID:              uuid.NewString(),
		Owner:           owner,
		KeySize:         keySize,
		Modulus:         "ca1",
		PublicExponent:  "11",
		Signature:       "357",
		PrivateExponent: "ac1",
		DateTimeCreated: time.Now(),
	}
}

// CreateTestBlob creates a test blob encrypted under key
func CreateTestBlob(t *testing.T, key *keys.RSAKeyMeta, name string) *blobs.BlobMeta {
	t.Helper()

	if name == "" {
		name = "test-blob"
	}

	return &blobs.BlobMeta{
		ID:              uuid.NewString(),
		DateTimeCreated: time.Now(),
		Owner:           key.Owner,
		Name:            name,
		Size:            5,
		Blocks:          1,
		EncryptionKeyID: key.ID,
	}
}
