//go:build integration
// +build integration

package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/domain/blobs"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBlobTest(t *testing.T) (*TestServices, *keys.RSAKeyMeta) {
	t.Helper()

	services := SetupTestServices(t, config.SqliteDbType)
	keyMeta, err := services.CryptoKeyUploadService.Upload(context.Background(), TestOwner, TestKeySize, TestIterations)
	require.NoError(t, err)

	return services, keyMeta
}

func TestBlobUploadService_UploadAndDownload(t *testing.T) {
	services, keyMeta := setupBlobTest(t)
	ctx := context.Background()

	tests := []struct {
		name string
		data []byte
	}{
		{"Text", []byte("HELLO")},
		{"Empty", []byte{}},
		{"LeadingZeros", []byte{0, 0, 0, 7}},
		{"MultiBlock", bytes.Repeat([]byte("0123456789"), 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobMeta, err := services.BlobUploadService.Upload(ctx, "payload.bin", "", tt.data, keyMeta.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.data)), blobMeta.Size)
			assert.Equal(t, TestOwner, blobMeta.Owner)
			assert.Equal(t, keyMeta.ID, blobMeta.EncryptionKeyID)

			ciphertext, err := services.DBContext.BlobRepo.GetCiphertextByID(ctx, blobMeta.ID)
			require.NoError(t, err)
			assert.Equal(t, blobMeta.Blocks, bytes.Count(ciphertext, []byte{'\n'}))
			if len(tt.data) > 0 {
				assert.NotContains(t, string(ciphertext), string(tt.data))
			}

			plaintext, err := services.BlobDownloadService.DownloadByID(ctx, blobMeta.ID)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(tt.data, plaintext))
		})
	}
}

func TestBlobUploadService_UnknownKey(t *testing.T) {
	services, _ := setupBlobTest(t)

	_, err := services.BlobUploadService.Upload(context.Background(), "payload.bin", "", []byte("HELLO"), uuid.NewString())
	assert.ErrorIs(t, err, keys.ErrKeyNotFound)
}

func TestBlobUploadService_TamperedKey(t *testing.T) {
	services, keyMeta := setupBlobTest(t)
	ctx := context.Background()

	tampered := *keyMeta
	tampered.ID = uuid.NewString()
	tampered.Owner = "mallory"
	require.NoError(t, services.DBContext.KeyRepo.Create(ctx, &tampered))

	_, err := services.BlobUploadService.Upload(ctx, "payload.bin", "", []byte("HELLO"), tampered.ID)
	assert.ErrorIs(t, err, keys.ErrSignatureMismatch)
}

func TestBlobMetadataService(t *testing.T) {
	services, keyMeta := setupBlobTest(t)
	ctx := context.Background()

	first, err := services.BlobUploadService.Upload(ctx, "report.txt", "", []byte("first"), keyMeta.ID)
	require.NoError(t, err)
	_, err = services.BlobUploadService.Upload(ctx, "notes.txt", "", []byte("second"), keyMeta.ID)
	require.NoError(t, err)

	list, err := services.BlobMetadataService.List(ctx, &blobs.BlobMetaQuery{Name: "report"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)

	fetched, err := services.BlobMetadataService.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, fetched.Name)

	require.NoError(t, services.BlobMetadataService.DeleteByID(ctx, first.ID))

	_, err = services.BlobMetadataService.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, blobs.ErrBlobNotFound)

	_, err = services.BlobDownloadService.DownloadByID(ctx, first.ID)
	assert.ErrorIs(t, err, blobs.ErrBlobNotFound)
}
