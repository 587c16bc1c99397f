package app

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/blobs"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"

	"github.com/google/uuid"
)

// blobUploadService implements the BlobUploadService interface for handling blob uploads
type blobUploadService struct {
	blobRepo blobs.BlobRepository
	keyRepo  keys.RSAKeyRepository
	cipher   keys.StreamCipherService
	logger   logger.Logger
}

// NewBlobUploadService creates a new blobUploadService instance
func NewBlobUploadService(
	blobRepo blobs.BlobRepository,
	keyRepo keys.RSAKeyRepository,
	cipher keys.StreamCipherService,
	logger logger.Logger,
) (blobs.BlobUploadService, error) {
	return &blobUploadService{
		blobRepo: blobRepo,
		keyRepo:  keyRepo,
		cipher:   cipher,
		logger:   logger,
	}, nil
}

// Upload encrypts data for the vault key and persists the ciphertext stream.
// An empty owner defaults to the owner of the key.
func (s *blobUploadService) Upload(ctx context.Context, name, owner string, data []byte, encryptionKeyID string) (*blobs.BlobMeta, error) {
	keyMeta, err := s.keyRepo.GetByID(ctx, encryptionKeyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get encryption key: %w", err)
	}

	pub, err := keyMeta.PublicKey()
	if err != nil {
		return nil, err
	}

	var ciphertext bytes.Buffer
	if err := s.cipher.Encrypt(ctx, bytes.NewReader(data), &ciphertext, pub); err != nil {
		return nil, err
	}

	if owner == "" {
		owner = keyMeta.Owner
	}

	blobMeta := &blobs.BlobMeta{
		ID:              uuid.NewString(),
		DateTimeCreated: time.Now(),
		Owner:           owner,
		Name:            name,
		Size:            int64(len(data)),
		Blocks:          bytes.Count(ciphertext.Bytes(), []byte{'\n'}),
		EncryptionKeyID: encryptionKeyID,
	}

	if err := s.blobRepo.Create(ctx, blobMeta, ciphertext.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to store blob: %w", err)
	}

	s.logger.Info("blob upload completed",
		"id", blobMeta.ID,
		"name", blobMeta.Name,
		"size", blobMeta.Size,
		"blocks", blobMeta.Blocks)
	return blobMeta, nil
}

// blobMetadataService implements the BlobMetadataService interface for retrieving and deleting blob metadata
type blobMetadataService struct {
	blobRepo blobs.BlobRepository
	logger   logger.Logger
}

// NewBlobMetadataService creates a new blobMetadataService instance
func NewBlobMetadataService(blobRepo blobs.BlobRepository, logger logger.Logger) (blobs.BlobMetadataService, error) {
	return &blobMetadataService{
		blobRepo: blobRepo,
		logger:   logger,
	}, nil
}

// List retrieves all blobs' metadata considering a query filter when set.
func (s *blobMetadataService) List(ctx context.Context, query *blobs.BlobMetaQuery) ([]*blobs.BlobMeta, error) {
	blobMetas, err := s.blobRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}
	return blobMetas, nil
}

// GetByID retrieves a blob's metadata by its unique ID.
func (s *blobMetadataService) GetByID(ctx context.Context, blobID string) (*blobs.BlobMeta, error) {
	blobMeta, err := s.blobRepo.GetByID(ctx, blobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get blob: %w", err)
	}
	return blobMeta, nil
}

// DeleteByID deletes a blob together with its ciphertext.
func (s *blobMetadataService) DeleteByID(ctx context.Context, blobID string) error {
	if err := s.blobRepo.DeleteByID(ctx, blobID); err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	s.logger.Info("Blob deleted", "id", blobID)
	return nil
}

// blobDownloadService implements the BlobDownloadService interface for handling blob downloads
type blobDownloadService struct {
	blobRepo blobs.BlobRepository
	keyRepo  keys.RSAKeyRepository
	cipher   keys.StreamCipherService
	logger   logger.Logger
}

// NewBlobDownloadService creates a new blobDownloadService instance
func NewBlobDownloadService(
	blobRepo blobs.BlobRepository,
	keyRepo keys.RSAKeyRepository,
	cipher keys.StreamCipherService,
	logger logger.Logger,
) (blobs.BlobDownloadService, error) {
	return &blobDownloadService{
		blobRepo: blobRepo,
		keyRepo:  keyRepo,
		cipher:   cipher,
		logger:   logger,
	}, nil
}

// DownloadByID decrypts the stored ciphertext of a blob with its key's private exponent.
func (s *blobDownloadService) DownloadByID(ctx context.Context, blobID string) ([]byte, error) {
	blobMeta, err := s.blobRepo.GetByID(ctx, blobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get blob: %w", err)
	}

	keyMeta, err := s.keyRepo.GetByID(ctx, blobMeta.EncryptionKeyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get decryption key: %w", err)
	}

	priv, err := keyMeta.PrivateKey()
	if err != nil {
		return nil, err
	}

	ciphertext, err := s.blobRepo.GetCiphertextByID(ctx, blobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get blob ciphertext: %w", err)
	}

	var plaintext bytes.Buffer
	if err := s.cipher.Decrypt(ctx, bytes.NewReader(ciphertext), &plaintext, priv); err != nil {
		return nil, err
	}

	s.logger.Info("blob download completed", "id", blobID, "size", plaintext.Len())
	return plaintext.Bytes(), nil
}
