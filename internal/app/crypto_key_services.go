package app

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/blobs"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/validators"

	"github.com/google/uuid"
)

// cryptoKeyUploadService implements the CryptoKeyUploadService interface for generating and registering keys
type cryptoKeyUploadService struct {
	generator keys.KeyGenerationService
	keyRepo   keys.RSAKeyRepository
	logger    logger.Logger
}

// NewCryptoKeyUploadService creates a new cryptoKeyUploadService instance
func NewCryptoKeyUploadService(generator keys.KeyGenerationService, keyRepo keys.RSAKeyRepository, logger logger.Logger) (keys.CryptoKeyUploadService, error) {
	return &cryptoKeyUploadService{
		generator: generator,
		keyRepo:   keyRepo,
		logger:    logger,
	}, nil
}

// Upload generates a signed key pair for owner and stores it in the vault.
// A zero iterations value selects the default Miller-Rabin parameter.
func (s *cryptoKeyUploadService) Upload(ctx context.Context, owner string, keySize uint32, iterations uint64) (*keys.RSAKeyMeta, error) {
	if keySize < validators.MinRSAKeySize || keySize > validators.MaxRSAKeySize {
		return nil, fmt.Errorf("key size %d outside [%d, %d]: %w", keySize, validators.MinRSAKeySize, validators.MaxRSAKeySize, keys.ErrKeyTooSmall)
	}
	if iterations == 0 {
		iterations = config.DefaultIterations
	}

	bundle, err := s.generator.Generate(ctx, keys.GenerateKeyRequest{
		Owner:      owner,
		KeySize:    uint64(keySize),
		Iterations: iterations,
	})
	if err != nil {
		return nil, err
	}

	keyMeta := keys.NewRSAKeyMeta(uuid.NewString(), bundle, time.Now())
	if err := s.keyRepo.Create(ctx, keyMeta); err != nil {
		return nil, fmt.Errorf("failed to store key: %w", err)
	}

	s.logger.Info("Key registered", "id", keyMeta.ID, "owner", owner, "key_size", keySize)
	return keyMeta, nil
}

// cryptoKeyMetadataService implements the CryptoKeyMetadataService interface to manage vault entries
type cryptoKeyMetadataService struct {
	keyRepo  keys.RSAKeyRepository
	blobRepo blobs.BlobRepository
	logger   logger.Logger
}

// NewCryptoKeyMetadataService creates a new cryptoKeyMetadataService instance
func NewCryptoKeyMetadataService(keyRepo keys.RSAKeyRepository, blobRepo blobs.BlobRepository, logger logger.Logger) (keys.CryptoKeyMetadataService, error) {
	return &cryptoKeyMetadataService{
		keyRepo:  keyRepo,
		blobRepo: blobRepo,
		logger:   logger,
	}, nil
}

// List retrieves vault entries considering a query filter when set.
func (s *cryptoKeyMetadataService) List(ctx context.Context, query *keys.RSAKeyQuery) ([]*keys.RSAKeyMeta, error) {
	keyMetas, err := s.keyRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keyMetas, nil
}

// GetByID retrieves a vault entry by its ID.
func (s *cryptoKeyMetadataService) GetByID(ctx context.Context, keyID string) (*keys.RSAKeyMeta, error) {
	keyMeta, err := s.keyRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}
	return keyMeta, nil
}

// DeleteByID deletes a vault entry unless stored blobs are still encrypted with it.
func (s *cryptoKeyMetadataService) DeleteByID(ctx context.Context, keyID string) error {
	if _, err := s.keyRepo.GetByID(ctx, keyID); err != nil {
		return fmt.Errorf("failed to get key: %w", err)
	}

	if s.blobRepo != nil {
		referencing, err := s.blobRepo.List(ctx, &blobs.BlobMetaQuery{EncryptionKeyID: keyID, Limit: 1})
		if err != nil {
			return fmt.Errorf("failed to check key references: %w", err)
		}
		if len(referencing) > 0 {
			return fmt.Errorf("key %s: %w", keyID, keys.ErrKeyInUse)
		}
	}

	if err := s.keyRepo.DeleteByID(ctx, keyID); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	s.logger.Info("Key deleted", "id", keyID)
	return nil
}

// cryptoKeyDownloadService implements the CryptoKeyDownloadService interface
type cryptoKeyDownloadService struct {
	keyRepo keys.RSAKeyRepository
	logger  logger.Logger
}

// NewCryptoKeyDownloadService creates a new cryptoKeyDownloadService instance
func NewCryptoKeyDownloadService(keyRepo keys.RSAKeyRepository, logger logger.Logger) (keys.CryptoKeyDownloadService, error) {
	return &cryptoKeyDownloadService{
		keyRepo: keyRepo,
		logger:  logger,
	}, nil
}

// DownloadPublicByID renders the public key record of a vault entry in the key file format.
func (s *cryptoKeyDownloadService) DownloadPublicByID(ctx context.Context, keyID string) ([]byte, error) {
	keyMeta, err := s.keyRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}

	pub, err := keyMeta.PublicKey()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := cryptography.WritePublicKey(&buf, pub); err != nil {
		return nil, err
	}

	s.logger.Info("Public key downloaded", "id", keyID)
	return buf.Bytes(), nil
}
