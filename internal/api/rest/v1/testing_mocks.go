//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/MGTheTrain/rsa-vault/internal/domain/blobs"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"

	"github.com/stretchr/testify/mock"
)

// MockBlobUploadService is a mock implementation of BlobUploadService
type MockBlobUploadService struct {
	mock.Mock
}

func (m *MockBlobUploadService) Upload(ctx context.Context, name, owner string, data []byte, encryptionKeyID string) (*blobs.BlobMeta, error) {
	args := m.Called(ctx, name, owner, data, encryptionKeyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blobs.BlobMeta), args.Error(1)
}

// MockBlobMetadataService is a mock implementation of BlobMetadataService
type MockBlobMetadataService struct {
	mock.Mock
}

func (m *MockBlobMetadataService) List(ctx context.Context, query *blobs.BlobMetaQuery) ([]*blobs.BlobMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*blobs.BlobMeta), args.Error(1)
}

func (m *MockBlobMetadataService) GetByID(ctx context.Context, blobID string) (*blobs.BlobMeta, error) {
	args := m.Called(ctx, blobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blobs.BlobMeta), args.Error(1)
}

func (m *MockBlobMetadataService) DeleteByID(ctx context.Context, blobID string) error {
	args := m.Called(ctx, blobID)
	return args.Error(0)
}

// MockBlobDownloadService is a mock implementation of BlobDownloadService
type MockBlobDownloadService struct {
	mock.Mock
}

func (m *MockBlobDownloadService) DownloadByID(ctx context.Context, blobID string) ([]byte, error) {
	args := m.Called(ctx, blobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockCryptoKeyUploadService is a mock implementation of CryptoKeyUploadService
type MockCryptoKeyUploadService struct {
	mock.Mock
}

func (m *MockCryptoKeyUploadService) Upload(ctx context.Context, owner string, keySize uint32, iterations uint64) (*keys.RSAKeyMeta, error) {
	args := m.Called(ctx, owner, keySize, iterations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.RSAKeyMeta), args.Error(1)
}

// MockCryptoKeyMetadataService is a mock implementation of CryptoKeyMetadataService
type MockCryptoKeyMetadataService struct {
	mock.Mock
}

func (m *MockCryptoKeyMetadataService) List(ctx context.Context, query *keys.RSAKeyQuery) ([]*keys.RSAKeyMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.RSAKeyMeta), args.Error(1)
}

func (m *MockCryptoKeyMetadataService) GetByID(ctx context.Context, keyID string) (*keys.RSAKeyMeta, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.RSAKeyMeta), args.Error(1)
}

func (m *MockCryptoKeyMetadataService) DeleteByID(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}

// MockCryptoKeyDownloadService is a mock implementation of CryptoKeyDownloadService
type MockCryptoKeyDownloadService struct {
	mock.Mock
}

func (m *MockCryptoKeyDownloadService) DownloadPublicByID(ctx context.Context, keyID string) ([]byte, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
