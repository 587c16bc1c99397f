package blobs

import (
	"context"
)

// BlobUploadService defines methods for uploading blobs.
type BlobUploadService interface {
	// Upload encrypts data with the vault key encryptionKeyID and stores the ciphertext.
	// The key's owner signature is verified first.
	// It returns the stored BlobMeta and any error encountered during the upload process.
	Upload(ctx context.Context, name, owner string, data []byte, encryptionKeyID string) (*BlobMeta, error)
}

// BlobMetadataService defines methods for retrieving Blob and deleting a blob along with metadata.
type BlobMetadataService interface {
	// List retrieves all blobs' metadata considering a query filter when set.
	// It returns a slice of Blob and any error encountered during the retrieval.
	List(ctx context.Context, query *BlobMetaQuery) ([]*BlobMeta, error)

	// GetByID retrieves the blob metadata by ID.
	// It returns the Blob and any error encountered during the retrieval process.
	GetByID(ctx context.Context, blobID string) (*BlobMeta, error)

	// DeleteByID deletes a blob and associated metadata by ID.
	// It returns any error encountered during the deletion process.
	DeleteByID(ctx context.Context, blobID string) error
}

// BlobDownloadService defines methods for downloading blobs.
type BlobDownloadService interface {
	// DownloadByID decrypts a blob's ciphertext with the private exponent of its encryption key.
	DownloadByID(ctx context.Context, blobID string) ([]byte, error)
}

// BlobRepository defines the interface for Blob-related operations
type BlobRepository interface {
	// Create adds a new Blob together with its ciphertext to the database
	Create(ctx context.Context, blob *BlobMeta, ciphertext []byte) error
	// List lists Blobs in the database with optional filter
	List(ctx context.Context, query *BlobMetaQuery) ([]*BlobMeta, error)
	// GetByID retrieves a Blob from the database by ID
	GetByID(ctx context.Context, blobID string) (*BlobMeta, error)
	// GetCiphertextByID retrieves the stored ciphertext stream of a Blob
	GetCiphertextByID(ctx context.Context, blobID string) ([]byte, error)
	// DeleteByID deleted a Blob in the database by ID
	DeleteByID(ctx context.Context, blobID string) error
}
