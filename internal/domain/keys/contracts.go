package keys

import (
	"context"
	"io"
)

// GenerateKeyRequest carries the parameters of one key generation run.
type GenerateKeyRequest struct {
	Owner      string
	KeySize    uint64
	Iterations uint64
}

// KeyGenerationService defines methods for producing signed RSA key pairs.
type KeyGenerationService interface {
	// Generate creates a key pair, derives the private exponent and signs the owner identity.
	Generate(ctx context.Context, req GenerateKeyRequest) (*KeyBundle, error)
}

// StreamCipherService defines methods for encrypting and decrypting whole byte streams.
type StreamCipherService interface {
	// VerifyPublicKey checks the owner signature carried by pub.
	// It returns ErrSignatureMismatch when the signature does not verify.
	VerifyPublicKey(pub *PublicKey) error

	// Encrypt verifies the owner signature of pub and then encrypts r into w.
	// It returns ErrSignatureMismatch without writing anything when the signature does not verify.
	Encrypt(ctx context.Context, r io.Reader, w io.Writer, pub *PublicKey) error

	// Decrypt decrypts the ciphertext stream r into w.
	Decrypt(ctx context.Context, r io.Reader, w io.Writer, priv *PrivateKey) error
}

// CryptoKeyUploadService defines methods for generating keys and registering them in the vault.
type CryptoKeyUploadService interface {
	// Upload generates a key pair for owner and stores it.
	// It returns the stored RSAKeyMeta and any error encountered.
	Upload(ctx context.Context, owner string, keySize uint32, iterations uint64) (*RSAKeyMeta, error)
}

// CryptoKeyMetadataService defines methods for managing vault entries.
type CryptoKeyMetadataService interface {
	// List retrieves vault entries considering a query filter when set.
	List(ctx context.Context, query *RSAKeyQuery) ([]*RSAKeyMeta, error)

	// GetByID retrieves a vault entry by its unique ID.
	GetByID(ctx context.Context, keyID string) (*RSAKeyMeta, error)

	// DeleteByID deletes a vault entry by ID.
	DeleteByID(ctx context.Context, keyID string) error
}

// CryptoKeyDownloadService defines methods for exporting key records.
type CryptoKeyDownloadService interface {
	// DownloadPublicByID returns the serialized public key record of a vault entry.
	DownloadPublicByID(ctx context.Context, keyID string) ([]byte, error)
}

// RSAKeyRepository defines the persistence operations for vault entries.
type RSAKeyRepository interface {
	Create(ctx context.Context, key *RSAKeyMeta) error
	List(ctx context.Context, query *RSAKeyQuery) ([]*RSAKeyMeta, error)
	GetByID(ctx context.Context, keyID string) (*RSAKeyMeta, error)
	DeleteByID(ctx context.Context, keyID string) error
}
