package app

import (
	"context"
	"fmt"
	"io"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
)

// keyGenerationService implements the KeyGenerationService interface
type keyGenerationService struct {
	processor cryptoalg.RSAProcessor
	logger    logger.Logger
}

// NewKeyGenerationService creates a new keyGenerationService instance
func NewKeyGenerationService(processor cryptoalg.RSAProcessor, logger logger.Logger) (keys.KeyGenerationService, error) {
	if processor == nil {
		return nil, fmt.Errorf("rsa processor cannot be nil")
	}
	return &keyGenerationService{
		processor: processor,
		logger:    logger,
	}, nil
}

// Generate creates a key pair, derives d and signs the encoded owner identity with it.
func (s *keyGenerationService) Generate(ctx context.Context, req keys.GenerateKeyRequest) (*keys.KeyBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := s.processor.EncodeIdentity(req.Owner)
	if err != nil {
		return nil, err
	}

	pair, err := s.processor.GenerateKeyPair(req.KeySize, req.Iterations)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}

	// a signature over m >= n could never verify
	if m.Cmp(pair.N) >= 0 {
		return nil, fmt.Errorf("owner %q does not fit below a %d-bit modulus: %w", req.Owner, req.KeySize, keys.ErrInvalidIdentity)
	}

	d, err := s.processor.DerivePrivateExponent(pair.E, pair.P, pair.Q)
	if err != nil {
		s.logger.Error("Private exponent derivation failed", "owner", req.Owner, "error", err)
		return nil, fmt.Errorf("failed to derive private exponent: %w", err)
	}

	bundle := &keys.KeyBundle{
		P: pair.P,
		Q: pair.Q,
		Public: &keys.PublicKey{
			N:     pair.N,
			E:     pair.E,
			S:     s.processor.Sign(m, d, pair.N),
			Owner: req.Owner,
		},
		Private: &keys.PrivateKey{N: pair.N, D: d},
	}

	s.logger.Info("Generated signed key pair", "owner", req.Owner, "bits", pair.N.BitLen())
	return bundle, nil
}

// streamCipherService implements the StreamCipherService interface
type streamCipherService struct {
	processor cryptoalg.RSAProcessor
	codec     cryptoalg.StreamCodec
	logger    logger.Logger
}

// NewStreamCipherService creates a new streamCipherService instance
func NewStreamCipherService(processor cryptoalg.RSAProcessor, codec cryptoalg.StreamCodec, logger logger.Logger) (keys.StreamCipherService, error) {
	if processor == nil || codec == nil {
		return nil, fmt.Errorf("rsa processor and stream codec are required")
	}
	return &streamCipherService{
		processor: processor,
		codec:     codec,
		logger:    logger,
	}, nil
}

// VerifyPublicKey checks that pub carries a valid signature over its owner identity.
func (s *streamCipherService) VerifyPublicKey(pub *keys.PublicKey) error {
	if pub == nil {
		return fmt.Errorf("public key cannot be nil")
	}

	m, err := s.processor.EncodeIdentity(pub.Owner)
	if err != nil {
		return err
	}
	if !s.processor.Verify(m, pub.S, pub.E, pub.N) {
		s.logger.Warn("Refusing to encrypt for unverified key", "owner", pub.Owner)
		return fmt.Errorf("owner %q: %w", pub.Owner, keys.ErrSignatureMismatch)
	}
	return nil
}

// Encrypt refuses keys whose owner signature does not verify and otherwise encrypts r into w.
func (s *streamCipherService) Encrypt(ctx context.Context, r io.Reader, w io.Writer, pub *keys.PublicKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.VerifyPublicKey(pub); err != nil {
		return err
	}

	blocks, err := s.codec.EncryptStream(r, w, pub)
	if err != nil {
		return fmt.Errorf("failed to encrypt stream: %w", err)
	}

	s.logger.Info("Stream encrypted", "owner", pub.Owner, "blocks", blocks)
	return nil
}

// Decrypt decrypts the ciphertext stream r into w.
func (s *streamCipherService) Decrypt(ctx context.Context, r io.Reader, w io.Writer, priv *keys.PrivateKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	blocks, err := s.codec.DecryptStream(r, w, priv)
	if err != nil {
		return fmt.Errorf("failed to decrypt stream: %w", err)
	}

	s.logger.Info("Stream decrypted", "blocks", blocks)
	return nil
}
