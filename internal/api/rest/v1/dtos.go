package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/blobs"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// UploadKeyRequest is the body of a key generation request.
// KeySize and Iterations fall back to the server defaults when omitted.
// Keys are generated inside the request, so KeySize is capped below the CLI maximum.
type UploadKeyRequest struct {
	Owner      string `json:"owner" validate:"required,alphanum,max=255"`
	KeySize    uint32 `json:"key_size" validate:"omitempty,rsaKeySize,lte=2048"`
	Iterations uint64 `json:"iterations" validate:"omitempty,gte=2,lte=1000"`
}

// Validate for validating UploadKeyRequest struct
func (r *UploadKeyRequest) Validate() error {
	validate, err := validators.New()
	if err != nil {
		return fmt.Errorf("failed to create validator: %w", err)
	}

	if err := validate.Struct(r); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// RSAKeyMetaResponse exposes the public half of a vault entry. The private exponent never leaves the server.
type RSAKeyMetaResponse struct {
	ID              string    `json:"id"`
	Owner           string    `json:"owner"`
	KeySize         uint32    `json:"key_size"`
	Modulus         string    `json:"modulus"`
	PublicExponent  string    `json:"public_exponent"`
	Signature       string    `json:"signature"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

// NewRSAKeyMetaResponse maps a vault entry to its response body
func NewRSAKeyMetaResponse(k *keys.RSAKeyMeta) RSAKeyMetaResponse {
	return RSAKeyMetaResponse{
		ID:              k.ID,
		Owner:           k.Owner,
		KeySize:         k.KeySize,
		Modulus:         k.Modulus,
		PublicExponent:  k.PublicExponent,
		Signature:       k.Signature,
		DateTimeCreated: k.DateTimeCreated,
	}
}

// BlobMetaResponse describes a stored ciphertext blob
type BlobMetaResponse struct {
	ID              string    `json:"id"`
	DateTimeCreated time.Time `json:"date_time_created"`
	Owner           string    `json:"owner"`
	Name            string    `json:"name"`
	Size            int64     `json:"size"`
	Blocks          int       `json:"blocks"`
	EncryptionKeyID string    `json:"encryption_key_id"`
}

// NewBlobMetaResponse maps blob metadata to its response body
func NewBlobMetaResponse(b *blobs.BlobMeta) BlobMetaResponse {
	return BlobMetaResponse{
		ID:              b.ID,
		DateTimeCreated: b.DateTimeCreated,
		Owner:           b.Owner,
		Name:            b.Name,
		Size:            b.Size,
		Blocks:          b.Blocks,
		EncryptionKeyID: b.EncryptionKeyID,
	}
}
