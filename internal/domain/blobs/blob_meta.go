package blobs

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrBlobNotFound is returned by repositories when no blob matches the given ID.
var ErrBlobNotFound = errors.New("blob not found")

// BlobMeta entity. The ciphertext body is stored alongside but never loaded with the metadata.
type BlobMeta struct {
	ID              string    `validate:"required,uuid4"`
	DateTimeCreated time.Time `validate:"required"`
	Owner           string    `validate:"required,alphanum,max=255"`
	Name            string    `validate:"required,min=1,max=255"`
	Size            int64     `validate:"gte=0"`
	Blocks          int       `validate:"gte=0"`
	EncryptionKeyID string    `validate:"required,uuid4"`
}

// Validate for validating BlobMeta struct
func (b *BlobMeta) Validate() error {
	return validateStruct(b)
}

// BlobMetaQuery filters and pages blob listings.
type BlobMetaQuery struct {
	Name            string    `validate:"omitempty,max=255"`
	Owner           string    `validate:"omitempty,alphanum,max=255"`
	EncryptionKeyID string    `validate:"omitempty,uuid4"`
	DateTimeCreated time.Time `validate:"omitempty"`
	Limit           int       `validate:"omitempty,gt=0"`
	Offset          int       `validate:"omitempty,gte=0"`
	SortBy          string    `validate:"omitempty,oneof=id name size date_time_created"`
	SortOrder       string    `validate:"omitempty,oneof=asc desc"`
}

// NewBlobMetaQuery creates an empty query
func NewBlobMetaQuery() *BlobMetaQuery {
	return &BlobMetaQuery{}
}

// Validate for validating BlobMetaQuery struct
func (q *BlobMetaQuery) Validate() error {
	return validateStruct(q)
}

func validateStruct(s interface{}) error {
	validate := validator.New()

	err := validate.Struct(s)
	if err != nil {
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
