package models

import (
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/blobs"
)

// BlobModel is the GORM database model for blobs (infrastructure concern)
type BlobModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	DateTimeCreated time.Time `gorm:"not null"`
	Owner           string    `gorm:"not null;index;type:varchar(255)"`
	Name            string    `gorm:"not null;type:varchar(255)"`
	Size            int64     `gorm:"not null"`
	Blocks          int       `gorm:"not null"`
	EncryptionKeyID string    `gorm:"not null;type:uuid;index"`
	Ciphertext      []byte
}

// TableName specifies the table name for GORM
func (BlobModel) TableName() string {
	return "blobs"
}

// ToDomain converts GORM model to domain entity
func (m *BlobModel) ToDomain() *blobs.BlobMeta {
	return &blobs.BlobMeta{
		ID:              m.ID,
		DateTimeCreated: m.DateTimeCreated,
		Owner:           m.Owner,
		Name:            m.Name,
		Size:            m.Size,
		Blocks:          m.Blocks,
		EncryptionKeyID: m.EncryptionKeyID,
	}
}

// FromDomain converts domain entity to GORM model
func (m *BlobModel) FromDomain(b *blobs.BlobMeta, ciphertext []byte) {
	m.ID = b.ID
	m.DateTimeCreated = b.DateTimeCreated
	m.Owner = b.Owner
	m.Name = b.Name
	m.Size = b.Size
	m.Blocks = b.Blocks
	m.EncryptionKeyID = b.EncryptionKeyID
	m.Ciphertext = ciphertext
}
