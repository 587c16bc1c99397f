package models

import (
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
)

// RSAKeyModel is the GORM database model for vault keys (infrastructure concern)
type RSAKeyModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Owner           string    `gorm:"not null;index;type:varchar(255)"`
	KeySize         uint32    `gorm:"not null;type:integer"`
	Modulus         string    `gorm:"not null;type:text"`
	PublicExponent  string    `gorm:"not null;type:text"`
	Signature       string    `gorm:"not null;type:text"`
	PrivateExponent string    `gorm:"not null;type:text"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (RSAKeyModel) TableName() string {
	return "rsa_keys"
}

// ToDomain converts GORM model to domain entity
func (m *RSAKeyModel) ToDomain() *keys.RSAKeyMeta {
	return &keys.RSAKeyMeta{
		ID:              m.ID,
		Owner:           m.Owner,
		KeySize:         m.KeySize,
		Modulus:         m.Modulus,
		PublicExponent:  m.PublicExponent,
		Signature:       m.Signature,
		PrivateExponent: m.PrivateExponent,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *RSAKeyModel) FromDomain(k *keys.RSAKeyMeta) {
	m.ID = k.ID
	m.Owner = k.Owner
	m.KeySize = k.KeySize
	m.Modulus = k.Modulus
	m.PublicExponent = k.PublicExponent
	m.Signature = k.Signature
	m.PrivateExponent = k.PrivateExponent
	m.DateTimeCreated = k.DateTimeCreated
}
