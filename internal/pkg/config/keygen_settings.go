package config

import (
	"fmt"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/validators"
)

// Key generation defaults, matching the historical keygen front-end.
const (
	DefaultKeySize    = 256
	DefaultIterations = 50
	DefaultPublicKey  = "rsa.pub"
	DefaultPrivateKey = "rsa.priv"
)

// KeygenSettings holds the parameters of RSA key generation.
// The REST server reads a zero Seed as "seed from the clock"; the CLI only does so when no seed was given.
type KeygenSettings struct {
	KeySize    uint64 `mapstructure:"key_size" validate:"required,rsaKeySize"`
	Iterations uint64 `mapstructure:"iterations" validate:"required,min=2,max=1000"`
	Seed       uint64 `mapstructure:"seed"`
}

// NewKeygenSettings returns the default key generation settings.
func NewKeygenSettings() *KeygenSettings {
	return &KeygenSettings{
		KeySize:    DefaultKeySize,
		Iterations: DefaultIterations,
	}
}

// Validate checks that all fields in KeygenSettings are valid
func (s *KeygenSettings) Validate() error {
	validate, err := validators.New()
	if err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for KeygenSettings: %w", err)
	}
	return nil
}
