package cryptography

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
)

// PrivateKeyFileMode is the permission of private key files: owner read/write only.
const PrivateKeyFileMode os.FileMode = 0600

// SavePublicKeyToFile writes the public key record to filename with default permissions.
func SavePublicKeyToFile(pub *keys.PublicKey, filename string) error {
	file, err := os.Create(filepath.Clean(filename))
	if err != nil {
		return fmt.Errorf("failed to create public key file: %w", err)
	}
	defer closeFile(file)

	return WritePublicKey(file, pub)
}

// SavePrivateKeyToFile writes the private key record to filename, restricting it to
// the owner even when the file already existed with wider permissions.
func SavePrivateKeyToFile(priv *keys.PrivateKey, filename string) error {
	file, err := os.OpenFile(filepath.Clean(filename), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, PrivateKeyFileMode)
	if err != nil {
		return fmt.Errorf("failed to create private key file: %w", err)
	}
	defer closeFile(file)

	if err := file.Chmod(PrivateKeyFileMode); err != nil {
		return fmt.Errorf("failed to restrict private key file: %w", err)
	}

	return WritePrivateKey(file, priv)
}

// ReadPublicKeyFile reads a public key record from filename.
func ReadPublicKeyFile(filename string) (*keys.PublicKey, error) {
	file, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return nil, fmt.Errorf("unable to read public key file: %w", err)
	}
	defer closeFile(file)

	return ReadPublicKey(file)
}

// ReadPrivateKeyFile reads a private key record from filename.
func ReadPrivateKeyFile(filename string) (*keys.PrivateKey, error) {
	file, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return nil, fmt.Errorf("unable to read private key file: %w", err)
	}
	defer closeFile(file)

	return ReadPrivateKey(file)
}

func closeFile(file *os.File) {
	if err := file.Close(); err != nil {
		log.Printf("warning: failed to close file: %v\n", err)
	}
}
