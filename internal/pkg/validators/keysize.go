package validators

import (
	"github.com/go-playground/validator/v10"
)

// MinRSAKeySize is the smallest modulus size that still leaves a one-byte payload per stream block.
const MinRSAKeySize = 32

// MaxRSAKeySize bounds key generation time for requests coming from the outside.
const MaxRSAKeySize = 8192

// RSAKeySizeTag is the tag name under which RSAKeySizeValidation is registered.
const RSAKeySizeTag = "rsaKeySize"

// RSAKeySizeValidation validates the modulus bit length of an RSA key.
// Zero is accepted so the rule can be combined with omitempty or required.
func RSAKeySizeValidation(fl validator.FieldLevel) bool {
	keySize := fl.Field().Uint()
	if keySize == 0 {
		return true
	}
	return keySize >= MinRSAKeySize && keySize <= MaxRSAKeySize
}

// New returns a validator with the custom rules of this module registered.
func New() (*validator.Validate, error) {
	validate := validator.New()
	if err := validate.RegisterValidation(RSAKeySizeTag, RSAKeySizeValidation); err != nil {
		return nil, err
	}
	return validate, nil
}
