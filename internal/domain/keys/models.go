package keys

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// PublicKey is the public half of a key pair together with the owner's identity signature.
type PublicKey struct {
	N     *big.Int
	E     *big.Int
	S     *big.Int
	Owner string
}

// PrivateKey holds the modulus and the private exponent.
type PrivateKey struct {
	N *big.Int
	D *big.Int
}

// KeyBundle groups everything produced by one key generation run.
type KeyBundle struct {
	P       *big.Int
	Q       *big.Int
	Public  *PublicKey
	Private *PrivateKey
}

// RSAKeyMeta is a key pair registered in the vault. Big integers are stored as lower-case hex.
type RSAKeyMeta struct {
	ID              string    `validate:"required,uuid4"`
	Owner           string    `validate:"required,alphanum,max=255"`
	KeySize         uint32    `validate:"required,rsaKeySize"`
	Modulus         string    `validate:"required,hexadecimal"`
	PublicExponent  string    `validate:"required,hexadecimal"`
	Signature       string    `validate:"required,hexadecimal"`
	PrivateExponent string    `validate:"required,hexadecimal"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating RSAKeyMeta struct
func (k *RSAKeyMeta) Validate() error {
	return validateStruct(k)
}

// PublicKey rebuilds the public key record held by the vault entry.
func (k *RSAKeyMeta) PublicKey() (*PublicKey, error) {
	n, err := parseHexField("modulus", k.Modulus)
	if err != nil {
		return nil, err
	}
	e, err := parseHexField("public exponent", k.PublicExponent)
	if err != nil {
		return nil, err
	}
	s, err := parseHexField("signature", k.Signature)
	if err != nil {
		return nil, err
	}
	return &PublicKey{N: n, E: e, S: s, Owner: k.Owner}, nil
}

// PrivateKey rebuilds the private key record held by the vault entry.
func (k *RSAKeyMeta) PrivateKey() (*PrivateKey, error) {
	n, err := parseHexField("modulus", k.Modulus)
	if err != nil {
		return nil, err
	}
	d, err := parseHexField("private exponent", k.PrivateExponent)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{N: n, D: d}, nil
}

// NewRSAKeyMeta converts a freshly generated bundle into a vault entity.
func NewRSAKeyMeta(id string, bundle *KeyBundle, created time.Time) *RSAKeyMeta {
	return &RSAKeyMeta{
		ID:              id,
		Owner:           bundle.Public.Owner,
		KeySize:         uint32(bundle.Public.N.BitLen()),
		Modulus:         bundle.Public.N.Text(16),
		PublicExponent:  bundle.Public.E.Text(16),
		Signature:       bundle.Public.S.Text(16),
		PrivateExponent: bundle.Private.D.Text(16),
		DateTimeCreated: created,
	}
}

// RSAKeyQuery filters and pages vault listings.
type RSAKeyQuery struct {
	Owner     string `validate:"omitempty,alphanum,max=255"`
	KeySize   uint32 `validate:"omitempty,rsaKeySize"`
	Limit     int    `validate:"omitempty,gt=0"`
	Offset    int    `validate:"omitempty,gte=0"`
	SortBy    string `validate:"omitempty,oneof=id owner key_size date_time_created"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewRSAKeyQuery creates an empty query
func NewRSAKeyQuery() *RSAKeyQuery {
	return &RSAKeyQuery{}
}

// Validate for validating RSAKeyQuery struct
func (q *RSAKeyQuery) Validate() error {
	return validateStruct(q)
}

func parseHexField(name, value string) (*big.Int, error) {
	x, ok := new(big.Int).SetString(value, 16)
	if !ok || x.Sign() < 0 {
		return nil, fmt.Errorf("%s %q: %w", name, value, ErrMalformedKeyRecord)
	}
	return x, nil
}

func validateStruct(s interface{}) error {
	validate, err := validators.New()
	if err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err = validate.Struct(s)
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
