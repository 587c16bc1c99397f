//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/blobs"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadKeyRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   UploadKeyRequest
		shouldErr bool
	}{
		{"Valid defaults", UploadKeyRequest{Owner: "alice"}, false},
		{"Valid 256", UploadKeyRequest{Owner: "alice", KeySize: 256, Iterations: 50}, false},
		{"Valid odd size", UploadKeyRequest{Owner: "Bob42", KeySize: 1001}, false},
		{"Missing owner", UploadKeyRequest{KeySize: 256}, true},
		{"Owner with space", UploadKeyRequest{Owner: "bob smith"}, true},
		{"Key size too small", UploadKeyRequest{Owner: "alice", KeySize: 16}, true},
		{"Key size too large", UploadKeyRequest{Owner: "alice", KeySize: 16384}, true},
		{"Largest REST key size", UploadKeyRequest{Owner: "alice", KeySize: 2048}, false},
		{"Above REST key size cap", UploadKeyRequest{Owner: "alice", KeySize: 4096}, true},
		{"Single iteration", UploadKeyRequest{Owner: "alice", Iterations: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestNewRSAKeyMetaResponse_OmitsPrivateExponent(t *testing.T) {
	keyMeta := &keys.RSAKeyMeta{
		ID:              "7f3c2a4e-8d61-4b0f-9a55-2c1e6d7b8a90",
		Owner:           "alice",
		KeySize:         12,
		Modulus:         "ca1",
		PublicExponent:  "11",
		Signature:       "357",
		PrivateExponent: "ac1",
		DateTimeCreated: time.Now(),
	}

	response := NewRSAKeyMetaResponse(keyMeta)
	assert.Equal(t, keyMeta.ID, response.ID)
	assert.Equal(t, "ca1", response.Modulus)

	body, err := json.Marshal(response)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "ac1")
	assert.NotContains(t, string(body), "private")
}

func TestNewBlobMetaResponse(t *testing.T) {
	blobMeta := &blobs.BlobMeta{
		ID:              "blob-123",
		Owner:           "alice",
		Name:            "test.pdf",
		Size:            1024,
		Blocks:          35,
		EncryptionKeyID: "key-123",
	}

	response := NewBlobMetaResponse(blobMeta)
	require.Equal(t, "blob-123", response.ID)
	require.Equal(t, "test.pdf", response.Name)
	require.Equal(t, 35, response.Blocks)
	require.Equal(t, "key-123", response.EncryptionKeyID)
}

func TestErrorResponse_Creation(t *testing.T) {
	errResp := ErrorResponse{
		Message: "Test error",
	}

	body, err := json.Marshal(errResp)
	require.NoError(t, err)
	require.JSONEq(t, `{"message": "Test error"}`, string(body))
}
