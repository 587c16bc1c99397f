//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestSetupRoutes_RoutesRegistered verifies that routes are properly registered
func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockBlobUploadService := new(MockBlobUploadService)
	mockBlobDownloadService := new(MockBlobDownloadService)
	mockBlobMetadataService := new(MockBlobMetadataService)
	mockCryptoKeyUploadService := new(MockCryptoKeyUploadService)
	mockCryptoKeyDownloadService := new(MockCryptoKeyDownloadService)
	mockCryptoKeyMetadataService := new(MockCryptoKeyMetadataService)

	r := gin.New()
	SetupRoutes(r, mockBlobUploadService, mockBlobDownloadService, mockBlobMetadataService, mockCryptoKeyUploadService, mockCryptoKeyDownloadService, mockCryptoKeyMetadataService)

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/rsa/blobs",
		"GET /api/v1/rsa/blobs",
		"GET /api/v1/rsa/blobs/:id",
		"GET /api/v1/rsa/blobs/:id/file",
		"DELETE /api/v1/rsa/blobs/:id",
		"POST /api/v1/rsa/keys",
		"GET /api/v1/rsa/keys",
		"GET /api/v1/rsa/keys/:id",
		"GET /api/v1/rsa/keys/:id/file",
		"DELETE /api/v1/rsa/keys/:id",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "route %s should be registered", route)
	}
	assert.Len(t, r.Routes(), len(expected))
}

func TestSetupRoutes_ServeHTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockCryptoKeyMetadataService := new(MockCryptoKeyMetadataService)
	mockCryptoKeyMetadataService.On("List", mock.Anything, mock.Anything).Return([]*keys.RSAKeyMeta{}, nil)
	mockCryptoKeyMetadataService.On("GetByID", mock.Anything, "missing").Return(nil, keys.ErrKeyNotFound)

	r := gin.New()
	SetupRoutes(r, new(MockBlobUploadService), new(MockBlobDownloadService), new(MockBlobMetadataService),
		new(MockCryptoKeyUploadService), new(MockCryptoKeyDownloadService), mockCryptoKeyMetadataService)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"GET", "/api/v1/rsa/keys", http.StatusOK},
		{"GET", "/api/v1/rsa/keys/missing", http.StatusNotFound},
		{"POST", "/api/v1/rsa/keys", http.StatusBadRequest},
		{"POST", "/api/v1/rsa/blobs", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
