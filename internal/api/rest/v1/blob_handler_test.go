//go:build unit
// +build unit

package v1

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/blobs"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testBlobID = "0b9d1c3e-5f27-4a68-8e14-6d2f3a9c7b51"

type blobHandlerMocks struct {
	upload   *MockBlobUploadService
	download *MockBlobDownloadService
	metadata *MockBlobMetadataService
}

func setupBlobHandler() (BlobHandler, *blobHandlerMocks) {
	gin.SetMode(gin.TestMode)

	mocks := &blobHandlerMocks{
		upload:   new(MockBlobUploadService),
		download: new(MockBlobDownloadService),
		metadata: new(MockBlobMetadataService),
	}
	return NewBlobHandler(mocks.upload, mocks.download, mocks.metadata), mocks
}

func newTestBlobMeta() *blobs.BlobMeta {
	return &blobs.BlobMeta{
		ID:              testBlobID,
		DateTimeCreated: time.Now(),
		Owner:           "alice",
		Name:            "testfile.txt",
		Size:            27,
		Blocks:          1,
		EncryptionKeyID: testKeyID,
	}
}

func newBlobContext(method, url string, body *bytes.Buffer, contentType, id string) (*gin.Context, *httptest.ResponseRecorder) {
	if body == nil {
		body = &bytes.Buffer{}
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if id != "" {
		c.Params = gin.Params{{Key: "id", Value: id}}
	}
	return c, w
}

func TestBlobHandler_Upload_Success(t *testing.T) {
	handler, mocks := setupBlobHandler()

	fileContent := []byte("This is a test file content")
	mocks.upload.
		On("Upload", mock.Anything, "testfile.txt", "", fileContent, testKeyID).
		Return(newTestBlobMeta(), nil)

	body, contentType := testutil.CreateMultipartBody(t, "file", "testfile.txt", fileContent,
		map[string]string{"encryption_key_id": testKeyID})

	c, w := newBlobContext("POST", "/blobs", body, contentType, "")
	handler.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), testBlobID)
	mocks.upload.AssertExpectations(t)
}

func TestBlobHandler_Upload_WithOwner(t *testing.T) {
	handler, mocks := setupBlobHandler()

	fileContent := []byte("HELLO")
	mocks.upload.
		On("Upload", mock.Anything, "hello.txt", "bob", fileContent, testKeyID).
		Return(newTestBlobMeta(), nil)

	body, contentType := testutil.CreateMultipartBody(t, "file", "hello.txt", fileContent,
		map[string]string{"encryption_key_id": testKeyID, "owner": "bob"})

	c, w := newBlobContext("POST", "/blobs", body, contentType, "")
	handler.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mocks.upload.AssertExpectations(t)
}

func TestBlobHandler_Upload_InvalidData_Error(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		values   map[string]string
	}{
		{"Missing file", "", map[string]string{"encryption_key_id": testKeyID}},
		{"Missing key id", "testfile.txt", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := setupBlobHandler()

			body, contentType := testutil.CreateMultipartBody(t, "file", tt.fileName, []byte("data"), tt.values)
			c, w := newBlobContext("POST", "/blobs", body, contentType, "")
			handler.Upload(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mocks.upload.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBlobHandler_Upload_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"Unknown key", fmt.Errorf("failed to get encryption key: %w", keys.ErrKeyNotFound), http.StatusNotFound},
		{"Invalid signature", fmt.Errorf("public key of alice: %w", keys.ErrSignatureMismatch), http.StatusBadRequest},
		{"Storage failure", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := setupBlobHandler()
			mocks.upload.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			body, contentType := testutil.CreateMultipartBody(t, "file", "testfile.txt", []byte("data"),
				map[string]string{"encryption_key_id": testKeyID})
			c, w := newBlobContext("POST", "/blobs", body, contentType, "")
			handler.Upload(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestBlobHandler_ListMetadata_Success(t *testing.T) {
	handler, mocks := setupBlobHandler()

	mocks.metadata.
		On("List", mock.Anything, mock.MatchedBy(func(q *blobs.BlobMetaQuery) bool {
			return q.Name == "testfile" && q.EncryptionKeyID == testKeyID && q.Offset == 5
		})).
		Return([]*blobs.BlobMeta{newTestBlobMeta()}, nil)

	c, w := newBlobContext("GET", "/blobs?name=testfile&encryptionKeyId="+testKeyID+"&offset=5", nil, "", "")
	handler.ListMetadata(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testBlobID)
	mocks.metadata.AssertExpectations(t)
}

func TestBlobHandler_ListMetadata_ValidationError(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"Unknown sort field", "/blobs?sortBy=ciphertext"},
		{"Malformed key id", "/blobs?encryptionKeyId=not-a-uuid"},
		{"Non numeric limit", "/blobs?limit=all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := setupBlobHandler()

			c, w := newBlobContext("GET", tt.url, nil, "", "")
			handler.ListMetadata(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mocks.metadata.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestBlobHandler_GetMetadataByID_Success(t *testing.T) {
	handler, mocks := setupBlobHandler()
	mocks.metadata.On("GetByID", mock.Anything, testBlobID).Return(newTestBlobMeta(), nil)

	c, w := newBlobContext("GET", "/blobs/"+testBlobID, nil, "", testBlobID)
	handler.GetMetadataByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"blocks":1`)
}

func TestBlobHandler_GetMetadataByID_Error(t *testing.T) {
	handler, mocks := setupBlobHandler()
	mocks.metadata.On("GetByID", mock.Anything, testBlobID).Return(nil, blobs.ErrBlobNotFound)

	c, w := newBlobContext("GET", "/blobs/"+testBlobID, nil, "", testBlobID)
	handler.GetMetadataByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBlobHandler_DownloadByID_Success(t *testing.T) {
	handler, mocks := setupBlobHandler()
	mocks.metadata.On("GetByID", mock.Anything, testBlobID).Return(newTestBlobMeta(), nil)
	mocks.download.On("DownloadByID", mock.Anything, testBlobID).Return([]byte("HELLO"), nil)

	c, w := newBlobContext("GET", "/blobs/"+testBlobID+"/file", nil, "", testBlobID)
	handler.DownloadByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HELLO", w.Body.String())
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "testfile.txt")
}

func TestBlobHandler_DownloadByID_DownloadError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"Key deleted", fmt.Errorf("failed to get decryption key: %w", keys.ErrKeyNotFound), http.StatusNotFound},
		{"Corrupted ciphertext", fmt.Errorf("line 3: %w", keys.ErrStreamFormat), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := setupBlobHandler()
			mocks.metadata.On("GetByID", mock.Anything, testBlobID).Return(newTestBlobMeta(), nil)
			mocks.download.On("DownloadByID", mock.Anything, testBlobID).Return(nil, tt.err)

			c, w := newBlobContext("GET", "/blobs/"+testBlobID+"/file", nil, "", testBlobID)
			handler.DownloadByID(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestBlobHandler_DeleteByID_Success(t *testing.T) {
	handler, mocks := setupBlobHandler()
	mocks.metadata.On("DeleteByID", mock.Anything, testBlobID).Return(nil)

	c, w := newBlobContext("DELETE", "/blobs/"+testBlobID, nil, "", testBlobID)
	handler.DeleteByID(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mocks.metadata.AssertExpectations(t)
}

func TestBlobHandler_DeleteByID_Error(t *testing.T) {
	handler, mocks := setupBlobHandler()
	mocks.metadata.On("DeleteByID", mock.Anything, testBlobID).Return(fmt.Errorf("failed to delete blob: %w", blobs.ErrBlobNotFound))

	c, w := newBlobContext("DELETE", "/blobs/"+testBlobID, nil, "", testBlobID)
	handler.DeleteByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
