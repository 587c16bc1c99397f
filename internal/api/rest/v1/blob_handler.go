package v1

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/blobs"

	"github.com/gin-gonic/gin"
)

// maxUploadSize bounds the multipart body accepted by Upload
const maxUploadSize = 32 << 20

// BlobHandler defines the interface for handling blob-related operations
type BlobHandler interface {
	Upload(ctx *gin.Context)
	ListMetadata(ctx *gin.Context)
	GetMetadataByID(ctx *gin.Context)
	DownloadByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// blobHandler struct holds the services
type blobHandler struct {
	blobUploadService   blobs.BlobUploadService
	blobMetadataService blobs.BlobMetadataService
	blobDownloadService blobs.BlobDownloadService
}

// NewBlobHandler creates a new BlobHandler
func NewBlobHandler(blobUploadService blobs.BlobUploadService, blobDownloadService blobs.BlobDownloadService, blobMetadataService blobs.BlobMetadataService) BlobHandler {
	return &blobHandler{
		blobUploadService:   blobUploadService,
		blobDownloadService: blobDownloadService,
		blobMetadataService: blobMetadataService,
	}
}

// Upload encrypts the uploaded file with a vault key and stores the ciphertext
// @Summary Upload and encrypt a blob
// @Tags Blob
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Payload"
// @Param encryption_key_id formData string true "Vault key ID"
// @Param owner formData string false "Blob owner, defaults to the key owner"
// @Success 201 {object} BlobMetaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /blobs [post]
func (handler *blobHandler) Upload(ctx *gin.Context) {
	if ctx.Request.Body != nil {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxUploadSize)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, "invalid form data: missing file")
		return
	}

	encryptionKeyID := ctx.PostForm("encryption_key_id")
	if len(encryptionKeyID) == 0 {
		abortWithError(ctx, http.StatusBadRequest, "invalid form data: missing encryption_key_id")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("could not open file: %v", err.Error()))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("could not read file: %v", err.Error()))
		return
	}

	blobMeta, err := handler.blobUploadService.Upload(ctx, fileHeader.Filename, ctx.PostForm("owner"), data, encryptionKeyID)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("error uploading blob: %v", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, NewBlobMetaResponse(blobMeta))
}

// ListMetadata fetches blobs metadata optionally with query parameters
// @Summary List blob metadata
// @Tags Blob
// @Produce json
// @Param name query string false "Blob name"
// @Param owner query string false "Blob owner"
// @Param encryptionKeyId query string false "Vault key ID"
// @Param dateTimeCreated query string false "Creation date (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} BlobMetaResponse
// @Failure 400 {object} ErrorResponse
// @Router /blobs [get]
func (handler *blobHandler) ListMetadata(ctx *gin.Context) {
	query := blobs.NewBlobMetaQuery()

	if blobName := ctx.Query("name"); len(blobName) > 0 {
		query.Name = blobName
	}

	if owner := ctx.Query("owner"); len(owner) > 0 {
		query.Owner = owner
	}

	if encryptionKeyID := ctx.Query("encryptionKeyId"); len(encryptionKeyID) > 0 {
		query.EncryptionKeyID = encryptionKeyID
	}

	if dateTimeCreated := ctx.Query("dateTimeCreated"); len(dateTimeCreated) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, dateTimeCreated)
		if err == nil {
			query.DateTimeCreated = parsedTime
		}
	}

	limit, offset, ok := parsePaging(ctx)
	if !ok {
		return
	}
	query.Limit = limit
	query.Offset = offset

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	blobMetas, err := handler.blobMetadataService.List(ctx, query)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("list query failed: %v", err.Error()))
		return
	}

	var listResponse = []BlobMetaResponse{}
	for _, blobMeta := range blobMetas {
		listResponse = append(listResponse, NewBlobMetaResponse(blobMeta))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetMetadataByID fetches blob metadata by ID
// @Summary Retrieve blob metadata by ID
// @Tags Blob
// @Produce json
// @Param id path string true "Blob ID"
// @Success 200 {object} BlobMetaResponse
// @Failure 404 {object} ErrorResponse
// @Router /blobs/{id} [get]
func (handler *blobHandler) GetMetadataByID(ctx *gin.Context) {
	blobID := ctx.Param("id")

	blobMeta, err := handler.blobMetadataService.GetByID(ctx, blobID)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("blob with id %s: %v", blobID, err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, NewBlobMetaResponse(blobMeta))
}

// DownloadByID decrypts a stored blob and returns the plaintext
// @Summary Download and decrypt a blob by ID
// @Tags Blob
// @Produce octet-stream
// @Param id path string true "Blob ID"
// @Success 200 {file} file "Decrypted payload"
// @Failure 404 {object} ErrorResponse
// @Router /blobs/{id}/file [get]
func (handler *blobHandler) DownloadByID(ctx *gin.Context) {
	blobID := ctx.Param("id")

	blobMeta, err := handler.blobMetadataService.GetByID(ctx, blobID)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("blob with id %s: %v", blobID, err.Error()))
		return
	}

	plaintext, err := handler.blobDownloadService.DownloadByID(ctx, blobID)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("could not download blob with id %s: %v", blobID, err.Error()))
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+blobMeta.Name)
	ctx.Data(http.StatusOK, "application/octet-stream", plaintext)
}

// DeleteByID deletes a blob by ID
// @Summary Delete a blob by ID
// @Tags Blob
// @Param id path string true "Blob ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /blobs/{id} [delete]
func (handler *blobHandler) DeleteByID(ctx *gin.Context) {
	blobID := ctx.Param("id")

	if err := handler.blobMetadataService.DeleteByID(ctx, blobID); err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("error deleting blob with id %s: %v", blobID, err.Error()))
		return
	}

	ctx.Status(http.StatusNoContent)
	ctx.Writer.WriteHeaderNow()
}
