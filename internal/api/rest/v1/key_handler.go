package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// KeyHandler defines the interface for handling key-related operations
type KeyHandler interface {
	UploadKeys(ctx *gin.Context)
	ListMetadata(ctx *gin.Context)
	GetMetadataByID(ctx *gin.Context)
	DownloadByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// keyHandler struct holds the services
type keyHandler struct {
	cryptoKeyUploadService   keys.CryptoKeyUploadService
	cryptoKeyDownloadService keys.CryptoKeyDownloadService
	cryptoKeyMetadataService keys.CryptoKeyMetadataService
}

// NewKeyHandler creates a new KeyHandler
func NewKeyHandler(cryptoKeyUploadService keys.CryptoKeyUploadService, cryptoKeyDownloadService keys.CryptoKeyDownloadService, cryptoKeyMetadataService keys.CryptoKeyMetadataService) KeyHandler {
	return &keyHandler{
		cryptoKeyUploadService:   cryptoKeyUploadService,
		cryptoKeyDownloadService: cryptoKeyDownloadService,
		cryptoKeyMetadataService: cryptoKeyMetadataService,
	}
}

// UploadKeys handles the POST request to generate and register a signed RSA key pair
// @Summary Generate an RSA key pair
// @Description Generate a key pair for the owner, sign the owner identity and store the pair in the vault.
// @Tags Key
// @Accept json
// @Produce json
// @Param requestBody body UploadKeyRequest true "Key generation parameters"
// @Success 201 {object} RSAKeyMetaResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [post]
func (handler *keyHandler) UploadKeys(ctx *gin.Context) {
	var request UploadKeyRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid key data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if request.KeySize == 0 {
		request.KeySize = config.DefaultKeySize
	}

	keyMeta, err := handler.cryptoKeyUploadService.Upload(ctx, request.Owner, request.KeySize, request.Iterations)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("error uploading key: %v", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, NewRSAKeyMetaResponse(keyMeta))
}

// ListMetadata handles the GET request to list vault entries with optional query parameters
// @Summary List RSA key metadata
// @Tags Key
// @Produce json
// @Param owner query string false "Key owner"
// @Param keySize query int false "Modulus size in bits"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} RSAKeyMetaResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [get]
func (handler *keyHandler) ListMetadata(ctx *gin.Context) {
	query := keys.NewRSAKeyQuery()

	if owner := ctx.Query("owner"); len(owner) > 0 {
		query.Owner = owner
	}

	if keySize := ctx.Query("keySize"); len(keySize) > 0 {
		size, err := strconv.ParseUint(keySize, 10, 32)
		if err != nil {
			abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid keySize: %s", keySize))
			return
		}
		query.KeySize = uint32(size)
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

	keyMetas, err := handler.cryptoKeyMetadataService.List(ctx, query)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("list query failed: %v", err.Error()))
		return
	}

	var listResponse = []RSAKeyMetaResponse{}
	for _, keyMeta := range keyMetas {
		listResponse = append(listResponse, NewRSAKeyMetaResponse(keyMeta))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetMetadataByID handles the GET request to retrieve a vault entry by ID
// @Summary Retrieve RSA key metadata by ID
// @Tags Key
// @Produce json
// @Param id path string true "Key ID"
// @Success 200 {object} RSAKeyMetaResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [get]
func (handler *keyHandler) GetMetadataByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	keyMeta, err := handler.cryptoKeyMetadataService.GetByID(ctx, keyID)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("key with id %s: %v", keyID, err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, NewRSAKeyMetaResponse(keyMeta))
}

// DownloadByID handles the GET request to export the public key record of a vault entry
// @Summary Download the public key record by ID
// @Description The record holds modulus, public exponent and signature as hex lines followed by the owner.
// @Tags Key
// @Produce plain
// @Param id path string true "Key ID"
// @Success 200 {file} file "Public key record"
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id}/file [get]
func (handler *keyHandler) DownloadByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	record, err := handler.cryptoKeyDownloadService.DownloadPublicByID(ctx, keyID)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("could not download key with id %s: %v", keyID, err.Error()))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pub", keyID))
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", record)
}

// DeleteByID handles the DELETE request to remove a vault entry by ID
// @Summary Delete an RSA key by ID
// @Description Keys that stored blobs are still encrypted with cannot be deleted.
// @Tags Key
// @Param id path string true "Key ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /keys/{id} [delete]
func (handler *keyHandler) DeleteByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	if err := handler.cryptoKeyMetadataService.DeleteByID(ctx, keyID); err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("error deleting key with id %s: %v", keyID, err.Error()))
		return
	}

	ctx.Status(http.StatusNoContent)
	ctx.Writer.WriteHeaderNow()
}

// parsePaging reads the limit and offset query parameters. It writes a 400 response and returns false on bad input.
func parsePaging(ctx *gin.Context) (int, int, bool) {
	var limit, offset int
	var err error

	if raw := ctx.Query("limit"); len(raw) > 0 {
		if limit, err = strconv.Atoi(raw); err != nil {
			abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid limit: %s", raw))
			return 0, 0, false
		}
	}

	if raw := ctx.Query("offset"); len(raw) > 0 {
		if offset, err = strconv.Atoi(raw); err != nil {
			abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid offset: %s", raw))
			return 0, 0, false
		}
	}

	return limit, offset, true
}
