package v1

import (
	"errors"
	"net/http"

	"github.com/MGTheTrain/rsa-vault/internal/domain/blobs"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, keys.ErrKeyNotFound), errors.Is(err, blobs.ErrBlobNotFound):
		return http.StatusNotFound
	case errors.Is(err, keys.ErrKeyInUse):
		return http.StatusConflict
	case errors.Is(err, keys.ErrInvalidIdentity),
		errors.Is(err, keys.ErrKeyTooSmall),
		errors.Is(err, keys.ErrSignatureMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, status int, message string) {
	var errorResponse ErrorResponse
	errorResponse.Message = message
	ctx.JSON(status, errorResponse)
}
