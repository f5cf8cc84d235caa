package handler

import (
	"errors"
	"io"
	"net/http"

	"nexora-chat/internal/transport/httpdto"
	nexora_errors "nexora-chat/pkg/errors"

	"github.com/gin-gonic/gin"
)

// responder maps service errors onto status codes and the error envelope.
// Storage details are only exposed when debug is set.
type responder struct {
	debug bool
}

func (r responder) fail(c *gin.Context, err error) {
	var vErr *nexora_errors.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(vErr.Message, "VALIDATION_ERROR"))
	case errors.Is(err, nexora_errors.ErrInvalidIdentifier):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Invalid user id", "INVALID_IDENTIFIER"))
	case errors.Is(err, nexora_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("User not found", "USER_NOT_FOUND"))
	default:
		_ = c.Error(err)
		resp := httpdto.NewErrorResponse("Server error", "STORAGE_ERROR")
		if r.debug {
			resp = resp.WithDetail(err.Error())
		}
		c.JSON(http.StatusInternalServerError, resp)
	}
}

// bindJSON decodes the request body into dst. An empty body leaves dst at
// its zero value so field presence checks report the missing field.
func (r responder) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Invalid request body", "VALIDATION_ERROR"))
		return false
	}
	return true
}
