package handler

import (
	"errors"
	"net/http"

	"communehub/internal/pkg"

	"github.com/gin-gonic/gin"
)

// statusOf maps service error kinds onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, pkg.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pkg.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, pkg.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, pkg.ErrInvalidState), errors.Is(err, pkg.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, pkg.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"msg": err.Error()})
}

func userIDFromCtx(c *gin.Context) uint64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}
