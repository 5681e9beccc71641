package httpx

import (
	"log"
	"net/http"

	"github.com/jesb1n/immich/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// WriteServiceError writes a standardized HTTP error response for service-layer errors.
// Errors that are not ServiceError, or carry a wrapped cause, are logged before replying.
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	serviceErr, ok := service.AsServiceError(err)
	if !ok {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMessage})
		return
	}
	if serviceErr.Err != nil {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), serviceErr)
	}
	c.JSON(ServiceErrorStatus(serviceErr.Code), gin.H{"error": serviceErr.Message})
}

func ServiceErrorStatus(code service.ErrorCode) int {
	switch code {
	case service.ErrorCodeValidation:
		return http.StatusBadRequest
	case service.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case service.ErrorCodeForbidden:
		return http.StatusForbidden
	case service.ErrorCodeConflict:
		return http.StatusConflict
	case service.ErrorCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
