package common

import (
	"net/http"
	"strings"

	apperrors "chaton2api-go/internal/errors"
	"github.com/gin-gonic/gin"
)

// AbortWithAPIError serializes the provided APIError and aborts the request.
func AbortWithAPIError(c *gin.Context, err *apperrors.APIError) {
	if err == nil {
		err = apperrors.New(http.StatusInternalServerError, "server_error", apperrors.ErrorTypeInvalidRequest, "unknown error")
	}
	c.Set("error_code", err.Code)

	payload, marshalErr := err.ToJSON()
	if marshalErr != nil {
		// Fallback: use a minimal OpenAI-compatible envelope.
		c.JSON(safeStatus(err.HTTPStatus), gin.H{
			"error": gin.H{
				"message": err.Message,
				"type":    apperrors.ErrorTypeInvalidRequest,
				"param":   nil,
				"code":    nil,
			},
		})
		c.Abort()
		return
	}
	c.Data(safeStatus(err.HTTPStatus), "application/json", payload)
	c.Abort()
}

// AbortWithError constructs an APIError from the provided fields and aborts the request.
func AbortWithError(c *gin.Context, status int, code, message string) {
	err := apperrors.New(safeStatus(status), firstNonEmpty(code, "server_error"), apperrors.ErrorTypeInvalidRequest, firstNonEmpty(message, "internal error"))
	AbortWithAPIError(c, err)
}

// AbortWithErr maps a domain error onto the standard body.
func AbortWithErr(c *gin.Context, err error) {
	AbortWithAPIError(c, apperrors.FromError(err))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func safeStatus(status int) int {
	if status >= 400 && status <= 599 {
		return status
	}
	return http.StatusInternalServerError
}
