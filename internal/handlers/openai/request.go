package openai

import (
	"fmt"
	"io"
	"net/http"

	"chaton2api-go/internal/constants"
	apperrors "chaton2api-go/internal/errors"
	"github.com/gin-gonic/gin"
)

func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, fmt.Errorf("%w: empty body", apperrors.ErrMalformedRequest)
	}
	body := http.MaxBytesReader(c.Writer, c.Request.Body, constants.MaxRequestBodyBytes)
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedRequest, err)
	}
	return raw, nil
}

func routePath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}
