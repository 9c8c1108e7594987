package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Request-scoped failure conditions. Handlers compare with errors.Is.
var (
	ErrMalformedRequest  = stderrors.New("invalid request body")
	ErrAllMessagesEmpty  = stderrors.New("all messages empty")
	ErrMissingPrompt     = stderrors.New("prompt is required")
	ErrUnsupportedFormat = stderrors.New("unsupported response_format, only b64_json is available")
	ErrCredential        = stderrors.New("credential generation failed")
	ErrUpstreamRequest   = stderrors.New("upstream request failed")
	ErrCannotExtractPath = stderrors.New("cannot extract image path")
	ErrCannotResolveURL  = stderrors.New("cannot resolve final URL")
	ErrCannotDownload    = stderrors.New("cannot download image")
)

// UpstreamStatusError carries a non-200 vendor status.
type UpstreamStatusError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

func (e *UpstreamStatusError) Unwrap() error { return ErrUpstreamRequest }

type sentinelMapping struct {
	err    error
	status int
	code   string
}

var sentinelTable = []sentinelMapping{
	{ErrMalformedRequest, http.StatusBadRequest, "invalid_request"},
	{ErrAllMessagesEmpty, http.StatusBadRequest, "empty_messages"},
	{ErrMissingPrompt, http.StatusBadRequest, "missing_prompt"},
	{ErrUnsupportedFormat, http.StatusBadRequest, "unsupported_format"},
	{ErrCredential, http.StatusInternalServerError, "credential_error"},
	{ErrCannotExtractPath, http.StatusInternalServerError, "image_path_error"},
	{ErrCannotResolveURL, http.StatusInternalServerError, "image_resolve_error"},
	{ErrCannotDownload, http.StatusInternalServerError, "image_download_error"},
	{ErrUpstreamRequest, http.StatusInternalServerError, "upstream_error"},
}

// FromError converts any error into an APIError. Unknown errors become 500s.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}
	for _, m := range sentinelTable {
		if stderrors.Is(err, m.err) {
			return New(m.status, m.code, ErrorTypeInvalidRequest, err.Error())
		}
	}
	return New(http.StatusInternalServerError, "server_error", ErrorTypeInvalidRequest, err.Error())
}

// Code returns the short label used for logs and metrics.
func Code(err error) string {
	if apiErr := FromError(err); apiErr != nil {
		return apiErr.Code
	}
	return ""
}
