package errors

import (
	"encoding/json"
	"net/http"
)

// ToJSON renders the OpenAI-compatible envelope.
func (e *APIError) ToJSON() ([]byte, error) {
	errObj := OpenAIError{}
	errObj.Error.Message = e.Message
	errObj.Error.Type = e.Type
	if errObj.Error.Type == "" {
		errObj.Error.Type = ErrorTypeInvalidRequest
	}
	return json.Marshal(errObj)
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func New(httpStatus int, code, errType, message string) *APIError {
	return &APIError{HTTPStatus: httpStatus, Code: code, Type: errType, Message: message}
}

func (e *APIError) WithDetails(details map[string]interface{}) *APIError {
	e.Details = details
	return e
}

// IsClientError reports whether the failure was caused by the request itself.
func (e *APIError) IsClientError() bool {
	return e.HTTPStatus >= http.StatusBadRequest && e.HTTPStatus < http.StatusInternalServerError
}
