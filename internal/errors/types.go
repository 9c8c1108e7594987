package errors

// ErrorTypeInvalidRequest is the only error type this gateway reports.
const ErrorTypeInvalidRequest = "invalid_request_error"

// APIError represents a standardized error returned to clients.
type APIError struct {
	HTTPStatus int
	Code       string
	Message    string
	Type       string
	Details    map[string]interface{}
}

// OpenAIError mirrors OpenAI's error envelope. Param and Code are always null on the wire.
type OpenAIError struct {
	Error struct {
		Message string  `json:"message"`
		Type    string  `json:"type"`
		Param   *string `json:"param"`
		Code    *string `json:"code"`
	} `json:"error"`
}
