package dto

import domainerr "github.com/amirhossein-jamali/countdown-timer/internal/domain/error"

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse pairs the code of err with a client-facing message.
// An empty message falls back to the error text.
func NewErrorResponse(err error, message string) ErrorResponse {
	if message == "" {
		message = err.Error()
	}
	return ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	}
}
