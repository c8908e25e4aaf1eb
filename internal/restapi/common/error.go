package common

type APIErrorMessage string

const (
	AuthUnauthorizedMessage  APIErrorMessage = "auth.unauthorized"
	AuthForbiddenMessage     APIErrorMessage = "auth.forbidden"
	RequestParseErrorMessage APIErrorMessage = "request.parse.failed"
	RequestConflictMessage   APIErrorMessage = "request.conflict"
	PaymentNotFoundMessage   APIErrorMessage = "payment.notfound"
	InternalErrorMessage     APIErrorMessage = "http.error.internal"
	UnknownErrorMessage      APIErrorMessage = "http.error.unknown"
)

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Success   bool            `json:"success"`
	Error     string          `json:"error"`
	Message   APIErrorMessage `json:"message"`
	RequestID string          `json:"requestid"`
}

// NewErrorResponse uses details as the human readable error if present, otherwise the message key.
func NewErrorResponse(reqID string, message APIErrorMessage, details string) *ErrorResponse {
	text := details
	if text == "" {
		text = string(message)
	}

	return &ErrorResponse{
		Success:   false,
		Error:     text,
		Message:   message,
		RequestID: reqID,
	}
}
