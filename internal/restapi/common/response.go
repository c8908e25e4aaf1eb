package common

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-http-utils/headers"

	"github.com/kasmoni/payment-service/internal/logging"
	"github.com/kasmoni/payment-service/internal/restapi/media"
)

// Response is the envelope of every successful request.
type Response[T any] struct {
	Success bool `json:"success"`
	Data    *T   `json:"data,omitempty"`
}

func NewResponse[T any](data *T) *Response[T] {
	return &Response[T]{
		Success: true,
		Data:    data,
	}
}

// WriteResponse sends data wrapped in the success envelope.
func WriteResponse[T any](ctx context.Context, w http.ResponseWriter, status int, data *T) error {
	w.Header().Set(headers.ContentType, media.ContentTypeApplicationJson)
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(NewResponse(data))
}

func EncodeToJSON(w http.ResponseWriter, obj interface{}, logger logging.Logger) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if obj != nil {
		err := enc.Encode(obj)

		if err != nil {
			logger.Error("Could not encode response. [error]: %v", err)
		}
	}
}

func SendUnauthorizedResponse(w http.ResponseWriter, reqID string, logger logging.Logger, details string) {
	SendResponseWithStatusAndMessage(w, http.StatusUnauthorized, reqID, AuthUnauthorizedMessage, logger, details)
}

func SendBadRequestResponse(w http.ResponseWriter, reqID string, logger logging.Logger, details string) {
	SendResponseWithStatusAndMessage(w, http.StatusBadRequest, reqID, RequestParseErrorMessage, logger, details)
}

func SendStatusNotFoundResponse(w http.ResponseWriter, reqID string, logger logging.Logger, details string) {
	SendResponseWithStatusAndMessage(w, http.StatusNotFound, reqID, PaymentNotFoundMessage, logger, details)
}

func SendForbiddenResponse(w http.ResponseWriter, reqID string, logger logging.Logger, details string) {
	SendResponseWithStatusAndMessage(w, http.StatusForbidden, reqID, AuthForbiddenMessage, logger, details)
}

// SendConflictResponse answers with 400, the frontend handles a taken id or slot like rejected input.
func SendConflictResponse(w http.ResponseWriter, reqID string, logger logging.Logger, details string) {
	SendResponseWithStatusAndMessage(w, http.StatusBadRequest, reqID, RequestConflictMessage, logger, details)
}

func SendInternalServerError(w http.ResponseWriter, reqID string, logger logging.Logger, details string) {
	SendResponseWithStatusAndMessage(w, http.StatusInternalServerError, reqID, InternalErrorMessage, logger, details)
}

func SendResponseWithStatusAndMessage(w http.ResponseWriter, status int, reqID string, message APIErrorMessage, logger logging.Logger, details string) {
	if reqID == "" {
		logger.Debug("request id is empty")
	}

	if details != "" {
		logger.Debug("Request was not successful: [error]: %s", details)
	}

	w.Header().Set(headers.ContentType, media.ContentTypeApplicationJson)
	w.WriteHeader(status)
	EncodeToJSON(w, NewErrorResponse(reqID, message, details), logger)
}
