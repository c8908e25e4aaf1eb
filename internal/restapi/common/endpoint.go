package common

import (
	"context"
	"net/http"

	"github.com/kasmoni/payment-service/internal/apierrors"
	"github.com/kasmoni/payment-service/internal/logging"
)

type RequestHandler[Req any] func(r *http.Request) (*Req, error)
type ResponseHandler[Res any] func(ctx context.Context, res *Res, w http.ResponseWriter) error
type Endpoint[Req, Res any] func(ctx context.Context, request *Req, logger logging.Logger) (*Res, error)

// ResponseWithStatus writes the result in the success envelope with the given status.
func ResponseWithStatus[Res any](status int) ResponseHandler[Res] {
	return func(ctx context.Context, res *Res, w http.ResponseWriter) error {
		return WriteResponse(ctx, w, status, res)
	}
}

func CreateHandler[Req, Res any](endpoint Endpoint[Req, Res],
	requestHandler RequestHandler[Req],
	responseHandler ResponseHandler[Res]) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		reqID := GetRequestID(ctx)
		logger := logging.WithRequestID(ctx, reqID)

		defer func() {
			err := r.Body.Close()
			if err != nil {
				logger.Error("Error when closing the request body. [error]: %v", err)
			}
		}()

		if requestHandler == nil {
			logger.Error("No request handler supplied")
			SendResponseWithStatusAndMessage(w, http.StatusInternalServerError, reqID, UnknownErrorMessage, logger, "")
			return
		}

		if responseHandler == nil {
			logger.Error("No response handler supplied")
			SendResponseWithStatusAndMessage(w, http.StatusInternalServerError, reqID, UnknownErrorMessage, logger, "")
			return
		}

		request, err := requestHandler(r)
		if err != nil {
			logger.Info("An error occurred while parsing the request. [error]: %v", err)
			details := err.Error()
			if status := apierrors.AsAPIStatus(err); status != nil {
				details = status.Status().Details
			}
			SendBadRequestResponse(w, reqID, logger, details)
			return
		}

		response, err := endpoint(ctx, request, logger)
		if err != nil {
			sendEndpointError(w, reqID, logger, err)
			return
		}

		if err := responseHandler(ctx, response, w); err != nil {
			logger.Error("An error occurred during the handling of the response. [error]: %v", err)
			SendResponseWithStatusAndMessage(w, http.StatusInternalServerError, reqID, UnknownErrorMessage, logger, "")
			return
		}
	})
}

func sendEndpointError(w http.ResponseWriter, reqID string, logger logging.Logger, err error) {
	status := apierrors.AsAPIStatus(err)
	if status == nil {
		// unit of work failed and was rolled back, the message goes to the caller
		logger.Error("An error occurred during the request. [error]: %v", err)
		SendInternalServerError(w, reqID, logger, err.Error())
		return
	}

	details := status.Status().Details
	switch {
	case apierrors.IsBadRequestError(err):
		logger.Info("Request rejected. [error]: %v", err)
		SendBadRequestResponse(w, reqID, logger, details)
	case apierrors.IsConflictError(err):
		logger.Info("Request conflicts with current state. [error]: %v", err)
		SendConflictResponse(w, reqID, logger, details)
	case apierrors.IsUnauthorizedError(err):
		SendUnauthorizedResponse(w, reqID, logger, details)
	case apierrors.IsForbiddenError(err):
		logger.Warn("Request forbidden. [error]: %v", err)
		SendForbiddenResponse(w, reqID, logger, details)
	case apierrors.IsNotFoundError(err):
		SendStatusNotFoundResponse(w, reqID, logger, details)
	default:
		logger.Error("An error occurred during the request. [error]: %v", err)
		SendInternalServerError(w, reqID, logger, details)
	}
}
