package middleware

import (
	"net/http"

	"github.com/kasmoni/payment-service/internal/logging"
	"github.com/kasmoni/payment-service/internal/restapi/common"
)

func logRequestIdHandler(next http.Handler) func(w http.ResponseWriter, r *http.Request) {
	handlerFunc := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.WithRequestID(ctx, common.GetRequestID(ctx))
		newCtx := logging.ContextWithLogger(ctx, logger)

		next.ServeHTTP(w, r.WithContext(newCtx))
	}
	return handlerFunc
}

// LogRequestIdMiddleware places a logger carrying the request id into the request context.
// Must run after RequestIdMiddleware.
func LogRequestIdMiddleware() func(http.Handler) http.Handler {
	middlewareCreator := func(next http.Handler) http.Handler {
		return http.HandlerFunc(logRequestIdHandler(next))
	}
	return middlewareCreator
}
