package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/kasmoni/payment-service/internal/restapi/common"
)

var RequestIDHeader = "X-Request-Id"

var ValidRequestIdRegex = regexp.MustCompile("^[0-9a-f]{8}$")

func createReqIdHandler(next http.Handler) func(w http.ResponseWriter, r *http.Request) {
	handlerFunc := func(w http.ResponseWriter, r *http.Request) {
		reqUuidStr := r.Header.Get(RequestIDHeader)
		if !ValidRequestIdRegex.MatchString(reqUuidStr) {
			reqUuid, err := uuid.NewRandom()
			if err == nil {
				reqUuidStr = reqUuid.String()[:8]
			} else {
				reqUuidStr = "ffffffff"
			}
		}
		ctx := context.WithValue(r.Context(), common.CtxKeyRequestID{}, reqUuidStr)
		w.Header().Set(RequestIDHeader, reqUuidStr)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return handlerFunc
}

// RequestIdMiddleware takes a well formed X-Request-Id from the caller or generates a new one.
func RequestIdMiddleware() func(http.Handler) http.Handler {
	middlewareCreator := func(next http.Handler) http.Handler {
		return http.HandlerFunc(createReqIdHandler(next))
	}
	return middlewareCreator
}
