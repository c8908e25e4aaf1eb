package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/go-http-utils/headers"

	"github.com/kasmoni/payment-service/internal/restapi/common"
)

// ClientInfoMiddleware records the remote address and user agent for the audit trail.
// Place it after chi's RealIP so forwarded addresses are honored.
func ClientInfoMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), common.CtxKeyClientIP{}, clientIP(r.RemoteAddr))
			ctx = context.WithValue(ctx, common.CtxKeyUserAgent{}, r.Header.Get(headers.UserAgent))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		// RealIP stores the bare address
		return remoteAddr
	}
	return host
}
