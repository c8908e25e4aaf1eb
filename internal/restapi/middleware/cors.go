package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
	"github.com/go-http-utils/headers"

	"github.com/kasmoni/payment-service/internal/config"
	"github.com/kasmoni/payment-service/internal/logging"
)

const corsMaxAge = 300

// CorsHeadersMiddleware handles cross origin requests for the configured frontend origins
// (comma separated). With cors disabled every origin is allowed, which is meant for local
// development against a frontend dev server.
func CorsHeadersMiddleware(conf *config.CorsConfig) func(http.Handler) http.Handler {
	if conf == nil || (!conf.DisableCors && conf.AllowOrigin == "") {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	opts := cors.Options{
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{headers.ContentType, headers.Authorization, apiKeyHeader, RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         corsMaxAge,
	}

	if conf.DisableCors {
		logging.NewLogger().Warn("sending headers to disable CORS. This configuration is not intended for production use, only for local development!")
		opts.AllowedOrigins = []string{"*"}
	} else {
		opts.AllowedOrigins = splitOrigins(conf.AllowOrigin)
		opts.AllowCredentials = true
	}

	return cors.Handler(opts)
}

func splitOrigins(value string) []string {
	origins := make([]string, 0)
	for _, o := range strings.Split(value, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
