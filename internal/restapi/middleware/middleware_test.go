package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-http-utils/headers"
	"github.com/stretchr/testify/require"

	"github.com/kasmoni/payment-service/internal/config"
	"github.com/kasmoni/payment-service/internal/restapi/common"
)

func TestRequestIdMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "well formed id is kept", incoming: "a1b2c3d4", keep: true},
		{name: "missing id is generated", incoming: ""},
		{name: "malformed id is replaced", incoming: "not-an-id"},
		{name: "uppercase id is replaced", incoming: "A1B2C3D4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = common.GetRequestID(r.Context())
			})

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				r.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()

			RequestIdMiddleware()(next).ServeHTTP(w, r)

			require.Regexp(t, ValidRequestIdRegex, seen)
			require.Equal(t, seen, w.Header().Get(RequestIDHeader))
			if tt.keep {
				require.Equal(t, tt.incoming, seen)
			} else {
				require.NotEqual(t, tt.incoming, seen)
			}
		})
	}
}

func TestClientInfoMiddleware(t *testing.T) {
	var ip, ua string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip = common.GetClientIP(r.Context())
		ua = common.GetUserAgent(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.1.2.3:54321"
	r.Header.Set(headers.UserAgent, "tanda-app/1.2")

	ClientInfoMiddleware()(next).ServeHTTP(httptest.NewRecorder(), r)
	require.Equal(t, "10.1.2.3", ip)
	require.Equal(t, "tanda-app/1.2", ua)

	// behind a proxy RealIP rewrites RemoteAddr to the bare forwarded address
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7")

	middleware.RealIP(ClientInfoMiddleware()(next)).ServeHTTP(httptest.NewRecorder(), r)
	require.Equal(t, "203.0.113.7", ip)
}

func TestCorsHeadersMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		conf           *config.CorsConfig
		method         string
		origin         string
		preflight      bool
		expectedOrigin string
		expectedStatus int
		nextCalled     bool
	}{
		{
			name:           "disabled cors allows every origin",
			conf:           &config.CorsConfig{DisableCors: true},
			method:         http.MethodGet,
			origin:         "http://localhost:3000",
			expectedOrigin: "*",
			expectedStatus: http.StatusOK,
			nextCalled:     true,
		},
		{
			name:           "configured origin is sent",
			conf:           &config.CorsConfig{AllowOrigin: "https://app.example.com"},
			method:         http.MethodPost,
			origin:         "https://app.example.com",
			expectedOrigin: "https://app.example.com",
			expectedStatus: http.StatusOK,
			nextCalled:     true,
		},
		{
			name:           "any origin of a comma separated list is sent",
			conf:           &config.CorsConfig{AllowOrigin: "https://admin.example.com, https://app.example.com"},
			method:         http.MethodGet,
			origin:         "https://app.example.com",
			expectedOrigin: "https://app.example.com",
			expectedStatus: http.StatusOK,
			nextCalled:     true,
		},
		{
			name:           "unknown origin gets no cors headers",
			conf:           &config.CorsConfig{AllowOrigin: "https://app.example.com"},
			method:         http.MethodGet,
			origin:         "https://evil.example.com",
			expectedStatus: http.StatusOK,
			nextCalled:     true,
		},
		{
			name:           "preflight is answered without calling the handler",
			conf:           &config.CorsConfig{AllowOrigin: "https://app.example.com"},
			method:         http.MethodOptions,
			origin:         "https://app.example.com",
			preflight:      true,
			expectedOrigin: "https://app.example.com",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no origin configured",
			conf:           &config.CorsConfig{},
			method:         http.MethodGet,
			origin:         "https://app.example.com",
			expectedStatus: http.StatusOK,
			nextCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			r := httptest.NewRequest(tt.method, "/", nil)
			r.Header.Set(headers.Origin, tt.origin)
			if tt.preflight {
				r.Header.Set(headers.AccessControlRequestMethod, http.MethodPost)
				r.Header.Set(headers.AccessControlRequestHeaders, apiKeyHeader)
			}

			w := httptest.NewRecorder()
			CorsHeadersMiddleware(tt.conf)(next).ServeHTTP(w, r)

			require.Equal(t, tt.expectedStatus, w.Code)
			require.Equal(t, tt.nextCalled, called)
			require.Equal(t, tt.expectedOrigin, w.Header().Get(headers.AccessControlAllowOrigin))
			if tt.preflight {
				require.Contains(t, w.Header().Get(headers.AccessControlAllowHeaders), apiKeyHeader)
			}
		})
	}
}
