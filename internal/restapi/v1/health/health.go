package v1health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-http-utils/headers"

	"github.com/kasmoni/payment-service/internal/logging"
	"github.com/kasmoni/payment-service/internal/restapi/media"
)

type HealthResultDto struct {
	Status string `json:"status"`
}

// Create registers the health check. It is mounted outside of the authenticated api so
// load balancers can reach it.
func Create(server chi.Router) {
	server.Get("/info/health", healthGet)
	server.Get("/", healthGet)
}

func healthGet(w http.ResponseWriter, r *http.Request) {
	dto := HealthResultDto{Status: "up"}

	w.Header().Add(headers.ContentType, media.ContentTypeApplicationJson)
	w.WriteHeader(http.StatusOK)
	writeJson(r.Context(), w, dto)
}

func writeJson(ctx context.Context, w http.ResponseWriter, v interface{}) {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		logging.LoggerFromContext(ctx).Warn("error while encoding json response: %v", err)
	}
}
