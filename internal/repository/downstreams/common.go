package downstreams

import (
	"context"
	"errors"
	"net/http"
	"time"

	aurestbreaker "github.com/StephanHCB/go-autumn-restclient-circuitbreaker/implementation/breaker"
	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"
	auresthttpclient "github.com/StephanHCB/go-autumn-restclient/implementation/httpclient"
	aurestlogging "github.com/StephanHCB/go-autumn-restclient/implementation/requestlogging"
	"github.com/go-http-utils/headers"

	"github.com/kasmoni/payment-service/internal/restapi/common"
	"github.com/kasmoni/payment-service/internal/restapi/media"
)

const (
	apiKeyHeader    = "X-Api-Key"
	requestIDHeader = "X-Request-Id"
)

var (
	ErrDownStreamUnavailable = errors.New("downstream unavailable - see log for details")
)

func ApiTokenRequestManipulator(fixedApiToken string) aurestclientapi.RequestManipulatorCallback {
	return func(ctx context.Context, r *http.Request) {
		r.Header.Add(apiKeyHeader, fixedApiToken)
		r.Header.Add(requestIDHeader, common.GetRequestID(ctx))
		r.Header.Set(headers.Accept, media.ContentTypeApplicationJson)
	}
}

// ClientWith builds the client stack used for every downstream call:
// http client, request logging, circuit breaker, and outcome logging with the request logger.
func ClientWith(requestManipulator aurestclientapi.RequestManipulatorCallback, circuitBreakerName string) (aurestclientapi.Client, error) {
	httpClient, err := auresthttpclient.New(0, nil, requestManipulator)
	if err != nil {
		return nil, err
	}

	requestLoggingClient := aurestlogging.New(httpClient)

	circuitBreakerClient := aurestbreaker.New(requestLoggingClient,
		circuitBreakerName,
		10,
		2*time.Minute,
		30*time.Second,
		15*time.Second,
	)

	return NewRequestLoggingWrapper(circuitBreakerClient), nil
}

func ErrByStatus(err error, status int) error {
	if err != nil {
		return err
	}
	if status >= 300 {
		return ErrDownStreamUnavailable
	}
	return nil
}
