package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kasmoni/payment-service/internal/config"
	"github.com/kasmoni/payment-service/internal/interaction"
	"github.com/kasmoni/payment-service/internal/logging"
	"github.com/kasmoni/payment-service/internal/restapi/middleware"
	v1archive "github.com/kasmoni/payment-service/internal/restapi/v1/archive"
	v1health "github.com/kasmoni/payment-service/internal/restapi/v1/health"
	v1paymentlogs "github.com/kasmoni/payment-service/internal/restapi/v1/paymentlogs"
	v1payments "github.com/kasmoni/payment-service/internal/restapi/v1/payments"
	v1trashbox "github.com/kasmoni/payment-service/internal/restapi/v1/trashbox"
)

func NewServer(ctx context.Context, conf *config.ServerConfig, router http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", conf.BaseAddress, conf.Port),
		Handler:      router,
		ReadTimeout:  time.Second * time.Duration(conf.ReadTimeout),
		WriteTimeout: time.Second * time.Duration(conf.WriteTimeout),
		IdleTimeout:  time.Second * time.Duration(conf.IdleTimeout),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}
}

// Serve answers requests on ln until stop fires. It returns once Shutdown has let the in-flight
// requests finish or the timeout ran out, and cancels the base context only after that.
func Serve(srv *http.Server, ln net.Listener, stop <-chan os.Signal, cancel context.CancelFunc, timeout time.Duration, logger logging.Logger) error {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-stop
		logger.Info("Stopping services now")

		tCtx, tcancel := context.WithTimeout(context.Background(), timeout)
		defer tcancel()

		if err := srv.Shutdown(tCtx); err != nil {
			logger.Error("Couldn't shutdown server gracefully. [error]: %v", err)
		}
		cancel()
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}

func CreateRouter(i interaction.Interactor, conf *config.SecurityConfig) chi.Router {
	router := chi.NewRouter()

	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestIdMiddleware())
	router.Use(middleware.LogRequestIdMiddleware())
	router.Use(middleware.ClientInfoMiddleware())
	router.Use(middleware.CorsHeadersMiddleware(&conf.Cors))

	setupV1Routes(router, i, conf)

	return router
}

func setupV1Routes(router chi.Router, i interaction.Interactor, conf *config.SecurityConfig) {
	v1health.Create(router)

	router.Route("/api/rest/v1", func(r chi.Router) {
		r.Use(middleware.CheckRequestAuthorization(conf))

		v1payments.Create(r, i)
		v1archive.Create(r, i)
		v1trashbox.Create(r, i)
		v1paymentlogs.Create(r, i)
	})
}
