package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	aulogging "github.com/StephanHCB/go-autumn-logging"

	"github.com/kasmoni/payment-service/internal/config"
	"github.com/kasmoni/payment-service/internal/interaction"
	"github.com/kasmoni/payment-service/internal/logging"
	"github.com/kasmoni/payment-service/internal/paymentlog"
	"github.com/kasmoni/payment-service/internal/repository/database"
	"github.com/kasmoni/payment-service/internal/repository/database/inmemory"
	"github.com/kasmoni/payment-service/internal/repository/database/mysql"
	"github.com/kasmoni/payment-service/internal/repository/downstreams/groupservice"
	"github.com/kasmoni/payment-service/internal/restapi/common"
	"github.com/kasmoni/payment-service/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	logger := logging.NewLogger()

	conf, err := config.LoadConfiguration(*configPath, logger.Error)
	if err != nil {
		logger.Fatal("could not load configuration from %s. [error]: %v", *configPath, err)
	}

	logging.Setup(conf.Service.Name, conf.Logging.Severity, conf.Logging.Style == config.Json)
	aulogging.RequestIdRetriever = common.GetRequestID
	logger = logging.NewLogger()

	repo, err := openRepository(conf.Database, logger)
	if err != nil {
		logger.Fatal("could not open the %s repository. [error]: %v", conf.Database.Use, err)
	}

	if err := repo.Migrate(); err != nil {
		logger.Fatal("could not migrate the database. [error]: %v", err)
	}

	groupClient, err := groupservice.New(conf.Service.GroupService, conf.Security.Fixed.Api)
	if err != nil {
		logger.Fatal("could not create the group service client. [error]: %v", err)
	}

	interactor, err := interaction.NewServiceInteractor(repo, groupClient, paymentlog.New(), conf.Security.Oidc.AdminRole, logger)
	if err != nil {
		logger.Fatal("could not create the payment interactor. [error]: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := server.NewServer(ctx, &conf.Server, server.CreateRouter(interactor, &conf.Security))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Fatal("could not listen on %s. [error]: %v", srv.Addr, err)
	}

	logger.Info("listening on %s", srv.Addr)
	if err := server.Serve(srv, ln, sig, cancel, time.Second*5, logger); err != nil {
		logger.Fatal("server failed. [error]: %v", err)
	}
	logger.Info("server stopped")
}

func openRepository(conf config.DatabaseConfig, logger logging.Logger) (database.Repository, error) {
	if conf.Use == config.Mysql {
		return mysql.NewMySQLConnector(conf, logger)
	}

	logger.Warn("using the in-memory repository, payments are lost on restart (not useful for production!)")
	return inmemory.NewInMemoryProvider(), nil
}
