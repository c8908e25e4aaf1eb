package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	auzerolog "github.com/StephanHCB/go-autumn-logging-zerolog"
	"github.com/rs/zerolog"
)

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})

	// expected to terminate the process
	Fatal(format string, v ...interface{})
}

type loggingWrapper struct {
	logger *zerolog.Logger
}

func (l *loggingWrapper) Debug(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}

func (l *loggingWrapper) Info(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

func (l *loggingWrapper) Warn(format string, v ...interface{}) {
	l.logger.Warn().Msgf(format, v...)
}

func (l *loggingWrapper) Error(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}

func (l *loggingWrapper) Fatal(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(format, v...)
}

const RequestIDField = "request_id"

// context key with a separate type, so no other package has a chance of accessing it
type ctxKeyLogger struct{}

var root = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Setup configures the root logger and the go-autumn-logging backend used by the downstream clients.
//
// Call once during startup, before any request is served.
func Setup(serviceName string, severity string, json bool) {
	if json {
		auzerolog.SetupJsonLogging(serviceName)
		root = newRootLogger(os.Stdout, serviceName)
	} else {
		auzerolog.SetupPlaintextLogging()
		root = newRootLogger(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}, serviceName)
	}

	// the autumn setup resets the global level to info
	auzerolog.SetLogLevel(ParseSeverity(severity))
}

func newRootLogger(w io.Writer, serviceName string) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("service", serviceName).Logger()
}

// ParseSeverity maps the configured severity to a zerolog level, unknown values mean INFO.
func ParseSeverity(severity string) zerolog.Level {
	switch strings.ToUpper(severity) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func NewLogger() Logger {
	return &loggingWrapper{
		logger: &root,
	}
}

// WithRequestID returns a logger that adds the request id to every line.
func WithRequestID(ctx context.Context, reqID string) Logger {
	if logger, ok := ctx.Value(ctxKeyLogger{}).(Logger); ok {
		return logger
	}

	logger := root.With().Str(RequestIDField, reqID).Logger()
	return &loggingWrapper{
		logger: &logger,
	}
}

func ContextWithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger{}, logger)
}

// LoggerFromContext returns the request logger, or the root logger if ctx does not carry one.
func LoggerFromContext(ctx context.Context) Logger {
	logger, ok := ctx.Value(ctxKeyLogger{}).(Logger)
	if !ok {
		return NewLogger()
	}

	return logger
}

func NewNoopLogger() Logger {
	return &noopLogger{}
}

type noopLogger struct {
}

func (l *noopLogger) Debug(format string, v ...interface{}) {
}

func (l *noopLogger) Info(format string, v ...interface{}) {
}

func (l *noopLogger) Warn(format string, v ...interface{}) {
}

func (l *noopLogger) Error(format string, v ...interface{}) {
}

func (l *noopLogger) Fatal(format string, v ...interface{}) {
}
