package middleware

import (
	"context"
	"log/slog"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"google.golang.org/grpc"

	"github.com/dtroode/bookswap-agent/internal/logger"
)

// InterceptorLogger adapts the application logger to the interceptor logging API.
func InterceptorLogger(l *logger.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

// NewLogging returns a unary interceptor that logs the start and the result
// of every call. Request and response payloads are never logged; they may
// carry the credential.
func NewLogging(l *logger.Logger) grpc.UnaryServerInterceptor {
	return logging.UnaryServerInterceptor(
		InterceptorLogger(l),
		logging.WithLogOnEvents(logging.StartCall, logging.FinishCall),
	)
}
