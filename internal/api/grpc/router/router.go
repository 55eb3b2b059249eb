package router

import (
	"google.golang.org/grpc"

	"github.com/dtroode/bookswap-agent/internal/api/grpc/handler"
	"github.com/dtroode/bookswap-agent/internal/api/grpc/middleware"
	"github.com/dtroode/bookswap-agent/internal/api/grpc/storefront"
	"github.com/dtroode/bookswap-agent/internal/logger"
)

// Router represents a gRPC router for storefront operations.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	services handler.Services
	logger   *logger.Logger
}

// New creates new gRPC Router instance.
func New(services handler.Services, logger *logger.Logger) *Router {
	return &Router{
		services: services,
		logger:   logger,
	}
}

// Register builds the gRPC server with recovery and logging interceptors and
// registers the storefront service on it.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			middleware.NewRecovery(r.logger),
			middleware.NewLogging(r.logger),
		),
	}, opts...)

	s := grpc.NewServer(opts...)
	r.registerStorefrontRoutes(s)

	return s
}

func (r *Router) registerStorefrontRoutes(server *grpc.Server) {
	storefrontHandler := handler.NewStorefront(r.services, r.logger)
	storefront.RegisterStorefrontServer(server, storefrontHandler)
}
