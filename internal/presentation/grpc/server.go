package grpc

import (
	"fmt"
	"log/slog"
	"net"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/bibbank/bib/services/channeling-service/pkg/auth"
)

// ServerOptions tunes the transport. Nil Credentials serves plaintext.
type ServerOptions struct {
	Credentials credentials.TransportCredentials
	ServiceName string
	Reflection  bool
}

// Server wraps a gRPC server with the channeling handler registered.
type Server struct {
	gs     *grpclib.Server
	health *health.Server
	logger *slog.Logger
}

// AuthPolicy lists the methods reachable without a token and the roles
// needed to change partner pricing.
func AuthPolicy() auth.Policy {
	return auth.Policy{
		Public: []string{
			"/grpc.health.v1.Health/Check",
			"/grpc.health.v1.Health/Watch",
		},
		Roles: map[string][]string{
			MethodUpsertRateConfig: {auth.RoleAdmin, auth.RoleOperator},
		},
	}
}

// NewServer creates and configures the gRPC server.
func NewServer(handler ChannelingServiceServer, validator *auth.Validator, logger *slog.Logger, opts ServerOptions) (*Server, error) {
	observe, err := observabilityInterceptor(logger)
	if err != nil {
		return nil, fmt.Errorf("create rpc instruments: %w", err)
	}

	serverOpts := []grpclib.ServerOption{
		grpclib.ChainUnaryInterceptor(
			recoveryInterceptor(logger),
			tracingInterceptor(),
			observe,
			auth.UnaryAuthInterceptor(validator, AuthPolicy()),
		),
	}
	if opts.Credentials != nil {
		serverOpts = append(serverOpts, grpclib.Creds(opts.Credentials))
		logger.Info("gRPC TLS enabled")
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	gs := grpclib.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus(opts.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	if opts.Reflection {
		reflection.Register(gs)
	}

	RegisterChannelingServiceServer(gs, handler)

	return &Server{gs: gs, health: healthSrv, logger: logger}, nil
}

// Serve starts the gRPC server on the specified address.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.ServeListener(lis)
}

// ServeListener serves on an existing listener.
func (s *Server) ServeListener(lis net.Listener) error {
	s.logger.Info("gRPC server listening", "addr", lis.Addr().String())
	return s.gs.Serve(lis)
}

// GracefulStop reports NOT_SERVING and drains in-flight calls.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.gs.GracefulStop()
}
