package grpc

import (
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health-check service name registered by the server.
const ServiceName = "dropout-predictor"

// ModelStatus reports whether the classifier artifact is loaded.
type ModelStatus interface {
	Available() bool
}

// Server wraps a gRPC server exposing the standard health service.
type Server struct {
	address      string
	grpcServer   *grpc.Server
	healthServer *health.Server
	logger       *slog.Logger
}

// NewServer creates a gRPC server whose health status follows the model:
// SERVING when a classifier is loaded, NOT_SERVING otherwise.
func NewServer(model ModelStatus, address string, enableReflection bool, logger *slog.Logger) *Server {
	grpcServer := grpc.NewServer()

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	status := healthpb.HealthCheckResponse_SERVING
	if !model.Available() {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	healthServer.SetServingStatus(ServiceName, status)
	healthServer.SetServingStatus("", status)

	if enableReflection {
		reflection.Register(grpcServer)
	}

	return &Server{
		address:      address,
		grpcServer:   grpcServer,
		healthServer: healthServer,
		logger:       logger,
	}
}

// Health returns the registered health server.
func (s *Server) Health() healthpb.HealthServer {
	return s.healthServer
}

// Start begins listening and serving gRPC requests.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}
	return s.Serve(listener)
}

// Serve accepts connections on listener until Stop is called.
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("gRPC server starting",
		slog.String("address", listener.Addr().String()),
	)
	return s.grpcServer.Serve(listener)
}

// Stop marks the service as not serving and gracefully stops the server.
func (s *Server) Stop() {
	s.logger.Info("gRPC server shutting down")
	s.healthServer.Shutdown()
	s.grpcServer.GracefulStop()
}
