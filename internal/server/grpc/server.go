// Package grpc serves the standard gRPC health protocol so orchestrators can
// probe CardCraft alongside its HTTP API.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/cardcraft/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health check key reporting pass generation readiness.
const ServiceName = "cardcraft.PassService"

type HealthServer struct {
	address string
	health  *health.Server
	logger  logging.Logger
}

// NewHealthServer reports NOT_SERVING for both the overall and the
// ServiceName status until SetServing(true) is called.
func NewHealthServer(a string, l logging.Logger) *HealthServer {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthServer{
		address: a,
		health:  hs,
		logger:  l.With("module", "grpc_server"),
	}
}

// SetServing flips both the overall and the ServiceName status.
func (s *HealthServer) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

func (s *HealthServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	healthpb.RegisterHealthServer(srv, s.health)
	reflection.Register(srv)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
