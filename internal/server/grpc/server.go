// Package grpc serves the backend's gRPC health endpoint. The CLI probes it
// to decide whether it is online; the reported status follows the database.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/civichub/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name clients check.
const ServiceName = "civichub.Backend"

// Pinger reports storage health; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// GRPCServer hosts the standard gRPC health service. Its serving status is
// refreshed from storage pings every interval.
type GRPCServer struct {
	address  string
	logger   logging.Logger
	storage  Pinger
	interval time.Duration
	health   *health.Server
}

// NewGRPCServer constructs a server listening on address a. A nil storage
// always reports SERVING; a non-positive checkInterval pings only once at
// start-up.
func NewGRPCServer(a string, l logging.Logger, storage Pinger, checkInterval time.Duration) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		storage:  storage,
		interval: checkInterval,
		health:   health.NewServer(),
	}
}

// refresh sets the serving status from one storage ping.
func (s *GRPCServer) refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if s.storage != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := s.storage.PingContext(pingCtx); err != nil {
			s.logger.Warn(ctx, "storage ping failed", "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus(ServiceName, status)
	return status
}

// watchStorage re-pings storage on every tick until ctx is done.
func (s *GRPCServer) watchStorage(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// Run starts listening on the configured address and blocks until the
// server stops. When ctx is cancelled the health service is switched to
// NOT_SERVING and the server stops gracefully.
//
// Returns an error if the listener cannot be created or Serve fails.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	healthpb.RegisterHealthServer(srv, s.health)
	s.refresh(ctx)
	go s.watchStorage(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
