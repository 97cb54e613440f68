// Package health probes the backend's gRPC health service. The CLI uses it
// to show whether it is online.
package health

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name the backend registers.
const ServiceName = "civichub.Backend"

// ErrNotServing is returned when the backend answers with any status other
// than SERVING.
var ErrNotServing = errors.New("backend not serving")

// Checker asks the backend for its health over gRPC.
type Checker struct {
	conn   *grpc.ClientConn
	client healthpb.HealthClient
}

// NewChecker creates a lazy client for addr. No connection is made until
// the first Check.
func NewChecker(addr string) (*Checker, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &Checker{conn: conn, client: healthpb.NewHealthClient(conn)}, nil
}

// Check returns nil only when the backend reports SERVING.
func (c *Checker) Check(ctx context.Context) error {
	resp, err := c.client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return err
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", ErrNotServing, resp.GetStatus())
	}
	return nil
}

func (c *Checker) Close() error {
	return c.conn.Close()
}
