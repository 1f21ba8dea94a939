// Package probe serves the standard gRPC health service for citygraph and checks it
// from the command line.
package probe

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/logger"
)

// Service is the health service name reporting whether the data root is readable.
// The empty name reports the process as a whole.
const Service = "citygraph.Store"

const callTimeout = 5 * time.Second

type Server struct {
	grpc   *grpc.Server
	health *health.Server
	log    *zap.SugaredLogger
}

func NewServer() *Server {
	s := &Server{
		grpc:   grpc.NewServer(),
		health: health.NewServer(),
		log:    logger.Named("probe"),
	}
	healthpb.RegisterHealthServer(s.grpc, s.health)
	reflection.Register(s.grpc)

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(Service, healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// SetServing updates the status of Service.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(Service, status)
}

// Monitor runs check now and then every interval until ctx is done, reflecting the
// result in Service's status.
func (s *Server) Monitor(ctx context.Context, interval time.Duration, check func() error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := true
	for {
		err := check()
		s.SetServing(err == nil)
		if (err == nil) != last {
			if err != nil {
				s.log.Warnw("health check failing", "error", err)
			} else {
				s.log.Infow("health check recovered")
			}
			last = err == nil
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Serve blocks serving on lis until ctx is done, then stops gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.health.Shutdown()
		s.grpc.GracefulStop()
	}()

	s.log.Infow("grpc health listening", "address", lis.Addr().String())
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return errors.Wrap(err, "grpc serve")
	}
	return nil
}

// Check asks the health service at address about service.
func Check(ctx context.Context, address, service string, opts ...grpc.DialOption) (*healthpb.HealthCheckResponse, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "connect to %s", address)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return nil, errors.Wrapf(err, "health check %q", service)
	}
	return resp, nil
}

// Format renders a health response as indented JSON.
func Format(resp *healthpb.HealthCheckResponse) (string, error) {
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  ", EmitUnpopulated: true}.Marshal(resp)
	if err != nil {
		return "", errors.Wrap(err, "format health response")
	}
	return string(b), nil
}
