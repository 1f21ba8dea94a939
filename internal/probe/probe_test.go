package probe

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/psidex/citygraph/internal/errors"
)

func startServer(t *testing.T) (*Server, grpc.DialOption) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := NewServer()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	dialer := grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
	return s, dialer
}

func TestCheckReportsStatus(t *testing.T) {
	s, dialer := startServer(t)
	ctx := context.Background()

	resp, err := Check(ctx, "passthrough:///bufnet", "", dialer)
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	resp, err = Check(ctx, "passthrough:///bufnet", Service, dialer)
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)

	s.SetServing(true)
	resp, err = Check(ctx, "passthrough:///bufnet", Service, dialer)
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

func TestCheckUnknownService(t *testing.T) {
	_, dialer := startServer(t)

	_, err := Check(context.Background(), "passthrough:///bufnet", "nope", dialer)
	assert.Error(t, err)
}

func TestMonitor(t *testing.T) {
	s, dialer := startServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	go s.Monitor(ctx, 10*time.Millisecond, func() error {
		if calls.Add(1) == 1 {
			return errors.New("store unreadable")
		}
		return nil
	})

	assert.Eventually(t, func() bool {
		resp, err := Check(context.Background(), "passthrough:///bufnet", Service, dialer)
		return err == nil && resp.Status == healthpb.HealthCheckResponse_SERVING
	}, 2*time.Second, 20*time.Millisecond)
}

func TestFormat(t *testing.T) {
	out, err := Format(&healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING})
	require.NoError(t, err)
	assert.Contains(t, out, `"status"`)
	assert.Contains(t, out, `"SERVING"`)
}
