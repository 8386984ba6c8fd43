package grpc

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type fakeModel bool

func (f fakeModel) Available() bool { return bool(f) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServer_HealthFollowsModel(t *testing.T) {
	tests := []struct {
		name      string
		available bool
		expected  healthpb.HealthCheckResponse_ServingStatus
	}{
		{"model loaded", true, healthpb.HealthCheckResponse_SERVING},
		{"model unavailable", false, healthpb.HealthCheckResponse_NOT_SERVING},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(fakeModel(tt.available), ":0", false, testLogger())

			for _, service := range []string{ServiceName, ""} {
				resp, err := srv.Health().Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
				require.NoError(t, err)
				assert.Equal(t, tt.expected, resp.Status)
			}
		})
	}
}

func TestServer_ServeOverNetwork(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(fakeModel(true), listener.Addr().String(), true, testLogger())
	go func() { _ = srv.Serve(listener) }()
	t.Cleanup(srv.Stop)

	conn, err := grpclib.NewClient(listener.Addr().String(),
		grpclib.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}
