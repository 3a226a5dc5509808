//go:build integration

package redisstore

import (
	"context"
	"fmt"
	"os"
	"testing"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kilianp07/skylark/core/store"
)

// TestIntegration runs the store against a real Redis server.
func TestIntegration(t *testing.T) {
	if os.Getenv("DOCKER_AVAILABLE") != "true" && os.Getenv("DOCKER_AVAILABLE") != "1" {
		t.Skip("docker not available")
	}
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	s, err := Open(ctx, Config{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.Load(ctx, store.PilotRoster, []store.Record{{"name": "Sneha", "status": "Available"}}); err != nil {
		t.Fatalf("load: %v", err)
	}
	ok, err := s.UpdateField(ctx, store.PilotRoster, "name", "SNEHA", "status", "On Leave")
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	rows, err := s.Read(ctx, store.PilotRoster)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := rows[0].Get("status"); got != "On Leave" {
		t.Fatalf("status %q", got)
	}
}
