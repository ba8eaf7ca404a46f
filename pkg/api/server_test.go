package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/questforge/questforge/pkg/docstore"
)

func TestServer_ListenCallbackFiresBeforeServing(t *testing.T) {
	cfg := APIConfig{}
	cfg.ApplyDefaults()
	cfg.Port = 0 // Let the OS pick a free port

	server := NewServer(cfg, RouterDeps{
		Store:       docstore.NewMemoryStore(),
		Version:     "test",
		Environment: "test",
	})

	addrChan := make(chan net.Addr, 1)
	server.OnListening = func(addr net.Addr) {
		// The socket must already be bound when this fires
		conn, err := net.DialTimeout("tcp", addr.String(), time.Second)
		if err != nil {
			t.Errorf("Expected socket to be bound at callback time: %v", err)
		} else {
			_ = conn.Close()
		}
		addrChan <- addr
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(ctx)
	}()

	var addr net.Addr
	select {
	case addr = <-addrChan:
	case <-time.After(5 * time.Second):
		t.Fatal("OnListening callback never fired")
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/api/health", addr.String()))
	if err != nil {
		t.Fatalf("Health request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 from health endpoint, got %d", resp.StatusCode)
	}

	// Context cancellation triggers graceful shutdown
	cancel()
	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("Expected graceful shutdown, got: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Server did not shut down")
	}
}

func TestServer_StopIsIdempotent(t *testing.T) {
	cfg := APIConfig{}
	cfg.ApplyDefaults()
	cfg.Port = 0

	server := NewServer(cfg, RouterDeps{
		Store:       docstore.NewMemoryStore(),
		Version:     "test",
		Environment: "test",
	})

	ctx := context.Background()
	if err := server.Stop(ctx); err != nil {
		t.Errorf("First Stop failed: %v", err)
	}
	if err := server.Stop(ctx); err != nil {
		t.Errorf("Second Stop failed: %v", err)
	}
}

func TestServer_BindFailureSurfaces(t *testing.T) {
	// Hold a port so the server cannot bind it
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to reserve port: %v", err)
	}
	defer func() { _ = listener.Close() }()

	port := listener.Addr().(*net.TCPAddr).Port

	cfg := APIConfig{}
	cfg.ApplyDefaults()
	cfg.Port = port

	server := NewServer(cfg, RouterDeps{
		Store:       docstore.NewMemoryStore(),
		Version:     "test",
		Environment: "test",
	})

	fired := false
	server.OnListening = func(net.Addr) { fired = true }

	if err := server.Start(context.Background()); err == nil {
		t.Fatal("Expected bind failure")
	}
	if fired {
		t.Error("Expected OnListening not to fire when bind fails")
	}
}
