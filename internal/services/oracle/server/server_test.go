package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	platformgrpc "github.com/louisbranch/hexagram/internal/platform/grpc"
	oracleapi "github.com/louisbranch/hexagram/internal/services/oracle/api/grpc/oracle"
	"github.com/louisbranch/hexagram/internal/services/oracle/app"
)

func TestServerThrowRoundTrip(t *testing.T) {
	srv, err := NewWithAddr("127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewWithAddr() error = %v", err)
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- srv.Serve(runCtx)
	}()
	t.Cleanup(func() {
		runCancel()
		select {
		case serveErr := <-serveDone:
			if serveErr != nil {
				t.Fatalf("Serve() error = %v", serveErr)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for server shutdown")
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	conn, err := platformgrpc.Dial(ctx, srv.Addr(), platformgrpc.DialConfig{Service: oracleapi.ServiceName})
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	reading, err := oracleapi.NewClient(conn).Throw(ctx, app.Request{Prompt: "Will it rain?", PromptSet: true, AsOf: "2024-01-01"})
	if err != nil {
		t.Fatalf("Throw() error = %v", err)
	}
	if diff := cmp.Diff([]int{7, 7, 8, 7, 8, 7}, reading.Hexagram.Codes()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if reading.Primary.Number != 38 {
		t.Fatalf("Primary = %+v, want #38", reading.Primary)
	}
}

func TestServeReturnsWhenContextAlreadyCancelled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv, err := NewWithAddr("127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewWithAddr() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := srv.Serve(ctx); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
}

func TestNewWithAddrRejectsBadAddress(t *testing.T) {
	if _, err := NewWithAddr("not-an-address"); err == nil {
		t.Fatal("expected listen error")
	}
}

func TestNilServer(t *testing.T) {
	var srv *Server
	if srv.Addr() != "" {
		t.Fatal("expected empty address")
	}
	if err := srv.Serve(context.Background()); err == nil {
		t.Fatal("expected nil server error")
	}
	srv.Close()
}
