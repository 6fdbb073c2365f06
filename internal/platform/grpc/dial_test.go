package grpc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

func TestDialSuccess(t *testing.T) {
	addr, _, stop := startHealthServer(t, grpc_health_v1.HealthCheckResponse_SERVING)
	defer stop()

	conn, err := Dial(context.Background(), addr, DialConfig{Timeout: 2 * time.Second, Service: testService})
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close conn: %v", err)
	}
}

func TestDialHealthStageWhenNotServing(t *testing.T) {
	addr, _, stop := startHealthServer(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	defer stop()

	start := time.Now()
	conn, err := Dial(context.Background(), addr, DialConfig{Timeout: 250 * time.Millisecond})
	if conn != nil {
		_ = conn.Close()
		t.Fatal("expected nil connection on error")
	}
	var dialErr *DialError
	if !errors.As(err, &dialErr) {
		t.Fatalf("Dial() error = %T, want *DialError", err)
	}
	if dialErr.Stage != DialStageHealth {
		t.Fatalf("Stage = %q, want %q", dialErr.Stage, DialStageHealth)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Dial() error = %v, want deadline exceeded in chain", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Dial() took %v, want timeout to bound the health wait", elapsed)
	}
}

func TestDialConnectStage(t *testing.T) {
	t.Parallel()

	var gotAddr string
	var gotOpts int
	failing := func(addr string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
		gotAddr = addr
		gotOpts = len(opts)
		return nil, errors.New("refused")
	}

	_, err := Dial(context.Background(), "oracle:8095", DialConfig{Dial: failing})
	var dialErr *DialError
	if !errors.As(err, &dialErr) {
		t.Fatalf("Dial() error = %T, want *DialError", err)
	}
	if dialErr.Stage != DialStageConnect {
		t.Fatalf("Stage = %q, want %q", dialErr.Stage, DialStageConnect)
	}
	if gotAddr != "oracle:8095" {
		t.Fatalf("dialed %q, want %q", gotAddr, "oracle:8095")
	}
	if gotOpts != len(ClientOptions()) {
		t.Fatalf("dial options = %d, want defaults (%d)", gotOpts, len(ClientOptions()))
	}
}

func TestDialErrorFormatting(t *testing.T) {
	t.Parallel()

	err := &DialError{Addr: "localhost:8095", Stage: DialStageConnect, Err: errors.New("boom")}
	if !strings.Contains(err.Error(), "gRPC connect localhost:8095") {
		t.Fatalf("Error() = %q, want stage and address", err.Error())
	}
	if err.Unwrap() == nil {
		t.Fatal("expected wrapped error")
	}

	var nilErr *DialError
	if nilErr.Error() == "" {
		t.Fatal("expected fallback message")
	}
	if nilErr.Unwrap() != nil {
		t.Fatal("expected nil unwrap")
	}
}
