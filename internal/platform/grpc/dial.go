// Package grpc holds the client and server plumbing shared by hexagram's
// gRPC processes: instrumented dial options, health-gated dialing and the
// standard health service.
package grpc

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// DialFunc opens a client connection. gogrpc.NewClient satisfies it.
type DialFunc func(addr string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error)

// DialStage names the step at which Dial failed.
type DialStage string

const (
	// DialStageConnect means the client connection could not be created.
	DialStageConnect DialStage = "connect"
	// DialStageHealth means the peer never reported SERVING.
	DialStageHealth DialStage = "health"
)

// DialError wraps a Dial failure with the stage that produced it.
type DialError struct {
	Addr  string
	Stage DialStage
	Err   error
}

// Error implements the error interface.
func (e *DialError) Error() string {
	if e == nil {
		return "gRPC dial error"
	}
	return fmt.Sprintf("gRPC %s %s: %v", e.Stage, e.Addr, e.Err)
}

// Unwrap returns the underlying error.
func (e *DialError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ClientOptions returns the dial options every in-cluster client uses:
// plaintext transport and the otelgrpc client stats handler, so outbound
// calls carry trace context whenever a tracer provider is installed.
func ClientOptions() []gogrpc.DialOption {
	return []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// DialConfig tunes Dial. The zero value dials with ClientOptions and waits
// on the server-wide health status until ctx ends.
type DialConfig struct {
	// Timeout bounds connect plus health wait when positive.
	Timeout time.Duration
	// Service is the health service name to wait on; "" is server-wide.
	Service string
	// Logf receives health-wait progress when set.
	Logf func(string, ...any)
	// Dial replaces gogrpc.NewClient, mainly for tests.
	Dial DialFunc
	// Options replaces ClientOptions when non-empty.
	Options []gogrpc.DialOption
}

// Dial creates a client connection to addr and blocks until the peer's
// health check reports SERVING. The connection is closed on failure.
func Dial(ctx context.Context, addr string, cfg DialConfig) (*gogrpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	dial := cfg.Dial
	if dial == nil {
		dial = gogrpc.NewClient
	}
	opts := cfg.Options
	if len(opts) == 0 {
		opts = ClientOptions()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	conn, err := dial(addr, opts...)
	if err != nil {
		return nil, &DialError{Addr: addr, Stage: DialStageConnect, Err: err}
	}
	if err := WaitForHealth(ctx, conn, cfg.Service, cfg.Logf); err != nil {
		_ = conn.Close()
		return nil, &DialError{Addr: addr, Stage: DialStageHealth, Err: err}
	}
	return conn, nil
}
