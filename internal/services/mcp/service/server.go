package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"

	"github.com/louisbranch/hexagram/internal/platform/branding"
	platformgrpc "github.com/louisbranch/hexagram/internal/platform/grpc"
	"github.com/louisbranch/hexagram/internal/platform/timeouts"
	"github.com/louisbranch/hexagram/internal/services/mcp/domain"
	"github.com/louisbranch/hexagram/internal/services/oracle/api/grpc/oracle"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

var serverName = branding.AppName + " MCP"

// Config configures the MCP server.
type Config struct {
	// OracleAddr is the oracle gRPC address.
	OracleAddr string
	// Now replaces time.Now for the default throw date.
	Now func() time.Time
}

// Server wraps the MCP server and its oracle connection.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
}

// New dials the oracle and registers the tools.
func New(ctx context.Context, cfg Config) (*Server, error) {
	conn, err := dialOracle(ctx, cfg.OracleAddr)
	if err != nil {
		return nil, err
	}
	server, err := newServer(oracle.NewClient(conn), cfg.Now)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	server.conn = conn
	return server, nil
}

func newServer(thrower domain.Thrower, now func() time.Time) (*Server, error) {
	if thrower == nil {
		return nil, errors.New("thrower is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(mcpServer, domain.ThrowTool(), domain.ThrowHandler(thrower, now))
	return &Server{mcpServer: mcpServer}, nil
}

// Run is the service entrypoint for MCP and blocks until the client
// disconnects or ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return runWithTransport(ctx, cfg, &mcp.StdioTransport{})
}

func runWithTransport(ctx context.Context, cfg Config, transport mcp.Transport) error {
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.serveWithTransport(ctx, transport)
}

// Serve runs the MCP server on stdio.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the oracle connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// serveWithTransport runs until the transport closes. The server and its
// connection share a single exit path.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close oracle connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close oracle connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

func dialOracle(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("oracle address is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logf := func(format string, args ...any) {
		log.Printf("oracle %s", fmt.Sprintf(format, args...))
	}
	conn, err := platformgrpc.Dial(ctx, addr, platformgrpc.DialConfig{
		Timeout: timeouts.GRPCDial,
		Service: oracle.ServiceName,
		Logf:    logf,
	})
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) && dialErr.Stage == platformgrpc.DialStageConnect {
			return nil, fmt.Errorf("connect to oracle at %s: %w", addr, dialErr.Err)
		}
		return nil, fmt.Errorf("oracle at %s is not healthy: %w", addr, err)
	}
	return conn, nil
}
