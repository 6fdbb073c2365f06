package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"google.golang.org/grpc"

	platformgrpc "github.com/louisbranch/hexagram/internal/platform/grpc"
	"github.com/louisbranch/hexagram/internal/platform/timeouts"
	"github.com/louisbranch/hexagram/internal/services/oracle/api/grpc/oracle"
	"github.com/louisbranch/hexagram/internal/services/oracle/app"
)

// Thrower casts readings. Both *app.Service and the oracle gRPC client
// satisfy it.
type Thrower interface {
	Throw(ctx context.Context, req app.Request) (app.Reading, error)
}

// Config defines the web server settings.
type Config struct {
	// HTTPAddr is the address the server listens on.
	HTTPAddr string
	// OracleAddr is the oracle gRPC address. When empty, readings are cast
	// in process.
	OracleAddr string
	// GRPCDialTimeout bounds the oracle dial and health wait.
	GRPCDialTimeout time.Duration
	// Now replaces time.Now for the form's default date.
	Now func() time.Time
}

// Server hosts the oracle web pages.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	oracleConn *grpc.ClientConn
}

// NewServer builds a server from config.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.GRPCDialTimeout <= 0 {
		config.GRPCDialTimeout = timeouts.GRPCDial
	}

	var thrower Thrower = app.NewService(app.WithClock(config.Now))
	var oracleConn *grpc.ClientConn
	if addr := strings.TrimSpace(config.OracleAddr); addr != "" {
		conn, err := dialOracle(ctx, addr, config.GRPCDialTimeout)
		if err != nil {
			return nil, err
		}
		oracleConn = conn
		thrower = oracle.NewClient(conn)
	}

	handler, err := NewHandler(thrower, config.Now)
	if err != nil {
		if oracleConn != nil {
			_ = oracleConn.Close()
		}
		return nil, fmt.Errorf("build handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		oracleConn: oracleConn,
	}, nil
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	if listener == nil {
		return errors.New("listener is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", listener.Addr())
	go func() {
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the oracle connection, if any.
func (s *Server) Close() {
	if s == nil || s.oracleConn == nil {
		return
	}
	if err := s.oracleConn.Close(); err != nil {
		log.Printf("close oracle gRPC connection: %v", err)
	}
}

func dialOracle(ctx context.Context, addr string, timeout time.Duration) (*grpc.ClientConn, error) {
	logf := func(format string, args ...any) {
		log.Printf("oracle %s", fmt.Sprintf(format, args...))
	}
	conn, err := platformgrpc.Dial(ctx, addr, platformgrpc.DialConfig{
		Timeout: timeout,
		Service: oracle.ServiceName,
		Logf:    logf,
	})
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) && dialErr.Stage == platformgrpc.DialStageHealth {
			return nil, fmt.Errorf("oracle gRPC health check failed for %s: %w", addr, dialErr.Err)
		}
		return nil, fmt.Errorf("dial oracle gRPC %s: %w", addr, err)
	}
	return conn, nil
}
