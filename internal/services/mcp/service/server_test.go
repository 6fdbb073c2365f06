package service

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/hexagram/internal/services/mcp/domain"
	"github.com/louisbranch/hexagram/internal/services/oracle/app"
	oracleserver "github.com/louisbranch/hexagram/internal/services/oracle/server"
)

func fixedClock() time.Time {
	return time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
}

func decodeStructuredContent[T any](t *testing.T, value any) T {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var output T
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return output
}

// connect runs serve over in-memory transports and returns a client session.
// The returned stop func cancels the server and waits for it.
func connect(t *testing.T, serve func(context.Context, mcp.Transport) error) (*mcp.ClientSession, func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- serve(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer connectCancel()
	session, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}

	stop := func() {
		cancel()
		select {
		case err := <-serveErr:
			if err != nil {
				t.Errorf("serve returned error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("server did not stop after cancel")
		}
		_ = session.Close()
	}
	return session, stop
}

func callThrow(t *testing.T, session *mcp.ClientSession, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: domain.ThrowToolName, Arguments: args})
	if err != nil {
		t.Fatalf("call %s: %v", domain.ThrowToolName, err)
	}
	return result
}

func TestNewServerRequiresThrower(t *testing.T) {
	if _, err := newServer(nil, nil); err == nil {
		t.Fatal("expected error for nil thrower")
	}
}

func TestServeOverInMemoryTransport(t *testing.T) {
	server, err := newServer(app.NewService(), fixedClock)
	if err != nil {
		t.Fatalf("newServer() error = %v", err)
	}
	session, stop := connect(t, server.serveWithTransport)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	if len(tools.Tools) != 1 || tools.Tools[0].Name != domain.ThrowToolName {
		t.Fatalf("tools = %+v, want only %s", tools.Tools, domain.ThrowToolName)
	}

	result := callThrow(t, session, map[string]any{"prompt": "Will it rain?"})
	if result.IsError {
		t.Fatalf("throw failed: %+v", result)
	}
	output := decodeStructuredContent[domain.ThrowResult](t, result.StructuredContent)
	if output.AsOf != "2024-01-01" || output.Primary.Number != 38 || output.Relating != nil {
		t.Fatalf("output = %+v, want #38 on 2024-01-01", output)
	}
}

func TestThrowToolReportsBadDate(t *testing.T) {
	server, err := newServer(app.NewService(), fixedClock)
	if err != nil {
		t.Fatalf("newServer() error = %v", err)
	}
	session, stop := connect(t, server.serveWithTransport)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      domain.ThrowToolName,
		Arguments: map[string]any{"prompt": "q", "asof": "someday"},
	})
	if err == nil && (result == nil || !result.IsError) {
		t.Fatalf("expected tool error, got %+v", result)
	}
}

func TestRunWithTransportThrowsThroughOracle(t *testing.T) {
	oracle, err := oracleserver.NewWithAddr("127.0.0.1:0")
	if err != nil {
		t.Fatalf("oracle NewWithAddr() error = %v", err)
	}
	oracleCtx, oracleCancel := context.WithCancel(context.Background())
	oracleDone := make(chan error, 1)
	go func() { oracleDone <- oracle.Serve(oracleCtx) }()
	defer func() {
		oracleCancel()
		<-oracleDone
	}()

	cfg := Config{OracleAddr: oracle.Addr(), Now: fixedClock}
	session, stop := connect(t, func(ctx context.Context, transport mcp.Transport) error {
		return runWithTransport(ctx, cfg, transport)
	})
	defer stop()

	result := callThrow(t, session, map[string]any{
		"prompt": "Once there was a way to get back home.",
		"asof":   "2024-01-01",
	})
	if result.IsError {
		t.Fatalf("throw failed: %+v", result)
	}
	output := decodeStructuredContent[domain.ThrowResult](t, result.StructuredContent)
	if output.Primary.Number != 4 || output.Relating == nil || output.Relating.Number != 18 {
		t.Fatalf("output = %+v, want #4 relating #18", output)
	}
	if !strings.HasPrefix(output.Text, "---   --- 8\n") {
		t.Fatalf("text = %q", output.Text)
	}
}

func TestNewFailsWithoutOracle(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty oracle address")
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	_ = listener.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err = New(ctx, Config{OracleAddr: addr})
	if err == nil {
		t.Fatal("expected dial error")
	}
	if !strings.Contains(err.Error(), addr) {
		t.Fatalf("error = %v, want address %s", err, addr)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	var nilServer *Server
	if err := nilServer.Close(); err != nil {
		t.Fatalf("Close() on nil = %v", err)
	}
	if err := (&Server{}).Close(); err != nil {
		t.Fatalf("Close() without conn = %v", err)
	}
}
