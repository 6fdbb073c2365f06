// Package mcp parses MCP command flags and serves the MCP tools on stdio.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/hexagram/internal/platform/cmd"
	"github.com/louisbranch/hexagram/internal/platform/discovery"
	"github.com/louisbranch/hexagram/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	OracleAddr string `env:"HEXAGRAM_ORACLE_ADDR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.OracleAddr = discovery.OrDefaultGRPCAddr(cfg.OracleAddr, discovery.ServiceOracle)
	fs.StringVar(&cfg.OracleAddr, "addr", cfg.OracleAddr, "oracle gRPC address")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return service.Run(ctx, service.Config{OracleAddr: cfg.OracleAddr})
	})
}
