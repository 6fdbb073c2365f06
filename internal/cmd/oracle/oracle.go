// Package oracle parses oracle service flags and launches the gRPC server.
package oracle

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/hexagram/internal/platform/cmd"
	"github.com/louisbranch/hexagram/internal/platform/discovery"
	"github.com/louisbranch/hexagram/internal/services/oracle/server"
)

// Config holds oracle command configuration.
type Config struct {
	Port int `env:"HEXAGRAM_ORACLE_PORT"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Port == 0 {
		cfg.Port = discovery.GRPCPort(discovery.ServiceOracle)
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The oracle gRPC server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the oracle gRPC service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceOracle, func(ctx context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
