// Package web parses web command flags and launches the web server.
package web

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/louisbranch/hexagram/internal/platform/cmd"
	"github.com/louisbranch/hexagram/internal/platform/discovery"
	"github.com/louisbranch/hexagram/internal/platform/timeouts"
	"github.com/louisbranch/hexagram/internal/services/web"
)

// Config holds web command configuration.
type Config struct {
	HTTPAddr string `env:"HEXAGRAM_WEB_HTTP_ADDR"`
	// OracleAddr is optional; readings are cast in process without it.
	OracleAddr      string        `env:"HEXAGRAM_WEB_ORACLE_ADDR"`
	GRPCDialTimeout time.Duration `env:"HEXAGRAM_WEB_DIAL_TIMEOUT"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.HTTPAddr = discovery.OrDefaultHTTPListenAddr(cfg.HTTPAddr, discovery.ServiceWeb)
	if cfg.GRPCDialTimeout <= 0 {
		cfg.GRPCDialTimeout = timeouts.GRPCDial
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.OracleAddr, "oracle-addr", cfg.OracleAddr, "oracle gRPC address (empty casts in process)")
	fs.DurationVar(&cfg.GRPCDialTimeout, "grpc-dial-timeout", cfg.GRPCDialTimeout, "oracle dial and health wait timeout")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:        cfg.HTTPAddr,
			OracleAddr:      cfg.OracleAddr,
			GRPCDialTimeout: cfg.GRPCDialTimeout,
		})
		if err != nil {
			return err
		}
		defer server.Close()

		return server.ListenAndServe(ctx)
	})
}
