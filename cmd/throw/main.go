// Package main prints the hexagram for a question and date.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	throwcmd "github.com/louisbranch/hexagram/internal/cmd/throw"
	"github.com/louisbranch/hexagram/internal/platform/config"
)

func main() {
	cfg, err := throwcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := throwcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("throw: %s", throwcmd.ErrorMessage(err))
	}
}
