// Package throw parses the throw CLI flags and prints a reading.
package throw

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/hexagram/internal/oracle/seed"
	entrypoint "github.com/louisbranch/hexagram/internal/platform/cmd"
	apperrors "github.com/louisbranch/hexagram/internal/platform/errors"
	"github.com/louisbranch/hexagram/internal/platform/i18n"
	"github.com/louisbranch/hexagram/internal/services/oracle/app"
)

// Config holds throw command configuration.
type Config struct {
	Prompt string
	// PromptSet is true when -prompt was given or positional words were.
	PromptSet bool
	AsOf      string
	Style     bool
}

// ParseConfig parses flags into Config. Positional arguments form the
// prompt when -prompt is absent.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.Prompt, "prompt", "", "question to ask")
	fs.StringVar(&cfg.AsOf, "asof", "", "date as YYYY-MM-DD (default today)")
	fs.BoolVar(&cfg.Style, "style", false, "render styled glyphs with hexagram names")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "prompt" {
			cfg.PromptSet = true
		}
	})
	if !cfg.PromptSet && fs.NArg() > 0 {
		cfg.Prompt = strings.Join(fs.Args(), " ")
		cfg.PromptSet = true
	}
	return cfg, nil
}

// Run casts the reading for cfg and writes it to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return RunWithService(ctx, app.NewService(), cfg, out)
}

// RunWithService is Run over an explicit service, mainly for tests.
func RunWithService(ctx context.Context, svc *app.Service, cfg Config, out io.Writer) error {
	if svc == nil {
		return errors.New("service is required")
	}
	if out == nil {
		out = io.Discard
	}
	asof := strings.TrimSpace(cfg.AsOf)
	if asof == "" {
		asof = seed.FormatDate(svc.Today())
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceThrow, func(ctx context.Context) error {
		reading, err := svc.Throw(ctx, app.Request{Prompt: cfg.Prompt, PromptSet: cfg.PromptSet, AsOf: asof})
		if err != nil {
			return err
		}
		if cfg.Style {
			_, err = io.WriteString(out, renderStyled(reading))
		} else {
			_, err = io.WriteString(out, reading.Text+"\n")
		}
		if err != nil {
			return fmt.Errorf("write reading: %w", err)
		}
		return nil
	})
}

// ErrorMessage returns the text to show a user for err.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if domainErr, ok := apperrors.As(err); ok && domainErr.Code != apperrors.CodeUnknown {
		return domainErr.UserMessage(i18n.DefaultTag())
	}
	return err.Error()
}
