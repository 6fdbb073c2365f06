// Package app validates throw requests and turns them into readings. It is
// the single entry point every surface (web, gRPC, MCP, CLI) goes through.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/hexagram/internal/oracle/coin"
	"github.com/louisbranch/hexagram/internal/oracle/hexagram"
	"github.com/louisbranch/hexagram/internal/oracle/seed"
	apperrors "github.com/louisbranch/hexagram/internal/platform/errors"
	"github.com/louisbranch/hexagram/internal/platform/otel"
)

const tracerName = "github.com/louisbranch/hexagram/internal/services/oracle/app"

// Request is an unvalidated throw request as it arrives from a surface.
type Request struct {
	Prompt string
	// PromptSet distinguishes an absent prompt parameter from an empty one.
	PromptSet bool
	AsOf      string
}

// Figure identifies a hexagram in the King Wen sequence.
type Figure struct {
	Number int
	Name   string
}

// Reading is the outcome of one throw.
type Reading struct {
	Prompt   string
	AsOf     civil.Date
	Version  int
	Seed     seed.Seed
	Hexagram hexagram.Hexagram
	// Text is the canonical six-line rendering, bottom line first.
	Text    string
	Primary Figure
	// Relating is set only when at least one line is changing.
	Relating *Figure
}

// Service casts readings.
type Service struct {
	tracer trace.Tracer
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now for Today.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService returns a Service tracing through the global provider.
func NewService(opts ...Option) *Service {
	s := &Service{
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the service clock's current date in its local zone.
func (s *Service) Today() civil.Date {
	return civil.DateOf(s.now())
}

// Throw validates req and casts its reading.
func (s *Service) Throw(ctx context.Context, req Request) (Reading, error) {
	_, span := s.tracer.Start(ctx, "oracle.Throw")
	defer span.End()

	if !req.PromptSet {
		err := apperrors.New(apperrors.CodePromptMissing, "prompt is required")
		span.SetStatus(codes.Error, err.Error())
		return Reading{}, err
	}
	if err := ValidatePrompt(req.Prompt); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Reading{}, err
	}
	asof, err := ParseAsOf(req.AsOf)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Reading{}, err
	}

	reading := Cast(req.Prompt, asof)
	span.SetAttributes(
		attribute.Int("oracle.seed_version", reading.Version),
		attribute.String("oracle.asof", asof.String()),
		attribute.Int("oracle.primary", reading.Primary.Number),
		attribute.Bool("oracle.changing", reading.Relating != nil),
	)
	return reading, nil
}

// Cast builds the reading for an already validated prompt and date.
func Cast(prompt string, asof civil.Date) Reading {
	s := seed.Derive([]byte(prompt), asof)
	h := hexagram.Draw(coin.New(s))
	reading := Reading{
		Prompt:   prompt,
		AsOf:     asof,
		Version:  seed.Version,
		Seed:     s,
		Hexagram: h,
		Text:     h.String(),
		Primary:  Figure{Number: h.Number(), Name: h.Name()},
	}
	if relating, ok := h.Relating(); ok {
		n := relating.Number()
		reading.Relating = &Figure{Number: n, Name: hexagram.Title(n)}
	}
	return reading
}

// ValidatePrompt rejects prompts that are not valid UTF-8. Every surface
// carries the prompt as text, so a reading must not depend on which one
// delivered it.
func ValidatePrompt(prompt string) error {
	if !utf8.ValidString(prompt) {
		return apperrors.New(apperrors.CodePromptInvalid, "prompt is not valid UTF-8")
	}
	return nil
}

// ParseAsOf parses a YYYY-MM-DD calendar date, ignoring surrounding spaces.
func ParseAsOf(value string) (civil.Date, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return civil.Date{}, apperrors.WrapWithMetadata(apperrors.CodeAsOfInvalid, "asof is required",
			map[string]string{apperrors.MetadataAsOf: value}, nil)
	}
	date, err := civil.ParseDate(trimmed)
	if err != nil || !date.IsValid() {
		if err == nil {
			err = fmt.Errorf("date %s is not valid", trimmed)
		}
		return civil.Date{}, apperrors.WrapWithMetadata(apperrors.CodeAsOfInvalid,
			fmt.Sprintf("invalid asof %q", trimmed),
			map[string]string{apperrors.MetadataAsOf: trimmed}, err)
	}
	return date, nil
}
