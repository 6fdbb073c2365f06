package web

import (
	"context"
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	want := Config{HTTPAddr: ":61849", GRPCDialTimeout: 2 * time.Second}
	if cfg != want {
		t.Fatalf("ParseConfig() = %+v, want %+v", cfg, want)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("HEXAGRAM_WEB_HTTP_ADDR", "env:1")
	t.Setenv("HEXAGRAM_WEB_ORACLE_ADDR", "oracle:8095")
	t.Setenv("HEXAGRAM_WEB_DIAL_TIMEOUT", "750ms")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "flag:2"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	want := Config{HTTPAddr: "flag:2", OracleAddr: "oracle:8095", GRPCDialTimeout: 750 * time.Millisecond}
	if cfg != want {
		t.Fatalf("ParseConfig() = %+v, want %+v", cfg, want)
	}
}

func TestRunRejectsEmptyAddress(t *testing.T) {
	t.Setenv("HEXAGRAM_OTEL_ENDPOINT", "")

	if err := Run(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Setenv("HEXAGRAM_OTEL_ENDPOINT", "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, Config{HTTPAddr: "127.0.0.1:0"}) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
