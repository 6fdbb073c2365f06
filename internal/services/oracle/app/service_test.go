package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"

	"github.com/louisbranch/hexagram/internal/oracle/seed"
	apperrors "github.com/louisbranch/hexagram/internal/platform/errors"
)

const goldenPrompt = "Once there was a way to get back home."

var goldenDate = civil.Date{Year: 2024, Month: time.January, Day: 1}

func TestThrowGoldenReading(t *testing.T) {
	t.Parallel()

	reading, err := NewService().Throw(context.Background(), Request{Prompt: goldenPrompt, PromptSet: true, AsOf: "2024-01-01"})
	if err != nil {
		t.Fatalf("Throw() error = %v", err)
	}

	want := "---   --- 8\n--------- 7\n--- x --- 6\n---   --- 8\n---   --- 8\n--------- 7"
	if reading.Text != want {
		t.Fatalf("Text = %q, want %q", reading.Text, want)
	}
	if reading.AsOf != goldenDate {
		t.Fatalf("AsOf = %v, want %v", reading.AsOf, goldenDate)
	}
	if reading.Version != seed.Version {
		t.Fatalf("Version = %d, want %d", reading.Version, seed.Version)
	}
	if reading.Seed != seed.Derive([]byte(goldenPrompt), goldenDate) {
		t.Fatalf("Seed = %s, want derived seed", reading.Seed)
	}
	if diff := cmp.Diff(Figure{Number: 4, Name: "Youthful Folly"}, reading.Primary); diff != "" {
		t.Fatalf("Primary mismatch (-want +got):\n%s", diff)
	}
	if reading.Relating == nil || reading.Relating.Number != 18 {
		t.Fatalf("Relating = %+v, want #18", reading.Relating)
	}
}

func TestThrowWithoutChangingLines(t *testing.T) {
	t.Parallel()

	reading, err := NewService().Throw(context.Background(), Request{Prompt: "What now?", PromptSet: true, AsOf: "2024-01-01"})
	if err != nil {
		t.Fatalf("Throw() error = %v", err)
	}
	if diff := cmp.Diff([]int{7, 7, 7, 7, 7, 7}, reading.Hexagram.Codes()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if reading.Primary.Number != 1 || reading.Primary.Name != "The Creative" {
		t.Fatalf("Primary = %+v, want #1 The Creative", reading.Primary)
	}
	if reading.Relating != nil {
		t.Fatalf("Relating = %+v, want nil", reading.Relating)
	}
}

func TestThrowAcceptsEmptyPrompt(t *testing.T) {
	t.Parallel()

	reading, err := NewService().Throw(context.Background(), Request{Prompt: "", PromptSet: true, AsOf: "2024-01-01"})
	if err != nil {
		t.Fatalf("Throw() error = %v", err)
	}
	if diff := cmp.Diff([]int{8, 9, 9, 9, 8, 7}, reading.Hexagram.Codes()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestThrowTrimsDate(t *testing.T) {
	t.Parallel()

	a, err := NewService().Throw(context.Background(), Request{Prompt: "abc", PromptSet: true, AsOf: " 2024-01-01\n"})
	if err != nil {
		t.Fatalf("Throw() error = %v", err)
	}
	b := Cast("abc", goldenDate)
	if a.Text != b.Text {
		t.Fatalf("Text = %q, want %q", a.Text, b.Text)
	}
}

func TestThrowValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      Request
		wantCode apperrors.Code
	}{
		{name: "missing prompt", req: Request{AsOf: "2024-01-01"}, wantCode: apperrors.CodePromptMissing},
		{name: "invalid utf-8 prompt", req: Request{Prompt: "caf\xe9?", PromptSet: true, AsOf: "2024-01-01"}, wantCode: apperrors.CodePromptInvalid},
		{name: "missing asof", req: Request{Prompt: "q", PromptSet: true}, wantCode: apperrors.CodeAsOfInvalid},
		{name: "blank asof", req: Request{Prompt: "q", PromptSet: true, AsOf: "   "}, wantCode: apperrors.CodeAsOfInvalid},
		{name: "bad format", req: Request{Prompt: "q", PromptSet: true, AsOf: "01/01/2024"}, wantCode: apperrors.CodeAsOfInvalid},
		{name: "impossible day", req: Request{Prompt: "q", PromptSet: true, AsOf: "2023-02-29"}, wantCode: apperrors.CodeAsOfInvalid},
		{name: "month out of range", req: Request{Prompt: "q", PromptSet: true, AsOf: "2024-13-01"}, wantCode: apperrors.CodeAsOfInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewService().Throw(context.Background(), tt.req)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, &apperrors.Error{Code: tt.wantCode}) {
				t.Fatalf("Throw() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestParseAsOf(t *testing.T) {
	t.Parallel()

	got, err := ParseAsOf("2024-02-29")
	if err != nil {
		t.Fatalf("ParseAsOf() error = %v", err)
	}
	if want := (civil.Date{Year: 2024, Month: time.February, Day: 29}); got != want {
		t.Fatalf("ParseAsOf() = %v, want %v", got, want)
	}

	_, err = ParseAsOf("2024-1-1x")
	domainErr, ok := apperrors.As(err)
	if !ok {
		t.Fatalf("ParseAsOf() error = %T, want domain error", err)
	}
	if domainErr.Metadata[apperrors.MetadataAsOf] != "2024-1-1x" {
		t.Fatalf("Metadata = %v, want rejected value", domainErr.Metadata)
	}
	if domainErr.Unwrap() == nil {
		t.Fatal("expected parse cause")
	}
}

func TestCastIsDeterministic(t *testing.T) {
	t.Parallel()

	first := Cast(goldenPrompt, goldenDate)
	second := Cast(goldenPrompt, goldenDate)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Cast() not deterministic (-first +second):\n%s", diff)
	}
	next := Cast(goldenPrompt, goldenDate.AddDays(1))
	if next.Seed == first.Seed {
		t.Fatal("expected next day to derive a different seed")
	}
}

func TestToday(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, time.October, 16, 23, 30, 0, 0, time.UTC)
	svc := NewService(WithClock(func() time.Time { return fixed }))
	if got, want := svc.Today(), (civil.Date{Year: 2026, Month: time.October, Day: 16}); got != want {
		t.Fatalf("Today() = %v, want %v", got, want)
	}
	if NewService(WithClock(nil)).now == nil {
		t.Fatal("WithClock(nil) cleared the clock")
	}
}
