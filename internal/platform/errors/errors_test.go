package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"golang.org/x/text/language"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/hexagram/internal/platform/i18n"
)

func TestCodeMappings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     Code
		wantGRPC codes.Code
		wantHTTP int
	}{
		{code: CodePromptMissing, wantGRPC: codes.InvalidArgument, wantHTTP: http.StatusBadRequest},
		{code: CodePromptInvalid, wantGRPC: codes.InvalidArgument, wantHTTP: http.StatusBadRequest},
		{code: CodeAsOfInvalid, wantGRPC: codes.InvalidArgument, wantHTTP: http.StatusBadRequest},
		{code: CodeUnknown, wantGRPC: codes.Internal, wantHTTP: http.StatusInternalServerError},
		{code: Code("SOMETHING_ELSE"), wantGRPC: codes.Internal, wantHTTP: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.wantGRPC {
			t.Fatalf("%s.GRPCCode() = %v, want %v", tt.code, got, tt.wantGRPC)
		}
		if got := tt.code.HTTPStatus(); got != tt.wantHTTP {
			t.Fatalf("%s.HTTPStatus() = %d, want %d", tt.code, got, tt.wantHTTP)
		}
	}
}

func TestErrorIsMatchesCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("throw: %w", New(CodeAsOfInvalid, "bad date"))
	if !stderrors.Is(err, &Error{Code: CodeAsOfInvalid}) {
		t.Fatal("expected wrapped error to match code")
	}
	if stderrors.Is(err, &Error{Code: CodePromptMissing}) {
		t.Fatal("expected different code not to match")
	}
	if got := CodeOf(err); got != CodeAsOfInvalid {
		t.Fatalf("CodeOf() = %s, want %s", got, CodeAsOfInvalid)
	}
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("CodeOf(plain) = %s, want %s", got, CodeUnknown)
	}
}

func TestWrapWithMetadataUnwraps(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("parse failure")
	err := WrapWithMetadata(CodeAsOfInvalid, "invalid asof", map[string]string{MetadataAsOf: "x"}, cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if err.Error() != "invalid asof" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "invalid asof")
	}
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	err := WrapWithMetadata(CodeAsOfInvalid, "invalid asof", map[string]string{MetadataAsOf: "2024-13-01"}, nil)
	if got, want := err.UserMessage(i18n.EnglishUS), `"2024-13-01" is not a valid YYYY-MM-DD date.`; got != want {
		t.Fatalf("UserMessage(en-US) = %q, want %q", got, want)
	}
	if got, want := New(CodePromptMissing, "x").UserMessage(i18n.PortugueseBR), "Uma pergunta é obrigatória."; got != want {
		t.Fatalf("UserMessage(pt-BR) = %q, want %q", got, want)
	}
	if got, want := New(CodePromptInvalid, "x").UserMessage(i18n.EnglishUS), "The question must be valid UTF-8 text."; got != want {
		t.Fatalf("UserMessage(prompt invalid) = %q, want %q", got, want)
	}
	if got, want := New(Code("OTHER"), "x").UserMessage(language.AmericanEnglish), "Something went wrong."; got != want {
		t.Fatalf("UserMessage(unknown) = %q, want %q", got, want)
	}
}

func TestToGRPCStatusAttachesDetails(t *testing.T) {
	t.Parallel()

	err := WrapWithMetadata(CodeAsOfInvalid, "invalid asof", map[string]string{MetadataAsOf: "soon"}, nil)
	st, ok := status.FromError(err.ToGRPCStatus(i18n.EnglishUS))
	if !ok {
		t.Fatal("expected gRPC status")
	}
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("code = %v, want %v", st.Code(), codes.InvalidArgument)
	}

	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil || info.GetReason() != string(CodeAsOfInvalid) || info.GetDomain() != Domain {
		t.Fatalf("ErrorInfo = %v, want reason %s in %s", info, CodeAsOfInvalid, Domain)
	}
	if info.GetMetadata()[MetadataAsOf] != "soon" {
		t.Fatalf("metadata = %v, want asof=soon", info.GetMetadata())
	}
	if localized == nil || localized.GetLocale() != "en-US" {
		t.Fatalf("LocalizedMessage = %v, want en-US", localized)
	}
}

func TestFromGRPCStatusRoundTrip(t *testing.T) {
	t.Parallel()

	sent := New(CodePromptMissing, "prompt is required")
	got := FromGRPCStatus(sent.ToGRPCStatus(i18n.EnglishUS))
	if got.Code != CodePromptMissing {
		t.Fatalf("Code = %s, want %s", got.Code, CodePromptMissing)
	}
	if got.Message != "prompt is required" {
		t.Fatalf("Message = %q, want %q", got.Message, "prompt is required")
	}

	foreign := FromGRPCStatus(status.Error(codes.Unavailable, "down"))
	if foreign.Code != CodeUnknown {
		t.Fatalf("foreign Code = %s, want %s", foreign.Code, CodeUnknown)
	}
	plain := FromGRPCStatus(stderrors.New("boom"))
	if plain.Code != CodeUnknown || plain.Message != "boom" {
		t.Fatalf("plain = %+v, want unknown boom", plain)
	}
}
