package oracle

import (
	"context"
	"fmt"

	"golang.org/x/text/language"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	apperrors "github.com/louisbranch/hexagram/internal/platform/errors"
	"github.com/louisbranch/hexagram/internal/services/oracle/app"
)

// Client is a typed caller for oracle.v1.OracleService.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Throw asks the remote oracle for a reading. Domain failures come back as
// *errors.Error values so callers can match on the code.
func (c *Client) Throw(ctx context.Context, req app.Request) (app.Reading, error) {
	if req.PromptSet {
		// Protobuf strings cannot hold invalid UTF-8.
		if err := app.ValidatePrompt(req.Prompt); err != nil {
			return app.Reading{}, fmt.Errorf("oracle throw: %w", err)
		}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ThrowMethod, RequestToStruct(req), out); err != nil {
		return app.Reading{}, fmt.Errorf("oracle throw: %w", apperrors.FromGRPCStatus(err))
	}
	reading, err := ReadingFromStruct(out)
	if err != nil {
		return app.Reading{}, fmt.Errorf("oracle throw: %w", err)
	}
	return reading, nil
}

// WithLanguage returns a context asking the oracle for error details in tag.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return metadata.AppendToOutgoingContext(ctx, AcceptLanguageKey, tag.String())
}
