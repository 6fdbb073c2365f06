// Package errors carries machine-readable error codes across the oracle's
// surfaces and maps them onto gRPC and HTTP statuses.
package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown marks failures that carry no domain meaning.
	CodeUnknown Code = "UNKNOWN"

	// CodePromptMissing means the request omitted the prompt parameter
	// entirely. An empty prompt is a valid question.
	CodePromptMissing Code = "PROMPT_MISSING"
	// CodePromptInvalid means the prompt is not valid UTF-8 text.
	CodePromptInvalid Code = "PROMPT_INVALID"
	// CodeAsOfInvalid means the date was absent or not YYYY-MM-DD.
	CodeAsOfInvalid Code = "ASOF_INVALID"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodePromptMissing, CodePromptInvalid, CodeAsOfInvalid:
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodePromptMissing, CodePromptInvalid, CodeAsOfInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// MessageKey is the i18n catalog key holding the user-facing text for c.
func (c Code) MessageKey() string {
	return "error." + string(c)
}
