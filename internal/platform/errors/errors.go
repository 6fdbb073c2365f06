package errors

import (
	stderrors "errors"

	"golang.org/x/text/language"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/hexagram/internal/platform/i18n"
)

// Domain is the errdetails domain for hexagram errors.
const Domain = "github.com/louisbranch/hexagram"

// MetadataAsOf is the metadata key holding a rejected date value.
const MetadataAsOf = "asof"

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message for logs
	Metadata map[string]string // Values for the user-facing message
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapWithMetadata creates a domain error with metadata and a cause.
func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata, Cause: cause}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// CodeOf returns the domain code of err, or CodeUnknown.
func CodeOf(err error) Code {
	if domainErr, ok := As(err); ok {
		return domainErr.Code
	}
	return CodeUnknown
}

// UserMessage renders the translated, user-facing text for e.
func (e *Error) UserMessage(tag language.Tag) string {
	p := i18n.Printer(tag)
	switch e.Code {
	case CodeAsOfInvalid:
		return p.Sprintf(e.Code.MessageKey(), e.Metadata[MetadataAsOf])
	case CodePromptMissing, CodePromptInvalid:
		return p.Sprintf(e.Code.MessageKey())
	default:
		return p.Sprintf(CodeUnknown.MessageKey())
	}
}

// ToGRPCStatus converts e to a gRPC status carrying an ErrorInfo with the
// code as reason and a LocalizedMessage for tag.
func (e *Error) ToGRPCStatus(tag language.Tag) error {
	grpcCode := e.Code.GRPCCode()
	st, err := status.New(grpcCode, e.Message).WithDetails(
		&errdetails.ErrorInfo{
			Reason:   string(e.Code),
			Domain:   Domain,
			Metadata: e.Metadata,
		},
		&errdetails.LocalizedMessage{
			Locale:  tag.String(),
			Message: e.UserMessage(tag),
		},
	)
	if err != nil {
		return status.New(grpcCode, e.Message).Err()
	}
	return st.Err()
}

// FromGRPCStatus rebuilds a domain error from a status produced by
// ToGRPCStatus. Statuses from other domains come back as CodeUnknown.
func FromGRPCStatus(err error) *Error {
	st, ok := status.FromError(err)
	if !ok {
		return &Error{Code: CodeUnknown, Message: err.Error(), Cause: err}
	}
	for _, detail := range st.Details() {
		info, ok := detail.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != Domain {
			continue
		}
		return &Error{
			Code:     Code(info.GetReason()),
			Message:  st.Message(),
			Metadata: info.GetMetadata(),
			Cause:    err,
		}
	}
	return &Error{Code: CodeUnknown, Message: st.Message(), Cause: err}
}
