// Package errors maps oracle failures onto HTTP statuses and user-facing
// messages for the web surface.
package errors

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "github.com/louisbranch/hexagram/internal/platform/errors"
	platformi18n "github.com/louisbranch/hexagram/internal/platform/i18n"
)

// HTTPStatus maps err to an HTTP status. Domain errors use their code,
// bare gRPC statuses use the transport code, anything else is a 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if domainErr, ok := apperrors.As(err); ok && domainErr.Code != apperrors.CodeUnknown {
		return domainErr.Code.HTTPStatus()
	}
	st, ok := status.FromError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unavailable, codes.DeadlineExceeded:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns a translated message safe to show a visitor.
// Internal details never leak: unknown failures use the generic text.
func PublicMessage(tag language.Tag, err error) string {
	if err == nil {
		return ""
	}
	if domainErr, ok := apperrors.As(err); ok && domainErr.Code != apperrors.CodeUnknown {
		return domainErr.UserMessage(tag)
	}
	key := "error.internal"
	if HTTPStatus(err) == http.StatusServiceUnavailable {
		key = "error.unavailable"
	}
	return strings.TrimSpace(platformi18n.Printer(tag).Sprintf(key))
}
