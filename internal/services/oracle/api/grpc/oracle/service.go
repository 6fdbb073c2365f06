package oracle

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	apperrors "github.com/louisbranch/hexagram/internal/platform/errors"
	"github.com/louisbranch/hexagram/internal/platform/i18n"
	"github.com/louisbranch/hexagram/internal/services/oracle/app"
)

// AcceptLanguageKey is the metadata key selecting the locale of error
// details.
const AcceptLanguageKey = "accept-language"

// Service implements OracleServer on top of the application service.
type Service struct {
	app *app.Service
}

// NewService creates the gRPC adapter for svc.
func NewService(svc *app.Service) *Service {
	return &Service{app: svc}
}

// Throw casts a reading.
func (s *Service) Throw(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "throw request is required")
	}
	if s == nil || s.app == nil {
		return nil, status.Error(codes.Internal, "oracle service is not configured")
	}

	req, err := RequestFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	reading, err := s.app.Throw(ctx, req)
	if err != nil {
		if domainErr, ok := apperrors.As(err); ok {
			return nil, domainErr.ToGRPCStatus(localeFromContext(ctx))
		}
		return nil, status.Errorf(codes.Internal, "throw: %v", err)
	}
	out, err := ReadingToStruct(reading)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func localeFromContext(ctx context.Context) language.Tag {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return i18n.DefaultTag()
	}
	values := md.Get(AcceptLanguageKey)
	if len(values) == 0 {
		return i18n.DefaultTag()
	}
	tags, _, err := language.ParseAcceptLanguage(strings.Join(values, ","))
	if err != nil {
		return i18n.DefaultTag()
	}
	return i18n.MatchTags(tags)
}
