package oracle

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/louisbranch/hexagram/internal/oracle/hexagram"
	"github.com/louisbranch/hexagram/internal/oracle/seed"
	"github.com/louisbranch/hexagram/internal/services/oracle/app"
)

// Wire field names.
const (
	fieldPrompt   = "prompt"
	fieldAsOf     = "asof"
	fieldVersion  = "version"
	fieldSeed     = "seed"
	fieldText     = "text"
	fieldLines    = "lines"
	fieldPrimary  = "primary"
	fieldRelating = "relating"
	fieldNumber   = "number"
	fieldName     = "name"
)

// RequestToStruct encodes a request as {prompt?: string, asof: string}.
// prompt is omitted when the caller never set it.
func RequestToStruct(req app.Request) *structpb.Struct {
	fields := map[string]*structpb.Value{
		fieldAsOf: structpb.NewStringValue(req.AsOf),
	}
	if req.PromptSet {
		fields[fieldPrompt] = structpb.NewStringValue(req.Prompt)
	}
	return &structpb.Struct{Fields: fields}
}

// RequestFromStruct decodes a Throw request. A field holding anything other
// than a string is rejected.
func RequestFromStruct(in *structpb.Struct) (app.Request, error) {
	var req app.Request
	fields := in.GetFields()
	if v, ok := fields[fieldPrompt]; ok {
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return app.Request{}, fmt.Errorf("field %q must be a string", fieldPrompt)
		}
		req.Prompt = s.StringValue
		req.PromptSet = true
	}
	if v, ok := fields[fieldAsOf]; ok {
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return app.Request{}, fmt.Errorf("field %q must be a string", fieldAsOf)
		}
		req.AsOf = s.StringValue
	}
	return req, nil
}

// ReadingToStruct encodes a reading as
// {prompt, asof, version, seed, text, lines: [n...], primary: {number, name},
// relating?: {number, name}}.
func ReadingToStruct(r app.Reading) (*structpb.Struct, error) {
	lines := make([]any, 0, hexagram.Size)
	for _, code := range r.Hexagram.Codes() {
		lines = append(lines, code)
	}
	fields := map[string]any{
		fieldPrompt:  r.Prompt,
		fieldAsOf:    seed.FormatDate(r.AsOf),
		fieldVersion: r.Version,
		fieldSeed:    r.Seed.String(),
		fieldText:    r.Text,
		fieldLines:   lines,
		fieldPrimary: figureToMap(r.Primary),
	}
	if r.Relating != nil {
		fields[fieldRelating] = figureToMap(*r.Relating)
	}
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode reading: %w", err)
	}
	return out, nil
}

// ReadingFromStruct decodes a Throw response. The hexagram is rebuilt from
// the line codes and the text is checked against it.
func ReadingFromStruct(in *structpb.Struct) (app.Reading, error) {
	fields := in.GetFields()
	asof, err := app.ParseAsOf(fields[fieldAsOf].GetStringValue())
	if err != nil {
		return app.Reading{}, fmt.Errorf("decode asof: %w", err)
	}
	s, err := seed.Parse(fields[fieldSeed].GetStringValue())
	if err != nil {
		return app.Reading{}, err
	}
	values := fields[fieldLines].GetListValue().GetValues()
	codes := make([]int, len(values))
	for i, v := range values {
		codes[i] = int(v.GetNumberValue())
	}
	h, err := hexagram.FromCodes(codes)
	if err != nil {
		return app.Reading{}, fmt.Errorf("decode lines: %w", err)
	}
	text := fields[fieldText].GetStringValue()
	if text != h.String() {
		return app.Reading{}, fmt.Errorf("decode text: does not match lines")
	}

	reading := app.Reading{
		Prompt:   fields[fieldPrompt].GetStringValue(),
		AsOf:     asof,
		Version:  int(fields[fieldVersion].GetNumberValue()),
		Seed:     s,
		Hexagram: h,
		Text:     text,
		Primary:  figureFromStruct(fields[fieldPrimary].GetStructValue()),
	}
	if rel := fields[fieldRelating].GetStructValue(); rel != nil {
		f := figureFromStruct(rel)
		reading.Relating = &f
	}
	return reading, nil
}

func figureToMap(f app.Figure) map[string]any {
	return map[string]any{fieldNumber: f.Number, fieldName: f.Name}
}

func figureFromStruct(in *structpb.Struct) app.Figure {
	fields := in.GetFields()
	return app.Figure{
		Number: int(fields[fieldNumber].GetNumberValue()),
		Name:   fields[fieldName].GetStringValue(),
	}
}
