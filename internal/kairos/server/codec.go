package server

import (
	"encoding/json"
	"strconv"
	"strings"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/pkg/datetime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Response documents. Instants travel in their String form.
type valueResponse struct {
	Value datetime.Datetime `json:"value"`
}

type daysResponse struct {
	Days  []datetime.Datetime `json:"days"`
	Count int                 `json:"count"`
}

// toStruct converts a JSON-tagged value into a Struct document
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, kerror.Wrap(err, "failed to encode response").WithCode(kerror.CodeInternal)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, kerror.Wrap(err, "failed to encode response").WithCode(kerror.CodeInternal)
	}
	return out, nil
}

// fromStruct decodes a Struct document into a JSON-tagged value
func fromStruct(s *structpb.Struct, v interface{}) error {
	data, err := protojson.Marshal(s)
	if err != nil {
		return kerror.Wrap(err, "failed to decode response").WithCode(kerror.CodeInternal)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	return nil
}

func stringArg(req *structpb.Struct, key string) string {
	v, ok := req.GetFields()[key]
	if !ok {
		return ""
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(k.NumberValue, 'f', -1, 64)
	default:
		return ""
	}
}

func requiredArg(op string, req *structpb.Struct, key string) (string, error) {
	s := stringArg(req, key)
	if strings.TrimSpace(s) == "" {
		return "", invalidArg(op, "%s is required", key)
	}
	return s, nil
}

func intArg(op string, req *structpb.Struct, key string) (int, error) {
	s := stringArg(req, key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalidArg(op, "%s must be an integer, got %q", key, s)
	}
	return n, nil
}

func stringListArg(req *structpb.Struct, key string) []string {
	list := req.GetFields()[key].GetListValue()
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		out = append(out, v.GetStringValue())
	}
	return out
}

// periodArg parses the period argument; absent means day
func periodArg(req *structpb.Struct) (datetime.Period, error) {
	s := stringArg(req, "period")
	if s == "" {
		return datetime.Day, nil
	}
	return datetime.ParsePeriod(s)
}

func invalidArg(op, format string, args ...interface{}) *kerror.Error {
	return kerror.Newf(format, args...).
		WithCode(kerror.CodeInvalidInput).
		WithOperation("server." + op)
}
