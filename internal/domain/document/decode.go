// internal/domain/document/decode.go
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Decode converts a raw document into T.
//
// Steps: timestamp normalization, re-encoding into a portable JSON-shaped map,
// field-by-field validation in schema order, then mapping onto T through the
// `json` tags of its fields. The first violation is returned as *DecodeError
// and no partial value is produced.
func Decode[T any](raw map[string]any, schema Schema) (T, error) {
	var out T

	portable, err := Portable(normalizeFields(raw, schema.TimestampFields()))
	if err != nil {
		return out, &DecodeError{
			Schema:   schema.Name,
			Expected: "portable document",
			Actual:   "unencodable value",
			Err:      err,
		}
	}

	if err := Validate(portable, schema); err != nil {
		return out, err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     &out,
		DecodeHook: mapstructure.StringToTimeHookFunc(TimestampLayout),
	})
	if err != nil {
		return out, fmt.Errorf("document: build decoder for %s: %w", schema.Name, err)
	}
	if err := dec.Decode(portable); err != nil {
		var zero T
		return zero, &DecodeError{
			Schema:   schema.Name,
			Expected: fmt.Sprintf("%T", out),
			Actual:   "incompatible document",
			Err:      err,
		}
	}
	return out, nil
}

// Portable re-encodes m through JSON so that only strings, json.Number,
// bools, []any, map[string]any and nil remain.
func Portable(m map[string]any) (map[string]any, error) {
	if m == nil {
		return map[string]any{}, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks a portable map against schema and returns the first
// violation in schema order.
func Validate(portable map[string]any, schema Schema) error {
	for _, spec := range schema.Fields {
		v, present := portable[spec.Wire]
		if !present || v == nil {
			if spec.Required {
				actual := "missing"
				if present {
					actual = "null"
				}
				return &DecodeError{Schema: schema.Name, Field: spec.Wire, Expected: spec.Kind.String(), Actual: actual}
			}
			continue
		}
		if actual, ok := checkKind(v, spec); !ok {
			return &DecodeError{Schema: schema.Name, Field: spec.Wire, Expected: expected(spec), Actual: actual}
		}
	}
	return nil
}

func expected(spec FieldSpec) string {
	if spec.Kind == KindInt && spec.NonNegative {
		return "non-negative integer"
	}
	if spec.Kind == KindTimestamp {
		return "ISO-8601 timestamp"
	}
	return spec.Kind.String()
}

func checkKind(v any, spec FieldSpec) (string, bool) {
	switch spec.Kind {
	case KindString:
		if _, ok := v.(string); ok {
			return "", true
		}
	case KindInt:
		n, ok := v.(json.Number)
		if !ok {
			break
		}
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil || f != float64(int64(f)) {
				return "number " + n.String(), false
			}
			i = int64(f)
		}
		if spec.NonNegative && i < 0 {
			return "negative integer " + n.String(), false
		}
		return "", true
	case KindFloat:
		if n, ok := v.(json.Number); ok {
			if _, err := n.Float64(); err == nil {
				return "", true
			}
			return "number " + n.String(), false
		}
	case KindBool:
		if _, ok := v.(bool); ok {
			return "", true
		}
	case KindStringList:
		list, ok := v.([]any)
		if !ok {
			break
		}
		for i, item := range list {
			if _, ok := item.(string); !ok {
				return fmt.Sprintf("list with %s at index %d", shapeOf(item), i), false
			}
		}
		return "", true
	case KindTimestamp:
		s, ok := v.(string)
		if !ok {
			break
		}
		if _, err := time.Parse(TimestampLayout, s); err != nil {
			return fmt.Sprintf("malformed timestamp %q", s), false
		}
		return "", true
	}
	return shapeOf(v), false
}

func shapeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64, float32, int, int64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
