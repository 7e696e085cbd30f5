// internal/domain/document/normalize.go
package document

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// DefaultTimestampField is the field normalized when no names are given.
const DefaultTimestampField = "createdAt"

// TimestampLayout is the ISO-8601 layout written by the normalizer.
const TimestampLayout = time.RFC3339Nano

// NormalizeTimestamps returns a copy of raw in which every backend-native
// timestamp stored under one of fields is replaced by its ISO-8601 string.
// Absent fields and fields already holding a string are left as they are.
// With no fields, DefaultTimestampField is used.
func NormalizeTimestamps(raw map[string]any, fields ...string) map[string]any {
	if len(fields) == 0 {
		fields = []string{DefaultTimestampField}
	}
	return normalizeFields(raw, fields)
}

func normalizeFields(raw map[string]any, fields []string) map[string]any {
	if raw == nil {
		return nil
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for _, name := range fields {
		v, ok := out[name]
		if !ok {
			continue
		}
		if s, ok := timestampString(v); ok {
			out[name] = s
		}
	}
	return out
}

func timestampString(v any) (string, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(TimestampLayout), true
	case *time.Time:
		if t == nil {
			return "", false
		}
		return t.UTC().Format(TimestampLayout), true
	case *timestamppb.Timestamp:
		if t == nil {
			return "", false
		}
		return t.AsTime().UTC().Format(TimestampLayout), true
	default:
		return "", false
	}
}
